package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/logger"
	"unihub/internal/pkg/markdown"
	"unihub/internal/pkg/pagination"
)

// Default bounds of the published-date filter
var (
	MinPostDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxPostDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// PostInput represents create/update post input
type PostInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	PublishedAt string `json:"publishedAt" validate:"omitempty,datetime=2006-01-02"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url,max=500"`
}

// PostFilter holds the raw query parameters of a post search
type PostFilter struct {
	Title string
	From  string
	To    string
}

// PostService serves university posts
type PostService struct {
	*CRUD[models.Post, PostInput, *models.PostResponse]
	renderer markdown.Renderer
}

// NewPostService creates a new post service
func NewPostService(stores *repositories.Stores, renderer markdown.Renderer) *PostService {
	s := &PostService{renderer: renderer}
	s.CRUD = &CRUD[models.Post, PostInput, *models.PostResponse]{
		Name:   "post",
		Store:  stores.Posts,
		Parent: &Parent{Name: "university", Column: ColUniversity, Store: stores.Universities},
		Apply: func(p *models.Post, in *PostInput) error {
			p.Title = in.Title
			p.Content = in.Content
			p.ImageURL = in.ImageURL
			if in.PublishedAt == "" {
				// New posts default to today; an edit keeps the stored date
				if p.ID == 0 {
					p.PublishedAt = datatypes.Date(time.Now().UTC())
				}
				return nil
			}
			published, err := parseDate("publishedAt", in.PublishedAt, time.Time{})
			if err != nil {
				return err
			}
			p.PublishedAt = datatypes.Date(published)
			return nil
		},
		Bind: func(p *models.Post, sc repositories.Scope) {
			bindID(&p.UniversityID, sc, ColUniversity)
		},
		ToOutput: s.toResponse,
	}
	return s
}

func (s *PostService) toResponse(p *models.Post) *models.PostResponse {
	out := p.ToResponse()
	html, err := s.renderer.Render(p.Content)
	if err != nil {
		logger.WithComponent("posts").Warn("failed to render post", "post_id", p.ID, "error", err)
		return out
	}
	out.ContentHTML = html
	return out
}

// Search lists posts of a university filtered by title substring and inclusive published-date range
func (s *PostService) Search(ctx context.Context, scope repositories.Scope, f PostFilter, params pagination.Params) (*pagination.Page[*models.PostResponse], error) {
	filter, err := f.Build()
	if err != nil {
		return nil, err
	}
	return s.List(ctx, scope, filter, params)
}

// Build validates the raw filter and turns it into a query filter
func (f PostFilter) Build() (repositories.Filter, error) {
	from, err := parseDate("from", f.From, MinPostDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", f.To, MaxPostDate)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(f.Title)

	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("published_at BETWEEN ? AND ?", from, to)
		if title != "" {
			q = q.Where("title LIKE ?", "%"+title+"%")
		}
		return q
	}, nil
}

// parseDate parses a YYYY-MM-DD value; empty input yields def
func parseDate(param, value string, def time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.IllegalArgument(param + ".invalid.date")
	}
	return t, nil
}

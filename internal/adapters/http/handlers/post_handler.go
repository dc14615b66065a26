package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/services"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/response"
)

// PostHandler handles post search endpoints; plain CRUD goes through ResourceHandler
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func postFilter(c *fiber.Ctx) services.PostFilter {
	return services.PostFilter{
		Title: c.Query("title"),
		From:  c.Query("from"),
		To:    c.Query("to"),
	}
}

// List lists posts of the university in the path
// @Summary List posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param universityId path int true "University ID"
// @Param title query string false "Title substring"
// @Param from query string false "Published on or after (YYYY-MM-DD)"
// @Param to query string false "Published on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /universities/{universityId}/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	scope, err := scopeFromPath(c, []ScopeParam{UniversityScope})
	if err != nil {
		return err
	}
	return h.search(c, scope)
}

// Search lists posts of the university named by the universityId query parameter
// @Summary Search posts
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param universityId query int true "University ID"
// @Param title query string false "Title substring"
// @Param from query string false "Published on or after (YYYY-MM-DD)"
// @Param to query string false "Published on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /posts [get]
func (h *PostHandler) Search(c *fiber.Ctx) error {
	universityID, err := queryID(c, "universityId")
	if err != nil {
		return err
	}
	return h.search(c, repositories.Scope{services.ColUniversity: universityID})
}

func (h *PostHandler) search(c *fiber.Ctx, scope repositories.Scope) error {
	page, err := h.posts.Search(c.UserContext(), scope, postFilter(c), pagination.GetParams(c))
	if err != nil {
		return err
	}
	return response.Success(c, page)
}

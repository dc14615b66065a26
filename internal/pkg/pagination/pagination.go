package pagination

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Params represents pagination parameters; Page is a 0-based index
type Params struct {
	Page   int `json:"page"`
	Size   int `json:"size"`
	Offset int `json:"-"`
}

// DefaultSize is the default number of items per page
const DefaultSize = 20

// MaxSize is the maximum number of items per page
const MaxSize = 100

// New builds params from raw values, clamping them into range.
// Page is capped so that Offset = Page * Size never overflows.
func New(page, size int) Params {
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if page < 0 {
		page = 0
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}

	return Params{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// GetParams extracts pagination parameters from request
func GetParams(c *fiber.Ctx) Params {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))
	if err != nil {
		size = DefaultSize
	}
	return New(page, size)
}

// Page is one slice of a result set together with the total count
type Page[T any] struct {
	Content     []T   `json:"content"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	Offset      int   `json:"offset"`
	TotalCount  int64 `json:"totalCount"`
}

// NewPage creates a new page
func NewPage[T any](content []T, params Params, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content:     content,
		CurrentPage: params.Page,
		PageSize:    params.Size,
		Offset:      params.Offset,
		TotalCount:  total,
	}
}

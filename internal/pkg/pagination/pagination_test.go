package pagination

import (
	"io"
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		expected   Params
	}{
		{"first page", 0, 10, Params{Page: 0, Size: 10, Offset: 0}},
		{"third page", 2, 25, Params{Page: 2, Size: 25, Offset: 50}},
		{"negative page", -3, 10, Params{Page: 0, Size: 10, Offset: 0}},
		{"zero size", 1, 0, Params{Page: 1, Size: DefaultSize, Offset: DefaultSize}},
		{"oversized", 0, 1000, Params{Page: 0, Size: MaxSize, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.page, tt.size))
		})
	}
}

func TestGetParams(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := GetParams(c)
		return c.SendString(strconv.Itoa(p.Page) + "/" + strconv.Itoa(p.Size))
	})

	for query, expected := range map[string]string{
		"":                "0/20",
		"?page=3&size=5":  "3/5",
		"?page=x&size=y":  "0/20",
		"?page=1&size=-1": "1/20",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, expected, string(body), query)
	}
}

func TestNew_CapsPageBeforeOverflow(t *testing.T) {
	for _, size := range []int{1, 7, 50, MaxSize} {
		p := New(math.MaxInt, size)
		assert.Equal(t, math.MaxInt/size, p.Page, size)
		assert.Equal(t, p.Page*p.Size, p.Offset, size)
		assert.GreaterOrEqual(t, p.Offset, 0, size)
	}

	p := New(math.MaxInt64/50, 100)
	assert.Equal(t, MaxSize, p.Size)
	assert.Positive(t, p.Offset)
	assert.Equal(t, p.Page*p.Size, p.Offset)
}

func TestGetParams_HugePage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p := GetParams(c)
		return c.SendString(strconv.Itoa(p.Offset))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?page=184467440737095516&size=100", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	offset, err := strconv.Atoi(string(body))
	require.NoError(t, err)
	assert.Positive(t, offset)
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, New(1, 3), 7)
	assert.Equal(t, 3, page.Offset)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(7), page.TotalCount)

	empty := NewPage[int](nil, New(0, 10), 0)
	assert.NotNil(t, empty.Content)
}

package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihub/internal/pkg/pagination"
)

func TestPostService_CreateRendersMarkdown(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")

	post, err := f.posts.Create(f.ctx, uniScope(uni.ID), &PostInput{
		Title:       "Enrollment",
		Content:     "# Dates\n\nSee <script>alert(1)</script>**now**",
		PublishedAt: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", post.PublishedAt)
	assert.Contains(t, post.ContentHTML, "<strong>now</strong>")
	assert.Contains(t, post.ContentHTML, `<h1 id="dates">`)
	assert.NotContains(t, post.ContentHTML, "<script>")
}

func TestPostService_DefaultsPublishedToToday(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")

	post, err := f.posts.Create(f.ctx, uniScope(uni.ID), &PostInput{Title: "Hello", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), post.PublishedAt)
}

func TestPostService_UpdateKeepsPublishedDate(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")

	post, err := f.posts.Create(f.ctx, uniScope(uni.ID), &PostInput{Title: "Hello", Content: "body", PublishedAt: "2024-03-01"})
	require.NoError(t, err)

	updated, err := f.posts.Update(f.ctx, post.ID, uniScope(uni.ID), &PostInput{Title: "Hello again", Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "2024-03-01", updated.PublishedAt)

	stored, err := f.posts.Get(f.ctx, post.ID, uniScope(uni.ID))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", stored.PublishedAt)

	moved, err := f.posts.Update(f.ctx, post.ID, uniScope(uni.ID), &PostInput{Title: "Hello again", Content: "edited", PublishedAt: "2024-04-02"})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-02", moved.PublishedAt)
}

func TestPostService_RejectsMalformedDate(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")

	_, err := f.posts.Create(f.ctx, uniScope(uni.ID), &PostInput{Title: "x", Content: "y", PublishedAt: "01.03.2024"})
	requireAppError(t, err, 400, "bad.request;publishedAt.invalid")

	_, err = f.posts.Search(f.ctx, uniScope(uni.ID), PostFilter{From: "2024-13-01"}, pagination.New(0, 20))
	requireAppError(t, err, 400, "bad.request;from.invalid.date")

	_, err = f.posts.Search(f.ctx, uniScope(uni.ID), PostFilter{To: "yesterday"}, pagination.New(0, 20))
	requireAppError(t, err, 400, "bad.request;to.invalid.date")
}

func TestPostService_Search(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")
	other := f.university(t, "UNI")

	for _, p := range []PostInput{
		{Title: "Exam schedule", Content: "a", PublishedAt: "2024-01-10"},
		{Title: "Exam results", Content: "b", PublishedAt: "2024-02-01"},
		{Title: "Sports day", Content: "c", PublishedAt: "2024-02-15"},
	} {
		p := p
		_, err := f.posts.Create(f.ctx, uniScope(uni.ID), &p)
		require.NoError(t, err)
	}
	_, err := f.posts.Create(f.ctx, uniScope(other.ID), &PostInput{Title: "Exam elsewhere", Content: "d", PublishedAt: "2024-02-01"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter PostFilter
		titles []string
	}{
		{name: "no filter", filter: PostFilter{}, titles: []string{"Exam schedule", "Exam results", "Sports day"}},
		{name: "title substring", filter: PostFilter{Title: "exam"}, titles: []string{"Exam schedule", "Exam results"}},
		{name: "inclusive range", filter: PostFilter{From: "2024-02-01", To: "2024-02-15"}, titles: []string{"Exam results", "Sports day"}},
		{name: "title and range", filter: PostFilter{Title: "Exam", From: "2024-02-01"}, titles: []string{"Exam results"}},
		{name: "empty range", filter: PostFilter{From: "2025-01-01"}, titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.posts.Search(f.ctx, uniScope(uni.ID), tt.filter, pagination.New(0, 20))
			require.NoError(t, err)

			titles := make([]string, 0, len(page.Content))
			for _, p := range page.Content {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, int64(len(tt.titles)), page.TotalCount)
		})
	}
}

func TestParseDate(t *testing.T) {
	def := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseDate("from", "  ", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = parseDate("from", "2024-02-29", def)
	require.NoError(t, err)
	assert.Equal(t, 29, got.Day())

	_, err = parseDate("from", "2023-02-29", def)
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "from.invalid.date"))
}

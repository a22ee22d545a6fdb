package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePostSearchQueryDefaults(t *testing.T) {
	q := ParsePostSearchQuery("", "", "", "", "")
	assert.Equal(t, int64(1), q.Page)
	assert.Equal(t, int64(5), q.Limit)
	assert.Equal(t, "updated_at", q.SortField())
	assert.False(t, q.SortAscending())
	assert.Equal(t, int64(0), q.Skip())
}

func TestParsePostSearchQueryInvalidNumbersFallBack(t *testing.T) {
	cases := []struct {
		page, limit string
	}{
		{"0", "0"},
		{"-3", "-1"},
		{"abc", "xyz"},
		{"2.5", "1.5"},
		{"", ""},
	}
	for _, tc := range cases {
		q := ParsePostSearchQuery("", "", "", tc.page, tc.limit)
		assert.Equal(t, int64(1), q.Page, "page %q", tc.page)
		assert.Equal(t, int64(5), q.Limit, "limit %q", tc.limit)
	}
}

func TestParsePostSearchQuerySkip(t *testing.T) {
	q := ParsePostSearchQuery("", "", "", "3", "10")
	assert.Equal(t, int64(3), q.Page)
	assert.Equal(t, int64(10), q.Limit)
	assert.Equal(t, int64(20), q.Skip())
}

func TestPostSearchQuerySortMapping(t *testing.T) {
	q := ParsePostSearchQuery("", "title", "asc", "", "")
	assert.Equal(t, "title", q.SortField())
	assert.True(t, q.SortAscending())

	// anything but "title" sorts by last update, anything but "asc" descends
	q = ParsePostSearchQuery("", "content", "desc", "", "")
	assert.Equal(t, "updated_at", q.SortField())
	assert.False(t, q.SortAscending())

	q = ParsePostSearchQuery("", "", "ASC", "", "")
	assert.False(t, q.SortAscending())
}

func TestTargetKindValid(t *testing.T) {
	assert.True(t, TargetPost.Valid())
	assert.True(t, TargetComment.Valid())
	assert.False(t, TargetKind("User").Valid())
	assert.False(t, TargetKind("").Valid())
}

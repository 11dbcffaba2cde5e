package feed

import (
	"testing"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		key  string
		dir  string
		want Sort
	}{
		{"title asc", "title", "asc", Sort{SortTitle, Asc}},
		{"case insensitive", "Like_Count", "ASC", Sort{SortLikeCount, Asc}},
		{"missing direction", "comment_count", "", Sort{SortCommentCount, Desc}},
		{"bad direction", "updated_at", "sideways", Sort{SortUpdatedAt, Desc}},
		{"unknown key", "popularity", "asc", DefaultSort},
		{"empty", "", "", DefaultSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSort(tt.key, tt.dir))
		})
	}
}

func TestSortKeyAggregate(t *testing.T) {
	assert.True(t, SortLikeCount.Aggregate())
	assert.True(t, SortCommentCount.Aggregate())
	assert.False(t, SortTitle.Aggregate())
	assert.False(t, SortCreatedAt.Aggregate())
}

func TestQueryNormalize(t *testing.T) {
	q := Query{Filter: Filter{Category: "  tech "}}
	require.NoError(t, q.Normalize())
	assert.Equal(t, DefaultSort, q.Sort)
	assert.Equal(t, pagination.Params{Page: 1, Limit: pagination.DefaultLimit}, q.Page)
	assert.Equal(t, "tech", q.Filter.Category)
}

func TestQueryNormalizeLikedRequiresViewer(t *testing.T) {
	q := Query{Filter: Filter{LikedByViewer: true}}
	err := q.Normalize()
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	q.ViewerID = "u1"
	assert.NoError(t, q.Normalize())
}

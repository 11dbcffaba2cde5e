// Package feed describes a filtered, sorted and paginated read over posts.
package feed

import (
	"strings"

	"inkwell/internal/core/apperr"
	"inkwell/internal/core/pagination"
)

type SortKey string

const (
	SortTitle        SortKey = "title"
	SortCreatedAt    SortKey = "created_at"
	SortUpdatedAt    SortKey = "updated_at"
	SortLikeCount    SortKey = "like_count"
	SortCommentCount SortKey = "comment_count"
)

func (k SortKey) valid() bool {
	switch k {
	case SortTitle, SortCreatedAt, SortUpdatedAt, SortLikeCount, SortCommentCount:
		return true
	}
	return false
}

// Aggregate reports whether the key is computed per post rather than stored.
func (k SortKey) Aggregate() bool {
	return k == SortLikeCount || k == SortCommentCount
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Key SortKey
	Dir Direction
}

// DefaultSort is newest first.
var DefaultSort = Sort{Key: SortCreatedAt, Dir: Desc}

// ParseSort never fails. An unknown key yields DefaultSort; an unknown direction yields Desc.
func ParseSort(key, dir string) Sort {
	k := SortKey(strings.ToLower(strings.TrimSpace(key)))
	if !k.valid() {
		return DefaultSort
	}
	d := Direction(strings.ToLower(strings.TrimSpace(dir)))
	if d != Asc {
		d = Desc
	}
	return Sort{Key: k, Dir: d}
}

// Filter fields are combined with AND. Zero values disable a filter.
type Filter struct {
	// Category matches a category id or a category name.
	Category string
	AuthorID string
	// LikedByViewer keeps only posts the viewer has liked.
	LikedByViewer bool
}

type Query struct {
	// ViewerID is empty for anonymous readers.
	ViewerID string
	Filter   Filter
	Sort     Sort
	Page     pagination.Params
}

// Normalize fills in defaults and checks that the filters are usable for the viewer.
func (q *Query) Normalize() error {
	if q.Sort.Key == "" {
		q.Sort = DefaultSort
	}
	q.Page = q.Page.Normalize()
	q.Filter.Category = strings.TrimSpace(q.Filter.Category)
	q.Filter.AuthorID = strings.TrimSpace(q.Filter.AuthorID)
	if q.Filter.LikedByViewer && q.ViewerID == "" {
		return apperr.Wrap(apperr.KindUnauthorized, "liked filter requires authentication", nil)
	}
	return nil
}

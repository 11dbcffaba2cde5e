// Package pagination resolves page/limit requests against a total count.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a requested page. Zero values mean "use the default".
type Params struct {
	Page  int
	Limit int
}

// Meta describes the page actually served.
type Meta struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total_count"`
	Limit      int   `json:"limit"`
}

// Normalize applies defaults and caps the limit.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Resolve computes the served page and its row offset. A page past the last one is clamped
// to page 1, not to the last page.
func Resolve(p Params, total int64) (Meta, int) {
	p = p.Normalize()

	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	page := p.Page
	if page > totalPages {
		page = 1
	}

	return Meta{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
		Limit:      p.Limit,
	}, (page - 1) * p.Limit
}

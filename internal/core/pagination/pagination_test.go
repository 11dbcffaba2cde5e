package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		total      int64
		wantMeta   Meta
		wantOffset int
	}{
		{"defaults", Params{}, 25, Meta{Page: 1, TotalPages: 3, TotalCount: 25, Limit: 10}, 0},
		{"second page", Params{Page: 2, Limit: 10}, 25, Meta{Page: 2, TotalPages: 3, TotalCount: 25, Limit: 10}, 10},
		{"last partial page", Params{Page: 3, Limit: 10}, 25, Meta{Page: 3, TotalPages: 3, TotalCount: 25, Limit: 10}, 20},
		{"out of range clamps to first", Params{Page: 999, Limit: 5}, 10, Meta{Page: 1, TotalPages: 2, TotalCount: 10, Limit: 5}, 0},
		{"empty set", Params{Page: 4, Limit: 10}, 0, Meta{Page: 1, TotalPages: 0, TotalCount: 0, Limit: 10}, 0},
		{"limit capped", Params{Page: 1, Limit: 1000}, 150, Meta{Page: 1, TotalPages: 2, TotalCount: 150, Limit: MaxLimit}, 0},
		{"negative page", Params{Page: -3, Limit: 10}, 5, Meta{Page: 1, TotalPages: 1, TotalCount: 5, Limit: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, offset := Resolve(tt.params, tt.total)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		in       PaginationParams
		wantPage int
		wantPer  int
	}{
		{"zero values", PaginationParams{}, 1, 15},
		{"too large", PaginationParams{Page: 3, PerPage: 500}, 3, 100},
		{"in range", PaginationParams{Page: 2, PerPage: 20}, 2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPer, p.PerPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestNewPaginatedResult_NilItems(t *testing.T) {
	r := NewPaginatedResult[int](nil, NewPagination(1, 15, 0))
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
}

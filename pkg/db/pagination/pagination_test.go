package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name   string
		in     Pagination
		offset int
		limit  int
	}{
		{"first page", Pagination{Page: 1, PageSize: 10}, 0, 10},
		{"second page", Pagination{Page: 2, PageSize: 10}, 10, 10},
		{"zero page clamps", Pagination{Page: 0, PageSize: 10}, 0, 10},
		{"negative page clamps", Pagination{Page: -3, PageSize: 5}, 0, 5},
		{"default size", Pagination{Page: 3}, 20, DefaultPageSize},
		{"size capped", Pagination{Page: 2, PageSize: 1000}, MaxPageSize, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.in.Offset())
			assert.Equal(t, tt.limit, tt.in.Limit())
		})
	}
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(Pagination{Page: 2, PageSize: 10}, 25)
	assert.Equal(t, PageInfo{Page: 2, PageSize: 10, TotalItems: 25, TotalPages: 3, HasMore: true}, info)

	last := BuildPageInfo(Pagination{Page: 3, PageSize: 10}, 25)
	assert.False(t, last.HasMore)

	empty := BuildPageInfo(Pagination{}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore)
}

func TestHugePageKeepsOffsetPositive(t *testing.T) {
	for _, size := range []int{1, 10, MaxPageSize} {
		p := Pagination{Page: math.MaxInt, PageSize: size}

		n := p.Normalize()
		assert.Equal(t, math.MaxInt/size, n.Page)
		assert.Positive(t, p.Offset())
		assert.Equal(t, (n.Page-1)*size, p.Offset())

		info := BuildPageInfo(p, 25)
		assert.Equal(t, n.Page, info.Page)
		assert.False(t, info.HasMore)
	}
}

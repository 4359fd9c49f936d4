package blog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/blog"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items int
		index int
		want  blog.Page
	}{
		{
			name: "empty listing", items: 0, index: 1,
			want: blog.Page{ItemCount: 0, PageIndex: 1, PageSize: 10, PageCount: 0},
		},
		{
			name: "first page", items: 91, index: 1,
			want: blog.Page{ItemCount: 91, PageIndex: 1, PageSize: 10, PageCount: 10, Limit: 10, HasNext: true},
		},
		{
			name: "middle page", items: 91, index: 5,
			want: blog.Page{ItemCount: 91, PageIndex: 5, PageSize: 10, PageCount: 10, Offset: 40, Limit: 10, HasNext: true, HasPrevious: true},
		},
		{
			name: "last page", items: 91, index: 10,
			want: blog.Page{ItemCount: 91, PageIndex: 10, PageSize: 10, PageCount: 10, Offset: 90, Limit: 10, HasPrevious: true},
		},
		{
			name: "past the end", items: 91, index: 11,
			want: blog.Page{ItemCount: 91, PageIndex: 1, PageSize: 10, PageCount: 10, HasNext: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, blog.NewPage(tt.items, tt.index, blog.DefaultPageSize))
		})
	}
}

func TestPageIndex(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]int{"": 1, "x": 1, "0": 1, "-3": 1, "1": 1, "7": 7} {
		require.Equal(t, want, blog.PageIndex(in), "input %q", in)
	}
}

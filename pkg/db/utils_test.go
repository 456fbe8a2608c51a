package db

import (
	"testing"
)

func TestGetTotalPages(t *testing.T) {
	type args struct {
		totalCount int64
		limit      int64
	}
	tests := []struct {
		name string
		args args
		want int64
	}{
		{
			name: "exact fit",
			args: args{totalCount: 10, limit: 10},
			want: 1,
		},
		{
			name: "two pages",
			args: args{totalCount: 10, limit: 5},
			want: 2,
		},
		{
			name: "partial last page",
			args: args{totalCount: 10, limit: 3},
			want: 4,
		},
		{
			name: "zero limit",
			args: args{totalCount: 10, limit: 0},
			want: 0,
		},
		{
			name: "empty collection",
			args: args{totalCount: 0, limit: 10},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getTotalPages(tt.args.totalCount, tt.args.limit); got != tt.want {
				t.Errorf("getTotalPages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrepPaginationInfos(t *testing.T) {
	p := PrepPaginationInfos(25, 0, 10)
	if p.CurrentPage != 1 {
		t.Errorf("expected page to be clamped to 1, got %d", p.CurrentPage)
	}
	if p.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", p.TotalPages)
	}

	p = PrepPaginationInfos(25, 10, 10)
	if p.CurrentPage != 3 {
		t.Errorf("expected page to be clamped to last page, got %d", p.CurrentPage)
	}
}

package pagination_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"relaypager/internal/common/pagination"
)

func TestOffsetStrategy_CalculateQuery(t *testing.T) {
	t.Parallel()

	strategy := pagination.OffsetStrategy{}

	tests := []struct {
		name  string
		state pagination.State
		want  pagination.QueryParams
	}{
		{
			name:  "first page",
			state: pagination.State{PageIndex: 0, PageSize: 10},
			want:  pagination.QueryParams{First: 10, After: "", PageSize: 10},
		},
		{
			name:  "third page of 5",
			state: pagination.State{PageIndex: 2, PageSize: 5},
			want:  pagination.QueryParams{First: 5, After: "YXJyYXljb25uZWN0aW9uOjk=", PageSize: 5},
		},
		{
			name: "sort and filters",
			state: pagination.State{
				PageIndex: 1,
				PageSize:  5,
				Sort:      []pagination.SortKey{{Field: "name", Direction: pagination.Descending}},
				Filters:   map[string]any{"name": "sky", "height": ""},
			},
			want: pagination.QueryParams{
				First:    5,
				After:    "YXJyYXljb25uZWN0aW9uOjQ=",
				OrderBy:  "-name",
				PageSize: 5,
				Filters:  map[string]any{"name": "sky"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := strategy.CalculateQuery(tt.state, "ignored")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CalculateQuery mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForwardStrategy_CalculateQuery(t *testing.T) {
	t.Parallel()

	strategy := pagination.ForwardStrategy{}
	state := pagination.State{PageIndex: 4, PageSize: 10}

	got := strategy.CalculateQuery(state, "YXJyYXljb25uZWN0aW9uOjk=")
	want := pagination.QueryParams{First: 10, After: "YXJyYXljb25uZWN0aW9uOjk="}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CalculateQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategy_BuildMetadata(t *testing.T) {
	t.Parallel()

	state := pagination.State{PageIndex: 2, PageSize: 10}

	tests := []struct {
		name     string
		strategy pagination.Strategy
		total    int
		shown    int
		want     pagination.Metadata
		summary  string
	}{
		{
			name:     "offset with total",
			strategy: pagination.OffsetStrategy{},
			total:    47,
			shown:    10,
			want:     pagination.Metadata{Total: 47, PageIndex: 2, PageSize: 10, TotalPages: 5, Shown: 10},
			summary:  "Showing 10 of 47 results",
		},
		{
			name:     "forward without total",
			strategy: pagination.ForwardStrategy{},
			total:    0,
			shown:    30,
			want:     pagination.Metadata{PageSize: 10, TotalPages: 1, Shown: 30},
			summary:  "Showing 30 of ~30 results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.strategy.BuildMetadata(state, tt.total, tt.shown)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildMetadata mismatch (-want +got):\n%s", diff)
			}
			if s := got.Summary(); s != tt.summary {
				t.Errorf("Summary() = %q, want %q", s, tt.summary)
			}
		})
	}
}

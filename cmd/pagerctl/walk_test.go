package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relaypager/internal/usecase/paginate"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", t.TempDir() + "/missing.env", "--log-format", "json"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decodePages(t *testing.T, out string) []pageOutput {
	t.Helper()

	var pages []pageOutput
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var p pageOutput
		require.NoError(t, dec.Decode(&p))
		pages = append(pages, p)
	}
	return pages
}

func TestWalk_Variants(t *testing.T) {
	tests := []struct {
		variant   string
		demo      string
		wantIndex []int
		wantItems []int
	}{
		{variant: "basic", demo: "people", wantIndex: []int{0}, wantItems: []int{5}},
		{variant: "pages", demo: "people", wantIndex: []int{0, 1, 2}, wantItems: []int{5, 5, 2}},
		{variant: "table", demo: "people", wantIndex: []int{0, 1, 2}, wantItems: []int{5, 5, 2}},
		{variant: "load_more", demo: "people", wantIndex: []int{0, 0, 0}, wantItems: []int{5, 10, 12}},
		{variant: "infinite", demo: "squares", wantIndex: []int{0, 0, 0}, wantItems: []int{5, 10, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			out, err := execute(t, "walk",
				"--demo", tt.demo, "--demo-size", "12",
				"--variant", tt.variant, "--page-size", "5",
				"--steps", "10", "--format", "json")
			require.NoError(t, err)

			pages := decodePages(t, out)
			require.Len(t, pages, len(tt.wantItems))
			for i, p := range pages {
				assert.Equal(t, tt.variant, p.Variant)
				assert.Equal(t, tt.wantIndex[i], p.PageIndex, "view %d", i)
				assert.Len(t, p.Items, tt.wantItems[i], "view %d", i)
			}
			if tt.variant != "basic" {
				assert.False(t, pages[len(pages)-1].HasNextPage)
			}
		})
	}
}

func TestWalk_StopsAtSteps(t *testing.T) {
	out, err := execute(t, "walk", "--demo", "people", "--demo-size", "50",
		"--variant", "pages", "--page-size", "5", "--steps", "2", "--format", "json")
	require.NoError(t, err)

	pages := decodePages(t, out)
	require.Len(t, pages, 2)
	assert.True(t, pages[1].HasNextPage)
}

func TestWalk_TableSortAndFilter(t *testing.T) {
	out, err := execute(t, "walk", "--demo", "people", "--demo-size", "30",
		"--variant", "table", "--page-size", "10", "--steps", "1",
		"--sort=-age", "--filter", "alive=true", "--format", "json")
	require.NoError(t, err)

	pages := decodePages(t, out)
	require.Len(t, pages, 1)
	p := pages[0]
	assert.Equal(t, "-age", p.OrderBy)
	require.NotEmpty(t, p.Items)

	prev := 1 << 30
	for _, item := range p.Items {
		assert.Equal(t, true, item["alive"])
		age := int(item["age"].(float64))
		assert.LessOrEqual(t, age, prev)
		prev = age
	}
}

func TestWalk_FormErrors(t *testing.T) {
	out, err := execute(t, "walk", "--demo", "people", "--variant", "pages",
		"--filter", "color=red", "--format", "json")
	require.NoError(t, err)

	pages := decodePages(t, out)
	require.Len(t, pages, 1)
	assert.Empty(t, pages[0].Items)
	assert.NotEmpty(t, pages[0].FormErrors["color"])
}

func TestWalk_TextOutput(t *testing.T) {
	out, err := execute(t, "walk", "--demo", "people", "--demo-size", "12",
		"--variant", "pages", "--page-size", "5", "--steps", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "page 1")
	assert.Contains(t, out, "Showing 5 of 12 results")
	assert.Contains(t, out, "Person:1")
	assert.Contains(t, out, "[1]")
}

func TestWalk_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown variant", args: []string{"--demo", "people", "--variant", "carousel"}, want: "unknown variant"},
		{name: "unknown demo", args: []string{"--demo", "planets"}, want: "unknown demo data set"},
		{name: "zero steps", args: []string{"--demo", "people", "--steps", "0"}, want: "steps must be at least 1"},
		{name: "page size too large", args: []string{"--demo", "people", "--page-size", "1000"}, want: "exceeds"},
		{name: "missing table file", args: []string{"--demo", "people", "--table", "/nonexistent/table.yaml"}, want: "failed to read table file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"walk"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	view := paginate.View{}
	assert.Nil(t, advance(paginate.VariantBasic, view))
	assert.Equal(t, paginate.NextPage{}, advance(paginate.VariantPages, view))
	assert.Equal(t, paginate.NextPage{}, advance(paginate.VariantTable, view))
	assert.Equal(t, paginate.LoadMore{}, advance(paginate.VariantLoadMore, view))
}

func TestFilterValues(t *testing.T) {
	t.Parallel()

	got := filterValues(map[string]string{"alive": "true", "age": "30", "firstName": "Le"})
	assert.Equal(t, map[string]any{"alive": true, "age": 30, "firstName": "Le"}, got)
	assert.Nil(t, filterValues(nil))
}

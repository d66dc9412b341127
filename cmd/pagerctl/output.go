package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"relaypager/internal/config"
	"relaypager/internal/domain/entity"
	"relaypager/internal/usecase/paginate"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// pageOutput is the JSON form of one view.
type pageOutput struct {
	Seq         uint64              `json:"seq"`
	Variant     string              `json:"variant"`
	PageIndex   int                 `json:"page_index"`
	PageSize    int                 `json:"page_size"`
	OrderBy     string              `json:"order_by,omitempty"`
	Summary     string              `json:"summary"`
	HasNextPage bool                `json:"has_next_page"`
	EndCursor   string              `json:"end_cursor,omitempty"`
	Pages       []pageButtonOutput  `json:"pages,omitempty"`
	Items       []map[string]any    `json:"items"`
	FormErrors  map[string][]string `json:"form_errors,omitempty"`
	Error       string              `json:"error,omitempty"`
}

type pageButtonOutput struct {
	Number int    `json:"number"`
	Cursor string `json:"cursor"`
	Active bool   `json:"active,omitempty"`
}

type printer struct {
	w      io.Writer
	format string
	table  *config.TableConfig
	enc    *json.Encoder

	header *color.Color
	active *color.Color
	faint  *color.Color
	failed *color.Color
}

func newPrinter(w io.Writer, format string, table *config.TableConfig) *printer {
	p := &printer{
		w:      w,
		format: format,
		table:  table,
		header: color.New(color.Bold),
		active: color.New(color.FgCyan, color.Bold),
		faint:  color.New(color.Faint),
		failed: color.New(color.FgRed),
	}
	if format == formatJSON {
		p.enc = json.NewEncoder(w)
	}
	return p
}

func (p *printer) print(v paginate.View) error {
	if p.format == formatJSON {
		return p.enc.Encode(toOutput(v))
	}
	return p.printText(v)
}

func toOutput(v paginate.View) pageOutput {
	out := pageOutput{
		Seq:         v.Seq,
		Variant:     string(v.Variant),
		PageIndex:   v.State.PageIndex,
		PageSize:    v.State.PageSize,
		OrderBy:     v.State.OrderBy(),
		Summary:     v.Summary(),
		HasNextPage: v.HasNextPage(),
		EndCursor:   v.Collection.PageInfo.EndCursor,
		Items:       make([]map[string]any, 0, v.Collection.Len()),
	}
	for _, e := range v.Collection.Edges {
		item := map[string]any{"id": e.Node.ID, "cursor": e.Cursor}
		for k, val := range e.Node.Attributes {
			item[k] = val
		}
		out.Items = append(out.Items, item)
	}
	for _, b := range v.Window.Pages {
		out.Pages = append(out.Pages, pageButtonOutput{Number: b.Number, Cursor: b.Cursor, Active: b.Active})
	}
	if len(v.FormErrors) > 0 {
		out.FormErrors = make(map[string][]string, len(v.FormErrors))
		for _, fe := range v.FormErrors {
			out.FormErrors[fe.Field] = append(out.FormErrors[fe.Field], fe.Errors...)
		}
	}
	if v.Err != nil {
		out.Error = v.Err.Error()
	}
	return out
}

func (p *printer) printText(v paginate.View) error {
	var b strings.Builder

	p.header.Fprintf(&b, "page %d", v.State.PageIndex+1)
	fmt.Fprintf(&b, "  %s", v.Summary())
	if ob := v.State.OrderBy(); ob != "" {
		p.faint.Fprintf(&b, "  order by %s", ob)
	}
	b.WriteString("\n")

	for _, e := range v.Collection.Edges {
		fmt.Fprintf(&b, "  %s\n", p.row(e.Node))
	}

	if len(v.Window.Pages) > 0 {
		b.WriteString("  ")
		for _, pb := range v.Window.Pages {
			if pb.Active {
				p.active.Fprintf(&b, "[%d] ", pb.Number)
				continue
			}
			fmt.Fprintf(&b, "%d ", pb.Number)
		}
		b.WriteString("\n")
	}

	for _, fe := range v.FormErrors {
		p.failed.Fprintf(&b, "  %s: %s\n", fe.Field, strings.Join(fe.Errors, "; "))
	}
	if v.Err != nil {
		p.failed.Fprintf(&b, "  error: %v\n", v.Err)
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// row renders the table columns when a table definition is loaded and every
// attribute in key order otherwise.
func (p *printer) row(n entity.Item) string {
	if p.table != nil {
		cells := make([]string, 0, len(p.table.Table.Columns))
		for _, c := range p.table.Table.Columns {
			val := n.Attr(c.DataKey)
			if c.DataKey == "id" {
				val = n.ID
			}
			cells = append(cells, fmt.Sprintf("%s=%v", c.Label, val))
		}
		return strings.Join(cells, "  ")
	}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cells := []string{n.ID}
	for _, k := range keys {
		cells = append(cells, fmt.Sprintf("%s=%v", k, n.Attributes[k]))
	}
	return strings.Join(cells, "  ")
}

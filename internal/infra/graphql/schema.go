package graphql

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"relaypager/internal/domain/entity"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type wireResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []wireError     `json:"errors"`
}

type wireError struct {
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

type wireConnection struct {
	Edges      []wireEdge      `json:"edges" validate:"dive"`
	PageInfo   *wirePageInfo   `json:"pageInfo"`
	Pages      *wirePages      `json:"pages"`
	Total      *int            `json:"total" validate:"omitempty,gte=0"`
	TotalPages *int            `json:"totalPages" validate:"omitempty,gte=0"`
	FormErrors []wireFormError `json:"formErrors" validate:"dive"`
}

type wireEdge struct {
	Cursor string         `json:"cursor" validate:"required"`
	Node   map[string]any `json:"node" validate:"required"`
}

type wirePageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

type wirePages struct {
	First    *wirePageCursor  `json:"first"`
	Last     *wirePageCursor  `json:"last"`
	Previous *wirePageCursor  `json:"previous"`
	Around   []wirePageCursor `json:"around" validate:"dive"`
}

type wirePageCursor struct {
	Cursor     string `json:"cursor"`
	PageNumber int    `json:"pageNumber" validate:"gte=1"`
	IsCurrent  bool   `json:"isCurrent"`
}

type wireFormError struct {
	Field    string   `json:"field" validate:"required"`
	Messages []string `json:"messages"`
}

// locate walks data along path and returns the raw connection object.
func locate(data json.RawMessage, path []string) (json.RawMessage, error) {
	cur := data
	for i, seg := range path {
		if isNull(cur) {
			return nil, fmt.Errorf("%s is null", strings.Join(path[:i], "."))
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, fmt.Errorf("%s is not an object: %w", strings.Join(path[:i], "."), err)
		}
		next, ok := obj[seg]
		if !ok {
			return nil, fmt.Errorf("%s is missing", strings.Join(path[:i+1], "."))
		}
		cur = next
	}
	if isNull(cur) {
		return nil, fmt.Errorf("%s is null", strings.Join(path, "."))
	}
	return cur, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// toConnection validates the wire connection and maps it to the domain.
// paged is whether the page descriptor was requested instead of pageInfo.
// Every violation is reported, not only the first.
func toConnection(w *wireConnection, paged bool) (*entity.Connection, error) {
	var errs error

	if err := validate.Struct(w); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = multierr.Append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = multierr.Append(errs, err)
		}
	}

	switch {
	case w.PageInfo != nil && w.Pages != nil:
		errs = multierr.Append(errs, errors.New("pageInfo and pages are mutually exclusive"))
	case paged && w.Pages == nil:
		errs = multierr.Append(errs, errors.New("pages is missing"))
	case !paged && w.PageInfo == nil:
		errs = multierr.Append(errs, errors.New("pageInfo is missing"))
	}

	conn := &entity.Connection{Collection: entity.Collection{Edges: make([]entity.Edge, 0, len(w.Edges))}}
	for i, e := range w.Edges {
		item, err := toItem(e.Node)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("edges[%d].node: %w", i, err))
			continue
		}
		conn.Edges = append(conn.Edges, entity.Edge{Node: item, Cursor: e.Cursor})
	}

	if w.PageInfo != nil {
		conn.PageInfo = entity.PageInfo{
			HasNextPage:     w.PageInfo.HasNextPage,
			HasPreviousPage: w.PageInfo.HasPreviousPage,
			StartCursor:     deref(w.PageInfo.StartCursor),
			EndCursor:       deref(w.PageInfo.EndCursor),
		}
		if len(conn.Edges) == len(w.Edges) {
			errs = multierr.Append(errs, conn.PageInfo.CheckBoundary(conn.Edges))
		}
	}

	if w.Pages != nil {
		conn.Pages = &entity.PageDescriptor{
			First:    toPageCursor(w.Pages.First),
			Last:     toPageCursor(w.Pages.Last),
			Previous: toPageCursor(w.Pages.Previous),
			Around:   make([]entity.PageCursor, 0, len(w.Pages.Around)),
		}
		for _, p := range w.Pages.Around {
			conn.Pages.Around = append(conn.Pages.Around, *toPageCursor(&p))
		}
	}

	if w.Total != nil {
		conn.Total = *w.Total
	}
	if w.TotalPages != nil {
		conn.TotalPages = *w.TotalPages
	}
	for _, fe := range w.FormErrors {
		conn.FormErrors = append(conn.FormErrors, entity.FormError{Field: fe.Field, Errors: fe.Messages})
	}

	if errs != nil {
		return nil, errs
	}
	return conn, nil
}

// toItem requires a non-empty string id and reads the sequential key from pk.
func toItem(node map[string]any) (entity.Item, error) {
	id, _ := node["id"].(string)
	if id == "" {
		return entity.Item{}, errors.New("id must be a non-empty string")
	}
	pk, err := entity.ParsePK(node["pk"])
	if err != nil {
		return entity.Item{}, err
	}

	attrs := make(map[string]any, len(node))
	for k, v := range node {
		if k != "id" {
			attrs[k] = v
		}
	}
	return entity.Item{ID: id, PK: pk, Attributes: attrs}, nil
}

func toPageCursor(p *wirePageCursor) *entity.PageCursor {
	if p == nil {
		return nil
	}
	return &entity.PageCursor{Cursor: p.Cursor, PageNumber: p.PageNumber, IsCurrent: p.IsCurrent}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

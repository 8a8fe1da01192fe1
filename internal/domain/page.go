package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// SortOrder orders results by one property.
type SortOrder struct {
	Property  string
	Direction string
}

// IsDesc reports whether the order is descending.
func (o SortOrder) IsDesc() bool {
	return o.Direction == Desc
}

// ParseSortOrder parses "property" or "property,asc|desc" and checks the
// property against allowed.
func ParseSortOrder(raw string, allowed []string) (SortOrder, error) {
	prop, dir, hasDir := strings.Cut(strings.TrimSpace(raw), ",")
	prop = strings.TrimSpace(prop)
	order := SortOrder{Property: prop, Direction: Asc}

	if hasDir {
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case Asc:
		case Desc:
			order.Direction = Desc
		default:
			return SortOrder{}, fmt.Errorf("%w: sort direction %q", ErrInvalidFormat, dir)
		}
	}

	if !slices.Contains(allowed, prop) {
		return SortOrder{}, fmt.Errorf("%w: sort property %q", ErrInvalidFormat, prop)
	}
	return order, nil
}

// PageRequest selects a zero-based page of results.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset is the number of rows to skip.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// Page is one slice of a larger ordered result set.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

// NewPage assembles a Page from a query result and the request that
// produced it.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
	}
}

// TotalPages is the number of pages needed for TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

// IsFirst reports whether this is the first page.
func (p Page[T]) IsFirst() bool {
	return p.Number == 0
}

// IsLast reports whether no page follows this one.
func (p Page[T]) IsLast() bool {
	return p.Number+1 >= p.TotalPages()
}

// MapPage converts the content of p with fn, keeping the paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}

// Sortable properties per resource, in their JSON names.
var (
	PessoaSortFields     = []string{"codigo", "nome", "ativo"}
	LancamentoSortFields = []string{"codigo", "descricao", "dataVencimento", "dataPagamento", "valor", "tipo"}
)

package pagination

import (
	"math"

	"github.com/wichananm65/select-shop-backend/internal/apperr"
)

// MaxSize is the largest page a caller may request.
const MaxSize = 100

type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// PageRequest describes one zero-based page of a sorted result set.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction Direction
}

func NewPageRequest(page, size int, sortBy string, isAsc bool) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, apperr.Validation("page index must not be less than zero")
	}
	if size < 1 {
		return PageRequest{}, apperr.Validation("page size must not be less than one")
	}
	if size > MaxSize {
		return PageRequest{}, apperr.Validation("page size must not be greater than %d", MaxSize)
	}
	if page > math.MaxInt32/size {
		return PageRequest{}, apperr.Validation("page index %d is out of range", page)
	}
	if sortBy == "" {
		return PageRequest{}, apperr.Validation("sort field is required")
	}
	dir := DESC
	if isAsc {
		dir = ASC
	}
	return PageRequest{Page: page, Size: size, SortBy: sortBy, Direction: dir}, nil
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

func (r PageRequest) Ascending() bool {
	return r.Direction == ASC
}

// Page is one slice of a larger result together with its position metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPage[T any](content []T, total int64, req PageRequest) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size := int64(req.Size); size > 0 {
		totalPages = int(total / size)
		if total%size != 0 {
			totalPages++
		}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        req.Page,
		Size:          req.Size,
		First:         req.Page == 0,
		Last:          req.Page+1 >= totalPages,
	}
}

// Map converts every element of p with fn, keeping the page metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[U]{
		Content:       out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
		First:         p.First,
		Last:          p.Last,
	}
}

// Slice returns the window of items selected by req; items must already be sorted.
func Slice[T any](items []T, req PageRequest) Page[T] {
	total := int64(len(items))
	start := min(max(req.Offset(), 0), len(items))
	end := start + min(max(req.Size, 0), len(items)-start)
	window := make([]T, end-start)
	copy(window, items[start:end])
	return NewPage(window, total, req)
}

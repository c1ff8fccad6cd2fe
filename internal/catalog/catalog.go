package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/careflow/margin-simulator/internal/domain"
)

// DefaultPageSize matches the selection dialog of the clinic front end.
const DefaultPageSize = 8

// ErrProcedureNotFound is returned when an ID does not match any catalog entry.
var ErrProcedureNotFound = errors.New("procedure not found")

// Catalog is an ordered, read-only list of procedures. It is passed explicitly to
// whatever needs it; there is no package-level catalog state.
type Catalog struct {
	procedures []domain.Procedure
	byID       map[int]int
}

// New builds a catalog from procedures in display order. The slice is copied.
func New(procedures []domain.Procedure) *Catalog {
	c := &Catalog{
		procedures: make([]domain.Procedure, len(procedures)),
		byID:       make(map[int]int, len(procedures)),
	}
	copy(c.procedures, procedures)
	for i, p := range c.procedures {
		if _, dup := c.byID[p.ID]; !dup {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Len returns the number of procedures.
func (c *Catalog) Len() int { return len(c.procedures) }

// All returns a copy of every procedure in catalog order.
func (c *Catalog) All() []domain.Procedure {
	out := make([]domain.Procedure, len(c.procedures))
	copy(out, c.procedures)
	return out
}

// Find looks up a procedure by ID.
func (c *Catalog) Find(id int) (domain.Procedure, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Procedure{}, fmt.Errorf("%w: id %d", ErrProcedureNotFound, id)
	}
	return c.procedures[i], nil
}

// Search returns procedures whose name contains term, ignoring case.
// A blank term matches everything.
func (c *Catalog) Search(term string) []domain.Procedure {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return c.All()
	}
	out := []domain.Procedure{}
	for _, p := range c.procedures {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Page is one page of a filtered catalog listing.
type Page struct {
	Items      []domain.Procedure `json:"items" yaml:"items"`
	Page       int                `json:"page" yaml:"page"`
	PerPage    int                `json:"perPage" yaml:"per_page"`
	TotalPages int                `json:"totalPages" yaml:"total_pages"`
	Matched    int                `json:"matched" yaml:"matched"`
	Total      int                `json:"total" yaml:"total"`
}

// Summary describes how many procedures the filter kept.
func (p Page) Summary() string {
	if p.Matched == p.Total {
		return fmt.Sprintf("%d procedimentos disponíveis", p.Total)
	}
	return fmt.Sprintf("%d de %d procedimentos encontrados", p.Matched, p.Total)
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// Paginate filters by term and returns the requested 1-based page. Pages outside
// the available range are clamped; perPage <= 0 falls back to DefaultPageSize.
func (c *Catalog) Paginate(term string, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	matched := c.Search(term)
	totalPages := (len(matched) + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Page{
		Items:      matched[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Matched:    len(matched),
		Total:      len(c.procedures),
	}
}

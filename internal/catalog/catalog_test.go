package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProcedures(n int) []domain.Procedure {
	out := make([]domain.Procedure, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Procedure{
			ID:             i,
			Name:           fmt.Sprintf("Procedimento %02d", i),
			SuggestedPrice: 100,
			Sessions:       1,
			SessionMinutes: 30,
		})
	}
	return out
}

func TestCatalog_Find(t *testing.T) {
	c := New(makeProcedures(3))

	p, err := c.Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Procedimento 02", p.Name)

	_, err = c.Find(99)
	assert.True(t, errors.Is(err, ErrProcedureNotFound))
}

func TestCatalog_IsolatedFromSource(t *testing.T) {
	src := makeProcedures(2)
	c := New(src)
	src[0].Name = "changed"

	p, err := c.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "Procedimento 01", p.Name)

	all := c.All()
	all[1].Name = "changed"
	p, _ = c.Find(2)
	assert.Equal(t, "Procedimento 02", p.Name)
}

func TestCatalog_Search(t *testing.T) {
	c := New([]domain.Procedure{
		{ID: 1, Name: "Toxina Botulínica"},
		{ID: 2, Name: "Preenchimento Labial"},
		{ID: 3, Name: "Bioestimulador de Colágeno"},
		{ID: 4, Name: "Preenchimento de Olheiras"},
	})

	tests := []struct {
		term string
		ids  []int
	}{
		{"", []int{1, 2, 3, 4}},
		{"   ", []int{1, 2, 3, 4}},
		{"preenchimento", []int{2, 4}},
		{"  PREENCHIMENTO ", []int{2, 4}},
		{"colágeno", []int{3}},
		{"laser", nil},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			var ids []int
			for _, p := range c.Search(tc.term) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestCatalog_Paginate(t *testing.T) {
	c := New(makeProcedures(19))

	first := c.Paginate("", 1, 0)
	assert.Equal(t, DefaultPageSize, first.PerPage)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Items, 8)
	assert.Equal(t, 1, first.Items[0].ID)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.Equal(t, "19 procedimentos disponíveis", first.Summary())

	last := c.Paginate("", 3, 8)
	assert.Len(t, last.Items, 3)
	assert.Equal(t, 17, last.Items[0].ID)
	assert.False(t, last.HasNext())

	clamped := c.Paginate("", 42, 8)
	assert.Equal(t, 3, clamped.Page)

	low := c.Paginate("", -1, 8)
	assert.Equal(t, 1, low.Page)
}

func TestCatalog_PaginateFiltered(t *testing.T) {
	c := New(makeProcedures(19))

	page := c.Paginate("procedimento 1", 1, 8)
	assert.Equal(t, 10, page.Matched)
	assert.Equal(t, 19, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "10 de 19 procedimentos encontrados", page.Summary())

	none := c.Paginate("laser", 1, 8)
	assert.Equal(t, 0, none.TotalPages)
	assert.Equal(t, 1, none.Page)
	assert.Empty(t, none.Items)
}

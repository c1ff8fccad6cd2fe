package output

import (
	"math"
	"testing"

	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profitableResult() domain.SimulationResult {
	return domain.SimulationResult{
		TotalRevenue:       1000,
		TotalVariableCost:  300,
		ContributionMargin: 700,
		MarginPercent:      70,
		MarginPerSession:   70,
		TotalHours:         5,
		ProfitPerHour:      140,
		SessionCost:        30,
	}
}

func lossResult() domain.SimulationResult {
	return domain.SimulationResult{
		TotalRevenue:       50,
		TotalVariableCost:  75,
		ContributionMargin: -25,
		MarginPercent:      -50,
		MarginPerSession:   -5,
		TotalHours:         5,
		ProfitPerHour:      -5,
		SessionCost:        15,
	}
}

func rowByKey(t *testing.T, rows []MetricRow, key string) MetricRow {
	t.Helper()
	for _, r := range rows {
		if r.Key == key {
			return r
		}
	}
	t.Fatalf("row %q not found", key)
	return MetricRow{}
}

func TestMetricRows_Profit(t *testing.T) {
	rows, err := MetricRows(profitableResult())
	require.NoError(t, err)
	require.Len(t, rows, 7)

	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{
		"custoVariavelPorSessao", "receitaTotal", "custoTotalVariavel",
		"margemContribuicao", "margemPorSessao", "margemPercentual", "lucroPorHora",
	}, keys)

	margin := rowByKey(t, rows, "margemContribuicao")
	assert.Equal(t, "R$\u00a0700,00", margin.Value)
	assert.Equal(t, "Lucro total do tratamento", margin.Detail)
	assert.False(t, margin.Loss)

	pct := rowByKey(t, rows, "margemPercentual")
	assert.Equal(t, "70,0%", pct.Value)

	hour := rowByKey(t, rows, "lucroPorHora")
	assert.Equal(t, "Lucro por Hora", hour.Title)
	assert.Equal(t, "R$\u00a0140,00", hour.Value)
	assert.Equal(t, "5.0h de trabalho total", hour.Detail)
}

func TestMetricRows_Loss(t *testing.T) {
	rows, err := MetricRows(lossResult())
	require.NoError(t, err)

	margin := rowByKey(t, rows, "margemContribuicao")
	assert.Equal(t, "-R$\u00a025,00", margin.Value)
	assert.Equal(t, "Prejuízo total do tratamento", margin.Detail)
	assert.True(t, margin.Loss)
	assert.Equal(t, -25.0, margin.Raw)

	perSession := rowByKey(t, rows, "margemPorSessao")
	assert.Equal(t, "-R$\u00a05,00", perSession.Value)
	assert.Equal(t, "Prejuízo por sessão", perSession.Detail)

	pct := rowByKey(t, rows, "margemPercentual")
	assert.Equal(t, "-50,0%", pct.Value)
	assert.Equal(t, "Percentual de prejuízo por sessão", pct.Detail)

	hour := rowByKey(t, rows, "lucroPorHora")
	assert.Equal(t, "Prejuízo por Hora", hour.Title)
	assert.True(t, hour.Loss)

	// costs are never reported as losses
	assert.False(t, rowByKey(t, rows, "custoTotalVariavel").Loss)
}

func TestMetricRows_NonFinite(t *testing.T) {
	r := profitableResult()
	r.ProfitPerHour = math.Inf(1)

	rows, err := MetricRows(r)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrNonFiniteValue)
	assert.Contains(t, err.Error(), "lucroPorHora")
}

func TestBreakdownRows(t *testing.T) {
	rows, total, err := BreakdownRows(domain.Breakdown{
		Lines: []domain.CostLine{
			{Label: "Custo profissional", Amount: 20, Professional: true},
			{Label: "Produto", Amount: 10},
		},
		Total: 30,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Professional)
	assert.Equal(t, "R$\u00a020,00", rows[0].Value)
	assert.Equal(t, "R$\u00a030,00", total)
}

package output

import (
	"fmt"

	"github.com/careflow/margin-simulator/internal/domain"
)

// Placeholder is shown instead of metrics when no valid simulation exists.
const Placeholder = "Aguardando Simulação"

// MetricRow is one displayed line of a simulation result.
type MetricRow struct {
	Key    string  `json:"key" yaml:"key"`
	Title  string  `json:"title" yaml:"title"`
	Value  string  `json:"value" yaml:"value"`
	Raw    float64 `json:"raw" yaml:"raw"`
	Detail string  `json:"detail" yaml:"detail"`
	Loss   bool    `json:"loss" yaml:"loss"`
}

// MetricRows formats a result into display rows, in the order the results table
// shows them. Negative margins are flagged as losses and never clamped.
func MetricRows(r domain.SimulationResult) ([]MetricRow, error) {
	sessionCost, err := FormatCurrency(r.SessionCost)
	if err != nil {
		return nil, fmt.Errorf("custoVariavelPorSessao: %w", err)
	}
	revenue, err := FormatCurrency(r.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("receitaTotal: %w", err)
	}
	variableCost, err := FormatCurrency(r.TotalVariableCost)
	if err != nil {
		return nil, fmt.Errorf("custoTotalVariavel: %w", err)
	}
	margin, err := FormatCurrency(r.ContributionMargin)
	if err != nil {
		return nil, fmt.Errorf("margemContribuicao: %w", err)
	}
	perSession, err := FormatCurrency(r.MarginPerSession)
	if err != nil {
		return nil, fmt.Errorf("margemPorSessao: %w", err)
	}
	percent, err := FormatPercentage(r.MarginPercent)
	if err != nil {
		return nil, fmt.Errorf("margemPercentual: %w", err)
	}
	perHour, err := FormatCurrency(r.ProfitPerHour)
	if err != nil {
		return nil, fmt.Errorf("lucroPorHora: %w", err)
	}
	hours, err := FormatHours(r.TotalHours)
	if err != nil {
		return nil, fmt.Errorf("tempoTotalHoras: %w", err)
	}

	return []MetricRow{
		{
			Key:    "custoVariavelPorSessao",
			Title:  "Custo Total por Sessão",
			Value:  sessionCost,
			Raw:    r.SessionCost,
			Detail: "Custo variável por sessão",
		},
		{
			Key:    "receitaTotal",
			Title:  "Receita Total",
			Value:  revenue,
			Raw:    r.TotalRevenue,
			Detail: "Receita total do tratamento",
		},
		{
			Key:    "custoTotalVariavel",
			Title:  "Custo Total Variável",
			Value:  variableCost,
			Raw:    r.TotalVariableCost,
			Detail: "Custo total para todas as sessões",
		},
		{
			Key:    "margemContribuicao",
			Title:  "Margem de Contribuição",
			Value:  margin,
			Raw:    r.ContributionMargin,
			Detail: pick(r.ContributionMargin, "Lucro total do tratamento", "Prejuízo total do tratamento"),
			Loss:   r.ContributionMargin < 0,
		},
		{
			Key:    "margemPorSessao",
			Title:  "Margem por Sessão",
			Value:  perSession,
			Raw:    r.MarginPerSession,
			Detail: pick(r.MarginPerSession, "Lucro por sessão", "Prejuízo por sessão"),
			Loss:   r.MarginPerSession < 0,
		},
		{
			Key:    "margemPercentual",
			Title:  "Margem de Contribuição %",
			Value:  percent,
			Raw:    r.MarginPercent,
			Detail: pick(r.MarginPercent, "Percentual de lucro por sessão", "Percentual de prejuízo por sessão"),
			Loss:   r.MarginPercent < 0,
		},
		{
			Key:    "lucroPorHora",
			Title:  pick(r.ProfitPerHour, "Lucro por Hora", "Prejuízo por Hora"),
			Value:  perHour,
			Raw:    r.ProfitPerHour,
			Detail: hours + " de trabalho total",
			Loss:   r.ProfitPerHour < 0,
		},
	}, nil
}

// BreakdownRow is a formatted cost breakdown line.
type BreakdownRow struct {
	Label        string
	Value        string
	Professional bool
}

// BreakdownRows formats a cost breakdown and its per-session total.
func BreakdownRows(b domain.Breakdown) ([]BreakdownRow, string, error) {
	rows := make([]BreakdownRow, 0, len(b.Lines))
	for _, l := range b.Lines {
		v, err := FormatCurrency(l.Amount)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", l.Label, err)
		}
		rows = append(rows, BreakdownRow{Label: l.Label, Value: v, Professional: l.Professional})
	}
	total, err := FormatCurrency(b.Total)
	if err != nil {
		return nil, "", fmt.Errorf("custo total sessão: %w", err)
	}
	return rows, total, nil
}

func pick(v float64, gain, loss string) string {
	if v < 0 {
		return loss
	}
	return gain
}

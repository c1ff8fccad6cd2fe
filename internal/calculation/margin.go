package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/careflow/margin-simulator/internal/domain"
)

// ErrInvalidInput is matched by every ValidationError via errors.Is.
var ErrInvalidInput = errors.New("invalid simulation input")

// ValidationError reports the first simulation input field that failed validation.
// When the input is valid but too large to evaluate, Field names the result
// metric that overflowed.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is lets callers match any validation failure against ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateInput checks the preconditions of Calculate in a fixed order and returns
// the first violation.
func ValidateInput(in domain.SimulationInput) error {
	switch {
	case !finite(in.SessionPrice) || in.SessionPrice <= 0:
		return &ValidationError{Field: "precoSessao", Value: in.SessionPrice, Reason: "must be greater than zero"}
	case in.Sessions <= 0:
		return &ValidationError{Field: "numeroSessoes", Value: float64(in.Sessions), Reason: "must be greater than zero"}
	case !finite(in.SessionMinutes) || in.SessionMinutes <= 0:
		return &ValidationError{Field: "tempoSessaoMin", Value: in.SessionMinutes, Reason: "must be greater than zero"}
	case !finite(in.ProfessionalCostPerSession) || in.ProfessionalCostPerSession < 0:
		return &ValidationError{Field: "custoProfissionalPorSessao", Value: in.ProfessionalCostPerSession, Reason: "cannot be negative"}
	}
	for _, c := range in.Consumables {
		if !finite(c.Value) {
			return &ValidationError{Field: "insumos", Value: c.Value, Reason: fmt.Sprintf("value of %q must be finite", c.Name)}
		}
	}
	return nil
}

// Calculate derives the profitability metrics of a treatment. It is pure: the
// same input always yields the same result, and nothing is rounded here.
//
// MarginPercent is margin per session over price per session, which is not the
// same ratio as total margin over total revenue once costs are per session.
func Calculate(in domain.SimulationInput) (*domain.SimulationResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	sessions := float64(in.Sessions)

	consumablesPerSession := domain.SumConsumables(in.Consumables)
	costPerSession := consumablesPerSession + in.ProfessionalCostPerSession

	revenue := in.SessionPrice * sessions
	variableCost := costPerSession * sessions
	margin := revenue - variableCost
	marginPerSession := margin / sessions

	marginPercent := 0.0
	if in.SessionPrice > 0 {
		marginPercent = (marginPerSession / in.SessionPrice) * 100
	}

	totalHours := (sessions * in.SessionMinutes) / 60

	profitPerHour := 0.0
	if totalHours > 0 {
		profitPerHour = margin / totalHours
	}

	res := &domain.SimulationResult{
		TotalRevenue:       revenue,
		TotalVariableCost:  variableCost,
		ContributionMargin: margin,
		MarginPercent:      marginPercent,
		MarginPerSession:   marginPerSession,
		TotalHours:         totalHours,
		ProfitPerHour:      profitPerHour,
		SessionCost:        costPerSession,
	}
	if err := checkResult(res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkResult rejects results that overflowed float64 range.
func checkResult(r *domain.SimulationResult) error {
	metrics := []struct {
		field string
		value float64
	}{
		{"custoVariavelPorSessao", r.SessionCost},
		{"receitaTotal", r.TotalRevenue},
		{"custoTotalVariavel", r.TotalVariableCost},
		{"margemContribuicao", r.ContributionMargin},
		{"margemPorSessao", r.MarginPerSession},
		{"margemPercentual", r.MarginPercent},
		{"tempoTotalHoras", r.TotalHours},
		{"lucroPorHora", r.ProfitPerHour},
	}
	for _, m := range metrics {
		if !finite(m.value) {
			return &ValidationError{Field: m.field, Value: m.value, Reason: "is out of range for this input"}
		}
	}
	return nil
}

// CostBreakdown lists a procedure's per-session costs: professional cost first,
// then consumables in catalog order.
func CostBreakdown(p domain.Procedure) domain.Breakdown {
	lines := make([]domain.CostLine, 0, len(p.Consumables)+1)
	lines = append(lines, domain.CostLine{
		Label:        "Custo profissional",
		Amount:       p.ProfessionalCostPerSession,
		Professional: true,
	})
	for _, c := range p.Consumables {
		lines = append(lines, domain.CostLine{Label: c.Name, Amount: c.Value})
	}
	return domain.Breakdown{Lines: lines, Total: p.SessionCost()}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

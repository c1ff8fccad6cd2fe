package calculation

import (
	"github.com/careflow/margin-simulator/internal/domain"
)

// PriceTarget is the session price needed to reach a target margin percentage,
// together with the simulation at that price.
type PriceTarget struct {
	TargetPercent float64                 `json:"margemAlvo" yaml:"margem_alvo"`
	SessionPrice  float64                 `json:"precoSessao" yaml:"preco_sessao"`
	Result        domain.SimulationResult `json:"result" yaml:"result"`
}

// BreakEvenPrice returns the session price at which the treatment neither earns
// nor loses money: the full per-session cost.
func BreakEvenPrice(in domain.SimulationInput) float64 {
	return domain.SumConsumables(in.Consumables) + in.ProfessionalCostPerSession
}

// PriceForMargin solves for the session price whose margin percentage equals
// targetPercent. Since margin% = (price - cost) / price × 100, the price is
// cost / (1 - target/100), which only exists for targets below 100%.
func PriceForMargin(in domain.SimulationInput, targetPercent float64) (*PriceTarget, error) {
	if !finite(targetPercent) || targetPercent >= 100 {
		return nil, &ValidationError{Field: "margemAlvo", Value: targetPercent, Reason: "must be below 100"}
	}

	price := BreakEvenPrice(in) / (1 - targetPercent/100)
	if !finite(price) || price <= 0 {
		return nil, &ValidationError{Field: "margemAlvo", Value: targetPercent, Reason: "has no positive session price for this cost"}
	}

	in.SessionPrice = price
	res, err := Calculate(in)
	if err != nil {
		return nil, err
	}
	return &PriceTarget{TargetPercent: targetPercent, SessionPrice: price, Result: *res}, nil
}

// BreakEven runs PriceForMargin for a catalog procedure.
func (se *SimulationEngine) BreakEven(procedureID int, targetPercent float64) (*PriceTarget, error) {
	if se.Catalog == nil {
		return nil, errNoCatalog
	}
	proc, err := se.Catalog.Find(procedureID)
	if err != nil {
		return nil, err
	}
	target, err := PriceForMargin(proc.Seed(), targetPercent)
	if err != nil {
		se.Logger.Warnf("break-even for %q rejected: %v", proc.Name, err)
		return nil, err
	}
	se.Logger.Debugf("break-even for %q at %.1f%%: price=%.2f", proc.Name, targetPercent, target.SessionPrice)
	return target, nil
}

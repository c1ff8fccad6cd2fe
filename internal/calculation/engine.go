package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/careflow/margin-simulator/internal/domain"
)

var errNoCatalog = errors.New("simulation engine has no catalog")

// Overrides are the user-editable simulation parameters. Nil fields keep the
// value seeded from the selected procedure.
type Overrides struct {
	SessionPrice *float64
	Sessions     *int
}

// SimulationEngine runs simulations against an explicitly supplied catalog.
// It holds no mutable state and is safe for concurrent use.
type SimulationEngine struct {
	Catalog *catalog.Catalog
	Logger  Logger

	now func() time.Time
}

// NewSimulationEngine creates an engine over the given catalog.
func NewSimulationEngine(c *catalog.Catalog) *SimulationEngine {
	return &SimulationEngine{
		Catalog: c,
		Logger:  NopLogger{},
		now:     time.Now,
	}
}

// SetLogger sets the engine logger. If nil is provided, a no-op logger is used.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// Calculate runs the margin calculation on a raw input, logging the outcome.
func (se *SimulationEngine) Calculate(in domain.SimulationInput) (*domain.SimulationResult, error) {
	res, err := Calculate(in)
	if err != nil {
		se.Logger.Warnf("simulation rejected: %v", err)
		return nil, err
	}
	se.Logger.Debugf("simulation: revenue=%.2f margin=%.2f profit/h=%.2f",
		res.TotalRevenue, res.ContributionMargin, res.ProfitPerHour)
	return res, nil
}

// Simulate seeds an input from the procedure, applies overrides and calculates.
func (se *SimulationEngine) Simulate(procedureID int, o Overrides) (*domain.SimulationReport, error) {
	if se.Catalog == nil {
		return nil, errNoCatalog
	}
	proc, err := se.Catalog.Find(procedureID)
	if err != nil {
		return nil, err
	}

	in := proc.Seed()
	if o.SessionPrice != nil {
		in.SessionPrice = *o.SessionPrice
	}
	if o.Sessions != nil {
		in.Sessions = *o.Sessions
	}

	res, err := se.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("procedure %q: %w", proc.Name, err)
	}

	if res.IsLoss() {
		se.Logger.Infof("procedure %q runs at a loss of %.2f", proc.Name, res.ContributionMargin)
	}

	return &domain.SimulationReport{
		Procedure:   proc,
		Input:       in,
		Result:      *res,
		Breakdown:   CostBreakdown(proc),
		GeneratedAt: se.now(),
	}, nil
}

// CalculateReport calculates a free-form input that is not tied to a catalog
// entry and wraps it in a report under the given name.
func (se *SimulationEngine) CalculateReport(name string, in domain.SimulationInput) (*domain.SimulationReport, error) {
	res, err := se.Calculate(in)
	if err != nil {
		return nil, err
	}
	proc := domain.Procedure{
		Name:                       name,
		SuggestedPrice:             in.SessionPrice,
		Sessions:                   in.Sessions,
		SessionMinutes:             in.SessionMinutes,
		ProfessionalCostPerSession: in.ProfessionalCostPerSession,
		Consumables:                in.Consumables,
	}
	return &domain.SimulationReport{
		Procedure:   proc,
		Input:       in,
		Result:      *res,
		Breakdown:   CostBreakdown(proc),
		GeneratedAt: se.now(),
	}, nil
}

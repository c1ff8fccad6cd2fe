package domain

import "time"

// SimulationInput is the transient record fed to a single margin calculation.
type SimulationInput struct {
	SessionPrice               float64      `yaml:"precoSessao" json:"precoSessao"`
	Sessions                   int          `yaml:"numeroSessoes" json:"numeroSessoes"`
	Consumables                []Consumable `yaml:"insumos" json:"insumos"`
	SessionMinutes             float64      `yaml:"tempoSessaoMin" json:"tempoSessaoMin"`
	ProfessionalCostPerSession float64      `yaml:"custoProfissionalPorSessao" json:"custoProfissionalPorSessao"`
}

// SimulationResult holds the profitability metrics derived from a SimulationInput.
type SimulationResult struct {
	TotalRevenue       float64 `yaml:"receitaTotal" json:"receitaTotal"`
	TotalVariableCost  float64 `yaml:"custoTotalVariavel" json:"custoTotalVariavel"`
	ContributionMargin float64 `yaml:"margemContribuicao" json:"margemContribuicao"`
	MarginPercent      float64 `yaml:"margemPercentual" json:"margemPercentual"`
	MarginPerSession   float64 `yaml:"margemPorSessao" json:"margemPorSessao"`
	TotalHours         float64 `yaml:"tempoTotalHoras" json:"tempoTotalHoras"`
	ProfitPerHour      float64 `yaml:"lucroPorHora" json:"lucroPorHora"`

	// SessionCost is consumables plus professional cost per session. It is
	// serialized as custoVariavelPorSessao for compatibility with existing consumers,
	// even though it includes the professional cost.
	SessionCost float64 `yaml:"custoVariavelPorSessao" json:"custoVariavelPorSessao"`
}

// IsLoss reports whether the treatment as a whole loses money.
func (r SimulationResult) IsLoss() bool {
	return r.ContributionMargin < 0
}

// CostLine is one row of a per-session cost breakdown.
type CostLine struct {
	Label        string  `yaml:"label" json:"label"`
	Amount       float64 `yaml:"amount" json:"amount"`
	Professional bool    `yaml:"professional,omitempty" json:"professional,omitempty"`
}

// Breakdown lists the per-session costs of a procedure, professional cost first.
type Breakdown struct {
	Lines []CostLine `yaml:"lines" json:"lines"`
	Total float64    `yaml:"total" json:"total"`
}

// SimulationReport bundles a calculation with the context needed to render it.
type SimulationReport struct {
	Procedure   Procedure        `yaml:"procedure" json:"procedure"`
	Input       SimulationInput  `yaml:"input" json:"input"`
	Result      SimulationResult `yaml:"result" json:"result"`
	Breakdown   Breakdown        `yaml:"breakdown" json:"breakdown"`
	GeneratedAt time.Time        `yaml:"generated_at" json:"generated_at"`
}

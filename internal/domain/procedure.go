package domain

// Consumable is a named cost line item (insumo) consumed by one session of a procedure.
type Consumable struct {
	Name  string  `yaml:"nome" json:"nome" toml:"nome"`
	Value float64 `yaml:"valor" json:"valor" toml:"valor"`
}

// Procedure is a catalog entry describing a billable aesthetic treatment.
// Procedures are loaded once from static configuration and never mutated.
type Procedure struct {
	ID                         int          `yaml:"id" json:"id" toml:"id"`
	Name                       string       `yaml:"nome" json:"nome" toml:"nome"`
	SuggestedPrice             float64      `yaml:"precoSugerido" json:"precoSugerido" toml:"precoSugerido"`
	Sessions                   int          `yaml:"numeroSessoes" json:"numeroSessoes" toml:"numeroSessoes"`
	SessionMinutes             float64      `yaml:"tempoSessaoMin" json:"tempoSessaoMin" toml:"tempoSessaoMin"`
	ProfessionalCostPerSession float64      `yaml:"custoProfissionalPorSessao" json:"custoProfissionalPorSessao" toml:"custoProfissionalPorSessao"`
	Consumables                []Consumable `yaml:"insumos" json:"insumos" toml:"insumos"`
}

// ConsumablesCost returns the summed consumable cost of a single session.
func (p Procedure) ConsumablesCost() float64 {
	return SumConsumables(p.Consumables)
}

// SessionCost returns consumables plus professional cost for a single session.
func (p Procedure) SessionCost() float64 {
	return p.ConsumablesCost() + p.ProfessionalCostPerSession
}

// Seed builds a fresh simulation input from the procedure's suggested price and
// session count. The consumable slice is copied so callers cannot alias catalog data.
func (p Procedure) Seed() SimulationInput {
	consumables := make([]Consumable, len(p.Consumables))
	copy(consumables, p.Consumables)
	return SimulationInput{
		SessionPrice:               p.SuggestedPrice,
		Sessions:                   p.Sessions,
		Consumables:                consumables,
		SessionMinutes:             p.SessionMinutes,
		ProfessionalCostPerSession: p.ProfessionalCostPerSession,
	}
}

// SumConsumables adds up consumable values. An empty list sums to zero.
func SumConsumables(items []Consumable) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}

package staterules

import "github.com/shopspring/decimal"

// DefaultKey is the fallback entry consulted when a state or role has
// no explicit configuration.
const DefaultKey = "default"

// PTSlab is one professional-tax band: employees whose monthly gross
// falls in [Min, Max] owe Amount.
type PTSlab struct {
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Amount decimal.Decimal `json:"amount"`
}

// Rules is the injected statutory configuration: PT slabs keyed by
// state and minimum wages keyed by job role or state. The engine never
// mutates it.
type Rules struct {
	PTSlabs  map[string][]PTSlab        `json:"ptSlabs"`
	MinWages map[string]decimal.Decimal `json:"minWages"`
}

// SlabsFor returns the PT slabs for a state, falling back to the
// default slab set. The second return is false when neither exists.
func (r Rules) SlabsFor(state string) ([]PTSlab, bool) {
	if slabs, ok := r.PTSlabs[state]; ok && len(slabs) > 0 {
		return slabs, true
	}
	if slabs, ok := r.PTSlabs[DefaultKey]; ok && len(slabs) > 0 {
		return slabs, true
	}
	return nil, false
}

// SlabForGross finds the slab covering the given gross, if any.
func (r Rules) SlabForGross(state string, gross decimal.Decimal) (PTSlab, bool) {
	slabs, ok := r.SlabsFor(state)
	if !ok {
		return PTSlab{}, false
	}
	for _, slab := range slabs {
		if gross.GreaterThanOrEqual(slab.Min) && gross.LessThanOrEqual(slab.Max) {
			return slab, true
		}
	}
	return PTSlab{}, false
}

// MinWageFor resolves the minimum wage for a role/state pair: job role
// first, then state, then the default floor. False when none applies.
func (r Rules) MinWageFor(jobRole, state string) (decimal.Decimal, bool) {
	if wage, ok := r.MinWages[jobRole]; ok && wage.IsPositive() {
		return wage, true
	}
	if wage, ok := r.MinWages[state]; ok && wage.IsPositive() {
		return wage, true
	}
	if wage, ok := r.MinWages[DefaultKey]; ok && wage.IsPositive() {
		return wage, true
	}
	return decimal.Zero, false
}

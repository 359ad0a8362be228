package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// VolatilityRange bounds the uniform multiplier applied to each compounding
// period's expected return. A zero value or a collapsed range disables the
// draw: the multiplier is the single bound (1 for the zero value).
type VolatilityRange struct {
	Min float64
	Max float64
}

func (v VolatilityRange) draw(r Rand) float64 {
	if v.Min == 0 && v.Max == 0 {
		return 1
	}
	if v.Max <= v.Min {
		return v.Min
	}
	return v.Min + r.Float64()*(v.Max-v.Min)
}

// InvestmentDefinition is an authored, immutable catalog entry.
// CompoundingFrequencyTicks paces when compounding fires;
// CompoundsPerYear paces how large each period's rate is
// (rate = AnnualReturnRate / CompoundsPerYear). The two are independent.
type InvestmentDefinition struct {
	Name                      string
	DisplayName               string
	Risk                      RiskLevel
	AnnualReturnRate          float64
	Volatility                VolatilityRange
	CompoundingFrequencyTicks int64
	CompoundsPerYear          int64
	MinimumDepositMicros      int64
}

// Position is one open investment. Each Open call creates an independent
// position; concurrent positions in the same definition are never merged.
type Position struct {
	ID                 string
	Definition         *InvestmentDefinition
	PrincipalMicros    int64
	CurrentValueMicros int64
	TicksHeld          int64
	TicksSinceCompound int64
}

func (p *Position) UnrealizedMicros() int64 {
	return p.CurrentValueMicros - p.PrincipalMicros
}

// SaleRecord captures a liquidation for the sell-history log.
type SaleRecord struct {
	PositionID         string `json:"position_id"`
	Definition         string `json:"definition"`
	PrincipalMicros    int64  `json:"principal_micros"`
	ProceedsMicros     int64  `json:"proceeds_micros"`
	RealizedGainMicros int64  `json:"realized_gain_micros"`
	TicksHeld          int64  `json:"ticks_held"`
}

// InvestmentBook tracks the player's open positions against the authored
// catalog, applies periodic compounding and volatility, and keeps the
// realized/unrealized gain accounting.
type InvestmentBook struct {
	ledger  *Ledger
	rand    Rand
	catalog []InvestmentDefinition

	positions map[string]*Position
	order     []string
	sales     []SaleRecord
}

func NewInvestmentBook(ledger *Ledger, r Rand, catalog []InvestmentDefinition) *InvestmentBook {
	return &InvestmentBook{
		ledger:    ledger,
		rand:      r,
		catalog:   catalog,
		positions: make(map[string]*Position),
	}
}

func (b *InvestmentBook) Catalog() []InvestmentDefinition {
	out := make([]InvestmentDefinition, len(b.catalog))
	copy(out, b.catalog)
	return out
}

func (b *InvestmentBook) Definition(name string) (*InvestmentDefinition, error) {
	for i := range b.catalog {
		if b.catalog[i].Name == name {
			return &b.catalog[i], nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrDefinitionNotFound)
}

// Open commits amountMicros from the ledger into a new position.
func (b *InvestmentBook) Open(definitionName string, amountMicros int64) (*Position, error) {
	def, err := b.Definition(definitionName)
	if err != nil {
		return nil, err
	}
	if amountMicros <= 0 {
		return nil, fmt.Errorf("deposit of %d micros: %w", amountMicros, ErrInvalidAmount)
	}
	if amountMicros < def.MinimumDepositMicros {
		return nil, fmt.Errorf("deposit %.2f below minimum %.2f for %s: %w",
			MicrosToCoins(amountMicros), MicrosToCoins(def.MinimumDepositMicros), def.Name, ErrInvalidAmount)
	}
	if err := b.ledger.Debit(amountMicros, "open "+def.Name); err != nil {
		return nil, err
	}
	p := &Position{
		ID:                 uuid.NewString(),
		Definition:         def,
		PrincipalMicros:    amountMicros,
		CurrentValueMicros: amountMicros,
	}
	b.positions[p.ID] = p
	b.order = append(b.order, p.ID)
	return p, nil
}

// Tick advances every open position by one tick, applying one compounding
// event per elapsed frequency multiple. Catch-up is supported: if the
// counter has accumulated several multiples, each fires in turn.
func (b *InvestmentBook) Tick() {
	for _, id := range b.order {
		p := b.positions[id]
		p.TicksHeld++
		p.TicksSinceCompound++
		freq := p.Definition.CompoundingFrequencyTicks
		for freq > 0 && p.TicksSinceCompound >= freq {
			p.TicksSinceCompound -= freq
			b.compoundOnce(p)
		}
	}
}

func (b *InvestmentBook) compoundOnce(p *Position) {
	def := p.Definition
	rate := def.AnnualReturnRate / float64(def.CompoundsPerYear)
	mult := def.Volatility.draw(b.rand)
	next := int64(math.Round(float64(p.CurrentValueMicros) * (1 + rate*mult)))
	if next < 0 {
		next = 0
	}
	p.CurrentValueMicros = next
}

// Sell liquidates a position: the current value returns to the ledger and
// the realized gain is locked into the sell history.
func (b *InvestmentBook) Sell(positionID string) (SaleRecord, error) {
	p, ok := b.positions[positionID]
	if !ok {
		return SaleRecord{}, fmt.Errorf("%q: %w", positionID, ErrPositionNotFound)
	}
	rec := SaleRecord{
		PositionID:         p.ID,
		Definition:         p.Definition.Name,
		PrincipalMicros:    p.PrincipalMicros,
		ProceedsMicros:     p.CurrentValueMicros,
		RealizedGainMicros: p.CurrentValueMicros - p.PrincipalMicros,
		TicksHeld:          p.TicksHeld,
	}
	if rec.ProceedsMicros > 0 {
		_ = b.ledger.Credit(rec.ProceedsMicros, SourceSaleProceeds)
	}
	delete(b.positions, positionID)
	for i, id := range b.order {
		if id == positionID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.sales = append(b.sales, rec)
	return rec, nil
}

// Positions returns open positions in open order.
func (b *InvestmentBook) Positions() []*Position {
	out := make([]*Position, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.positions[id])
	}
	return out
}

func (b *InvestmentBook) Position(positionID string) (*Position, error) {
	p, ok := b.positions[positionID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", positionID, ErrPositionNotFound)
	}
	return p, nil
}

// OpenValueMicros is the summed current value of all open positions.
func (b *InvestmentBook) OpenValueMicros() int64 {
	var total int64
	for _, p := range b.positions {
		total += p.CurrentValueMicros
	}
	return total
}

// UnrealizedMicros is the paper gain across open positions.
func (b *InvestmentBook) UnrealizedMicros() int64 {
	var total int64
	for _, p := range b.positions {
		total += p.UnrealizedMicros()
	}
	return total
}

// RealizedMicros is the gain locked in by past sales.
func (b *InvestmentBook) RealizedMicros() int64 {
	var total int64
	for _, rec := range b.sales {
		total += rec.RealizedGainMicros
	}
	return total
}

func (b *InvestmentBook) Sales() []SaleRecord {
	out := make([]SaleRecord, len(b.sales))
	copy(out, b.sales)
	return out
}

func (b *InvestmentBook) Reset() {
	b.positions = make(map[string]*Position)
	b.order = nil
	b.sales = nil
}

// ProjectedValueMicros is a pure estimate of a deposit's value after the
// given number of ticks, with the volatility multiplier pinned to 1. Used
// for projections only, never for settlement.
func ProjectedValueMicros(def InvestmentDefinition, principalMicros, ticks int64) int64 {
	if def.CompoundingFrequencyTicks <= 0 || def.CompoundsPerYear <= 0 {
		return principalMicros
	}
	events := ticks / def.CompoundingFrequencyTicks
	rate := def.AnnualReturnRate / float64(def.CompoundsPerYear)
	value := float64(principalMicros) * math.Pow(1+rate, float64(events))
	return int64(math.Round(value))
}

// SortCatalog orders definitions by risk then name for stable display.
func SortCatalog(defs []InvestmentDefinition) {
	rank := map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}
	sort.SliceStable(defs, func(i, j int) bool {
		if rank[defs[i].Risk] != rank[defs[j].Risk] {
			return rank[defs[i].Risk] < rank[defs[j].Risk]
		}
		return defs[i].Name < defs[j].Name
	})
}

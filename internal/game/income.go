package game

import (
	"fmt"
	"math"
)

// IncomeLevel is one authored row of the restaurant level table. Index 0 is
// level 1. UpgradeCostMicros is the price to advance from this level to the
// next; the value on the last row is never consulted.
type IncomeLevel struct {
	IncomeMultiplier  float64
	UpgradeCostMicros int64
}

// IncomeSource is the restaurant: a tick-driven generator of predictable
// income, upgradeable through discrete levels. Lot income bonuses the player
// has earned are credited alongside the base income on every tick.
type IncomeSource struct {
	ledger           *Ledger
	baseIncomeMicros int64
	levels           []IncomeLevel

	level          int
	lotBonusMicros int64
}

func NewIncomeSource(ledger *Ledger, baseIncomeMicros int64, levels []IncomeLevel) *IncomeSource {
	return &IncomeSource{
		ledger:           ledger,
		baseIncomeMicros: baseIncomeMicros,
		levels:           levels,
		level:            1,
	}
}

func (s *IncomeSource) Level() int    { return s.level }
func (s *IncomeSource) MaxLevel() int { return len(s.levels) }

func (s *IncomeSource) LotBonusMicros() int64 { return s.lotBonusMicros }

// IncomeForLevelMicros is the base restaurant income at the given level,
// excluding lot bonuses. Out-of-range levels clamp to the table ends.
func (s *IncomeSource) IncomeForLevelMicros(level int) int64 {
	if level < 1 {
		level = 1
	}
	if level > len(s.levels) {
		level = len(s.levels)
	}
	mult := s.levels[level-1].IncomeMultiplier
	return int64(math.Round(float64(s.baseIncomeMicros) * mult))
}

// UpgradeCostMicros is the authored cost to advance from level to level+1,
// or UpgradeUnavailable at the cap or outside the table.
func (s *IncomeSource) UpgradeCostMicros(level int) int64 {
	if level < 1 || level >= len(s.levels) {
		return UpgradeUnavailable
	}
	return s.levels[level-1].UpgradeCostMicros
}

func (s *IncomeSource) Upgrade() error {
	cost := s.UpgradeCostMicros(s.level)
	if cost == UpgradeUnavailable {
		return fmt.Errorf("level %d: %w", s.level, ErrAtMaxLevel)
	}
	if err := s.ledger.Debit(cost, "restaurant upgrade"); err != nil {
		return err
	}
	s.level++
	return nil
}

// AddLotBonus registers a lot's passive income to future ticks.
func (s *IncomeSource) AddLotBonus(bonusMicros int64) {
	s.lotBonusMicros += bonusMicros
}

func (s *IncomeSource) Tick() {
	if income := s.IncomeForLevelMicros(s.level); income > 0 {
		_ = s.ledger.Credit(income, SourceRestaurant)
	}
	if s.lotBonusMicros > 0 {
		_ = s.ledger.Credit(s.lotBonusMicros, SourceLotBonus)
	}
}

func (s *IncomeSource) Reset() {
	s.level = 1
	s.lotBonusMicros = 0
}

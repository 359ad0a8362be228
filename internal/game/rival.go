package game

import (
	"fmt"
	"math"
)

// AggressionCurve maps game progress (rival-owned lots / total lots) to a
// purchase-frequency multiplier. Disabled, the configured interval applies
// verbatim. The multiplier never drops below 1 and the effective interval
// never drops below MinIntervalTicks.
type AggressionCurve struct {
	Enabled          bool
	Gain             float64
	MinIntervalTicks int64
}

func (c AggressionCurve) multiplier(progress float64) float64 {
	m := 1 + c.Gain*progress
	if m < 1 {
		return 1
	}
	return m
}

type RivalConfig struct {
	StartingMicros        int64
	IncomePerTickMicros   int64
	PurchaseIntervalTicks int64
	WarningTicks          int64
	PurchaseBufferMicros  int64
	Aggression            AggressionCurve
}

// RivalAgent is the autonomous actor racing the player for lots. It earns
// into its own balance, never the player ledger, and attempts a purchase
// each time its effective interval elapses.
type RivalAgent struct {
	cfg    RivalConfig
	market *LotMarket
	bus    *Bus

	balanceMicros     int64
	ticksSinceAttempt int64
	warned            bool
}

func NewRivalAgent(cfg RivalConfig, market *LotMarket, bus *Bus) *RivalAgent {
	if bus == nil {
		bus = NewBus()
	}
	return &RivalAgent{
		cfg:           cfg,
		market:        market,
		bus:           bus,
		balanceMicros: cfg.StartingMicros,
	}
}

func (a *RivalAgent) BalanceMicros() int64 { return a.balanceMicros }

// CanAfford and Debit make the agent a Wallet for LotMarket purchases.
func (a *RivalAgent) CanAfford(amountMicros int64) bool {
	return amountMicros <= a.balanceMicros
}

func (a *RivalAgent) Debit(amountMicros int64, reason string) error {
	if amountMicros <= 0 {
		return fmt.Errorf("debit of %d micros: %w", amountMicros, ErrInvalidAmount)
	}
	if a.balanceMicros < amountMicros {
		return fmt.Errorf("rival %s: %w", reason, ErrInsufficientFunds)
	}
	a.balanceMicros -= amountMicros
	return nil
}

// EffectiveIntervalTicks applies the aggression curve to the configured
// purchase interval using the rival's current lot share as progress.
func (a *RivalAgent) EffectiveIntervalTicks() int64 {
	if !a.cfg.Aggression.Enabled {
		return a.cfg.PurchaseIntervalTicks
	}
	progress := 0.0
	if total := a.market.TotalLots(); total > 0 {
		progress = float64(a.market.OwnedBy(OwnerRival)) / float64(total)
	}
	eff := int64(math.Round(float64(a.cfg.PurchaseIntervalTicks) / a.cfg.Aggression.multiplier(progress)))
	floor := a.cfg.Aggression.MinIntervalTicks
	if floor < 1 {
		floor = 1
	}
	if eff < floor {
		eff = floor
	}
	return eff
}

// Tick earns income, raises the warning ahead of the next scheduled
// attempt, and attempts a purchase once the effective interval elapses.
// A failed attempt carries no penalty; the counter simply restarts.
func (a *RivalAgent) Tick() {
	if a.cfg.IncomePerTickMicros > 0 {
		a.balanceMicros += a.cfg.IncomePerTickMicros
	}
	a.ticksSinceAttempt++

	interval := a.EffectiveIntervalTicks()
	remaining := interval - a.ticksSinceAttempt
	if !a.warned && remaining > 0 && remaining <= a.cfg.WarningTicks {
		a.bus.publishWarning(RivalWarning{TicksRemaining: remaining})
		a.warned = true
	}

	if a.ticksSinceAttempt < interval {
		return
	}
	a.ticksSinceAttempt = 0
	a.warned = false
	a.attemptPurchase()
}

// attemptPurchase targets the cheapest unowned lot the rival can cover
// with its configured buffer left intact.
func (a *RivalAgent) attemptPurchase() {
	// A zero budget still covers free lots.
	budget := a.balanceMicros - a.cfg.PurchaseBufferMicros
	if budget < 0 {
		budget = 0
	}
	lot, ok := a.market.CheapestUnowned(budget)
	if !ok {
		return
	}
	_ = a.market.AttemptPurchase(lot.LotID, OwnerRival, a)
}

func (a *RivalAgent) Reset() {
	a.balanceMicros = a.cfg.StartingMicros
	a.ticksSinceAttempt = 0
	a.warned = false
}

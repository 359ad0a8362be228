package game

import "fmt"

// Income source tags carried on credit notifications.
const (
	SourceRestaurant   = "restaurant"
	SourceLotBonus     = "lot_bonus"
	SourceSaleProceeds = "sale_proceeds"
	SourceReset        = "reset"
)

// Ledger is the single pool holding all player currency. Balance moves only
// through Credit and Debit; a debit is all-or-nothing and the balance never
// goes negative.
type Ledger struct {
	bus           *Bus
	balanceMicros int64
}

func NewLedger(bus *Bus, startingMicros int64) *Ledger {
	if bus == nil {
		bus = NewBus()
	}
	return &Ledger{bus: bus, balanceMicros: startingMicros}
}

func (l *Ledger) BalanceMicros() int64 {
	return l.balanceMicros
}

func (l *Ledger) CanAfford(amountMicros int64) bool {
	return amountMicros <= l.balanceMicros
}

func (l *Ledger) Credit(amountMicros int64, source string) error {
	if amountMicros <= 0 {
		return fmt.Errorf("credit of %d micros: %w", amountMicros, ErrInvalidAmount)
	}
	l.balanceMicros += amountMicros
	l.bus.publishBalance(BalanceChange{NewBalanceMicros: l.balanceMicros, DeltaMicros: amountMicros})
	l.bus.publishIncome(IncomeEvent{AmountMicros: amountMicros, Source: source})
	return nil
}

func (l *Ledger) Debit(amountMicros int64, reason string) error {
	if amountMicros <= 0 {
		return fmt.Errorf("debit of %d micros: %w", amountMicros, ErrInvalidAmount)
	}
	if l.balanceMicros < amountMicros {
		return fmt.Errorf("%s costs %.2f, balance %.2f: %w",
			reason, MicrosToCoins(amountMicros), MicrosToCoins(l.balanceMicros), ErrInsufficientFunds)
	}
	l.balanceMicros -= amountMicros
	l.bus.publishBalance(BalanceChange{NewBalanceMicros: l.balanceMicros, DeltaMicros: -amountMicros})
	return nil
}

// Reset reinitializes the pool. The notification carries the full new
// balance as its delta, as if credited from zero.
func (l *Ledger) Reset(startingMicros int64) {
	l.balanceMicros = startingMicros
	l.bus.publishBalance(BalanceChange{NewBalanceMicros: l.balanceMicros, DeltaMicros: l.balanceMicros})
}

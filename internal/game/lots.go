package game

import (
	"fmt"
	"sort"
)

type Owner string

const (
	OwnerNone   Owner = "unowned"
	OwnerPlayer Owner = "player"
	OwnerRival  Owner = "rival"
)

type Outcome string

const (
	OutcomeOpen Outcome = "open"
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// CityLotDefinition is an authored, immutable city parcel.
type CityLotDefinition struct {
	LotID             string
	DisplayName       string
	BaseCostMicros    int64
	IncomeBonusMicros int64
	GridX             int
	GridY             int
}

// Wallet is the funding side of a lot purchase: the player's Ledger or the
// rival's own balance.
type Wallet interface {
	CanAfford(amountMicros int64) bool
	Debit(amountMicros int64, reason string) error
}

// LotMarket is the catalog of purchasable lots and the sole authority over
// ownership and the terminal game state. Ownership is permanent: once a lot
// is owned it never changes hands.
type LotMarket struct {
	bus  *Bus
	lots []CityLotDefinition

	owners      map[string]Owner
	outcome     Outcome
	outcomeTick int64
	tickNow     func() int64
	playerBonus func(bonusMicros int64)
}

func NewLotMarket(bus *Bus, lots []CityLotDefinition) *LotMarket {
	if bus == nil {
		bus = NewBus()
	}
	m := &LotMarket{bus: bus, lots: lots, outcome: OutcomeOpen}
	m.owners = make(map[string]Owner, len(lots))
	for _, lot := range lots {
		m.owners[lot.LotID] = OwnerNone
	}
	return m
}

// SetPlayerBonusSink wires player lot bonuses into the income source.
func (m *LotMarket) SetPlayerBonusSink(fn func(bonusMicros int64)) {
	m.playerBonus = fn
}

// SetTickSource lets the terminal notification carry the current tick.
func (m *LotMarket) SetTickSource(fn func() int64) {
	m.tickNow = fn
}

func (m *LotMarket) Lots() []CityLotDefinition {
	out := make([]CityLotDefinition, len(m.lots))
	copy(out, m.lots)
	return out
}

func (m *LotMarket) TotalLots() int { return len(m.lots) }

func (m *LotMarket) Owner(lotID string) (Owner, bool) {
	owner, ok := m.owners[lotID]
	return owner, ok
}

func (m *LotMarket) OwnedBy(owner Owner) int {
	n := 0
	for _, o := range m.owners {
		if o == owner {
			n++
		}
	}
	return n
}

// Ownership returns a copy of the lot -> owner map.
func (m *LotMarket) Ownership() map[string]Owner {
	out := make(map[string]Owner, len(m.owners))
	for id, o := range m.owners {
		out[id] = o
	}
	return out
}

// CheapestUnowned returns the lowest-cost unowned lot within budget,
// tie-broken by LotID so rival targeting is deterministic.
func (m *LotMarket) CheapestUnowned(budgetMicros int64) (CityLotDefinition, bool) {
	candidates := make([]CityLotDefinition, 0, len(m.lots))
	for _, lot := range m.lots {
		if m.owners[lot.LotID] == OwnerNone && lot.BaseCostMicros <= budgetMicros {
			candidates = append(candidates, lot)
		}
	}
	if len(candidates) == 0 {
		return CityLotDefinition{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].BaseCostMicros != candidates[j].BaseCostMicros {
			return candidates[i].BaseCostMicros < candidates[j].BaseCostMicros
		}
		return candidates[i].LotID < candidates[j].LotID
	})
	return candidates[0], true
}

// AttemptPurchase resolves a purchase for either actor. It debits the
// buyer's wallet, settles ownership, routes a player lot's income bonus
// into the income source, and re-evaluates the terminal state.
func (m *LotMarket) AttemptPurchase(lotID string, buyer Owner, funds Wallet) error {
	if m.outcome != OutcomeOpen {
		return fmt.Errorf("lot %s: %w", lotID, ErrGameOver)
	}
	lot, err := m.lot(lotID)
	if err != nil {
		return err
	}
	if m.owners[lotID] != OwnerNone {
		return fmt.Errorf("lot %s held by %s: %w", lotID, m.owners[lotID], ErrLotAlreadyOwned)
	}
	// Free lots settle without touching the wallet.
	if lot.BaseCostMicros > 0 {
		if !funds.CanAfford(lot.BaseCostMicros) {
			return fmt.Errorf("lot %s costs %.2f: %w", lotID, MicrosToCoins(lot.BaseCostMicros), ErrInsufficientFunds)
		}
		if err := funds.Debit(lot.BaseCostMicros, "buy lot "+lotID); err != nil {
			return err
		}
	}
	m.owners[lotID] = buyer
	if buyer == OwnerPlayer && m.playerBonus != nil && lot.IncomeBonusMicros > 0 {
		m.playerBonus(lot.IncomeBonusMicros)
	}
	m.bus.publishOwnership(OwnershipChange{LotID: lotID, Owner: buyer})
	m.checkWinLose()
	return nil
}

// checkWinLose derives the terminal state after every ownership change.
// It is idempotent: once terminal it never re-fires, and the win/lose
// notification is emitted at most once per session.
func (m *LotMarket) checkWinLose() Outcome {
	if m.outcome != OutcomeOpen {
		return m.outcome
	}
	if m.OwnedBy(OwnerPlayer) == len(m.lots) {
		m.finish(OutcomeWon)
	} else if m.OwnedBy(OwnerRival) == len(m.lots) {
		m.finish(OutcomeLost)
	}
	return m.outcome
}

func (m *LotMarket) finish(outcome Outcome) {
	m.outcome = outcome
	if m.tickNow != nil {
		m.outcomeTick = m.tickNow()
	}
	m.bus.publishGameOver(GameOverEvent{Outcome: outcome, Tick: m.outcomeTick})
}

func (m *LotMarket) Outcome() Outcome   { return m.outcome }
func (m *LotMarket) OutcomeTick() int64 { return m.outcomeTick }

func (m *LotMarket) lot(lotID string) (CityLotDefinition, error) {
	for _, lot := range m.lots {
		if lot.LotID == lotID {
			return lot, nil
		}
	}
	return CityLotDefinition{}, fmt.Errorf("%q: %w", lotID, ErrLotNotFound)
}

func (m *LotMarket) Reset() {
	for id := range m.owners {
		m.owners[id] = OwnerNone
	}
	m.outcome = OutcomeOpen
	m.outcomeTick = 0
}

package game

import (
	"fmt"
	"sync"
	"time"
)

// Session owns one complete game: the ledger, the restaurant, the
// investment book, the lot market, the rival, and the clock that drives
// them. All public operations serialize on the session mutex so an HTTP
// server can share one session; within a tick everything is synchronous
// and runs in a fixed order.
type Session struct {
	mu sync.Mutex

	content Content
	bus     *Bus
	rand    Rand

	ledger *Ledger
	income *IncomeSource
	book   *InvestmentBook
	market *LotMarket
	rival  *RivalAgent
	clock  *SimulationClock

	peakNetWorthMicros int64
}

// Option tweaks session construction; used by tests to pin the RNG.
type Option func(*Session)

func WithRand(r Rand) Option {
	return func(s *Session) { s.rand = r }
}

func WithSeed(seed int64) Option {
	return func(s *Session) { s.rand = NewRand(seed) }
}

func NewSession(content Content, opts ...Option) (*Session, error) {
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	s := &Session{
		content: content,
		bus:     NewBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = NewRand(time.Now().UnixNano())
	}

	s.ledger = NewLedger(s.bus, content.StartingBalanceMicros)
	s.income = NewIncomeSource(s.ledger, content.BaseIncomeMicros, content.IncomeLevels)
	s.book = NewInvestmentBook(s.ledger, s.rand, content.Investments)
	s.market = NewLotMarket(s.bus, content.Lots)
	s.rival = NewRivalAgent(content.Rival, s.market, s.bus)

	s.market.SetPlayerBonusSink(s.income.AddLotBonus)

	// Fixed tick order: restaurant income, then compounding, then the rival.
	s.clock = NewSimulationClock(s.bus, s.income.Tick, s.book.Tick, s.rival.Tick)
	s.market.SetTickSource(s.clock.Tick)

	s.peakNetWorthMicros = s.netWorthMicros()
	return s, nil
}

// Bus exposes the session's notification channel for presentation-layer
// subscribers. Subscribe before the first tick; subscribers must not call
// back into the session.
func (s *Session) Bus() *Bus { return s.bus }

// Advance runs up to n ticks, stopping early once the game reaches its
// terminal state. It returns the tick index after the last tick run.
func (s *Session) Advance(n int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n && s.market.Outcome() == OutcomeOpen; i++ {
		s.clock.Advance()
		s.trackPeak()
	}
	return s.clock.Tick()
}

func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.market.Outcome()
}

// OpenPosition commits balance into an investment definition.
func (s *Session) OpenPosition(definitionName string, amountMicros int64) (PositionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.market.Outcome() != OutcomeOpen {
		return PositionView{}, ErrGameOver
	}
	p, err := s.book.Open(definitionName, amountMicros)
	if err != nil {
		return PositionView{}, err
	}
	s.trackPeak()
	return positionView(p), nil
}

func (s *Session) SellPosition(positionID string) (SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.market.Outcome() != OutcomeOpen {
		return SaleRecord{}, ErrGameOver
	}
	rec, err := s.book.Sell(positionID)
	if err != nil {
		return SaleRecord{}, err
	}
	s.trackPeak()
	return rec, nil
}

func (s *Session) UpgradeIncome() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.market.Outcome() != OutcomeOpen {
		return ErrGameOver
	}
	return s.income.Upgrade()
}

// BuyLot is the player side of the lot race, funded from the ledger.
func (s *Session) BuyLot(lotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.market.Outcome() != OutcomeOpen {
		return ErrGameOver
	}
	if err := s.market.AttemptPurchase(lotID, OwnerPlayer, s.ledger); err != nil {
		return err
	}
	s.trackPeak()
	return nil
}

// ProjectValue estimates a deposit's value after the given ticks with
// volatility pinned to 1. Pure; used for projections only.
func (s *Session) ProjectValue(definitionName string, principalMicros, ticks int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def, err := s.book.Definition(definitionName)
	if err != nil {
		return 0, err
	}
	return ProjectedValueMicros(*def, principalMicros, ticks), nil
}

func (s *Session) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.book.Positions()
	views := make([]PositionView, 0, len(positions))
	for _, p := range positions {
		views = append(views, positionView(p))
	}
	return Dashboard{
		Tick:                s.clock.Tick(),
		Outcome:             s.market.Outcome(),
		BalanceMicros:       s.ledger.BalanceMicros(),
		NetWorthMicros:      s.netWorthMicros(),
		PeakNetWorthMicros:  s.peakNetWorthMicros,
		Level:               s.income.Level(),
		MaxLevel:            s.income.MaxLevel(),
		IncomePerTickMicros: s.income.IncomeForLevelMicros(s.income.Level()),
		LotBonusMicros:      s.income.LotBonusMicros(),
		UpgradeCostMicros:   s.income.UpgradeCostMicros(s.income.Level()),
		RivalBalanceMicros:  s.rival.BalanceMicros(),
		RivalLots:           s.market.OwnedBy(OwnerRival),
		PlayerLots:          s.market.OwnedBy(OwnerPlayer),
		Positions:           views,
		Lots:                s.lotViews(),
	}
}

func (s *Session) Lots() []LotView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lotViews()
}

func (s *Session) Catalog() []InvestmentView {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog := s.book.Catalog()
	SortCatalog(catalog)
	out := make([]InvestmentView, 0, len(catalog))
	for _, def := range catalog {
		out = append(out, InvestmentView{
			Name:                      def.Name,
			DisplayName:               def.DisplayName,
			Risk:                      def.Risk,
			AnnualReturnRate:          def.AnnualReturnRate,
			VolatilityMin:             def.Volatility.Min,
			VolatilityMax:             def.Volatility.Max,
			CompoundingFrequencyTicks: def.CompoundingFrequencyTicks,
			CompoundsPerYear:          def.CompoundsPerYear,
			MinimumDepositMicros:      def.MinimumDepositMicros,
		})
	}
	return out
}

func (s *Session) History() []SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Sales()
}

// Summary is produced only after the terminal notification has fired.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.market.Outcome() == OutcomeOpen {
		return Summary{}, ErrGameRunning
	}
	return Summary{
		Outcome:              s.market.Outcome(),
		FinalTick:            s.market.OutcomeTick(),
		FinalBalanceMicros:   s.ledger.BalanceMicros(),
		PeakNetWorthMicros:   s.peakNetWorthMicros,
		RealizedGainMicros:   s.book.RealizedMicros(),
		UnrealizedGainMicros: s.book.UnrealizedMicros(),
		SellHistory:          s.book.Sales(),
		LotOwnership:         s.market.Ownership(),
	}, nil
}

// Reset restores all runtime state to the authored starting values. Safe at
// any tick boundary; authored content is untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Reset()
	s.market.Reset()
	s.income.Reset()
	s.book.Reset()
	s.rival.Reset()
	s.ledger.Reset(s.content.StartingBalanceMicros)
	s.peakNetWorthMicros = s.netWorthMicros()
}

func (s *Session) trackPeak() {
	if nw := s.netWorthMicros(); nw > s.peakNetWorthMicros {
		s.peakNetWorthMicros = nw
	}
}

func (s *Session) netWorthMicros() int64 {
	return s.ledger.BalanceMicros() + s.book.OpenValueMicros()
}

func (s *Session) lotViews() []LotView {
	lots := s.market.Lots()
	out := make([]LotView, 0, len(lots))
	for _, lot := range lots {
		owner, _ := s.market.Owner(lot.LotID)
		out = append(out, LotView{
			LotID:             lot.LotID,
			DisplayName:       lot.DisplayName,
			BaseCostMicros:    lot.BaseCostMicros,
			IncomeBonusMicros: lot.IncomeBonusMicros,
			GridX:             lot.GridX,
			GridY:             lot.GridY,
			Owner:             owner,
		})
	}
	return out
}

func positionView(p *Position) PositionView {
	return PositionView{
		ID:                 p.ID,
		Definition:         p.Definition.Name,
		DisplayName:        p.Definition.DisplayName,
		Risk:               p.Definition.Risk,
		PrincipalMicros:    p.PrincipalMicros,
		CurrentValueMicros: p.CurrentValueMicros,
		UnrealizedMicros:   p.UnrealizedMicros(),
		TicksHeld:          p.TicksHeld,
	}
}

package game

// Bus is the session-owned notification channel. Each notification kind has
// its own subscriber list; components receive the bus at construction instead
// of reaching for a global dispatcher, so they can be built in isolation.
//
// Publishing happens synchronously inside the tick (the simulation is
// single-threaded and cooperative); subscribers must not mutate simulation
// state.

type TickEvent struct {
	Tick int64 `json:"tick"`
}

type BalanceChange struct {
	NewBalanceMicros int64 `json:"new_balance_micros"`
	DeltaMicros      int64 `json:"delta_micros"`
}

type IncomeEvent struct {
	AmountMicros int64  `json:"amount_micros"`
	Source       string `json:"source"`
}

type OwnershipChange struct {
	LotID string `json:"lot_id"`
	Owner Owner  `json:"owner"`
}

type RivalWarning struct {
	TicksRemaining int64 `json:"ticks_remaining"`
}

type GameOverEvent struct {
	Outcome Outcome `json:"outcome"`
	Tick    int64   `json:"tick"`
}

type Bus struct {
	tick      []func(TickEvent)
	balance   []func(BalanceChange)
	income    []func(IncomeEvent)
	ownership []func(OwnershipChange)
	warning   []func(RivalWarning)
	gameOver  []func(GameOverEvent)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnTick(fn func(TickEvent)) {
	b.tick = append(b.tick, fn)
}

func (b *Bus) OnBalance(fn func(BalanceChange)) {
	b.balance = append(b.balance, fn)
}

func (b *Bus) OnIncome(fn func(IncomeEvent)) {
	b.income = append(b.income, fn)
}

func (b *Bus) OnOwnership(fn func(OwnershipChange)) {
	b.ownership = append(b.ownership, fn)
}

func (b *Bus) OnRivalWarning(fn func(RivalWarning)) {
	b.warning = append(b.warning, fn)
}

func (b *Bus) OnGameOver(fn func(GameOverEvent)) {
	b.gameOver = append(b.gameOver, fn)
}

func (b *Bus) publishTick(e TickEvent) {
	for _, fn := range b.tick {
		fn(e)
	}
}

func (b *Bus) publishBalance(e BalanceChange) {
	for _, fn := range b.balance {
		fn(e)
	}
}

func (b *Bus) publishIncome(e IncomeEvent) {
	for _, fn := range b.income {
		fn(e)
	}
}

func (b *Bus) publishOwnership(e OwnershipChange) {
	for _, fn := range b.ownership {
		fn(e)
	}
}

func (b *Bus) publishWarning(e RivalWarning) {
	for _, fn := range b.warning {
		fn(e)
	}
}

func (b *Bus) publishGameOver(e GameOverEvent) {
	for _, fn := range b.gameOver {
		fn(e)
	}
}

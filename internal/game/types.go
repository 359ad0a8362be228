package game

type Dashboard struct {
	Tick                int64          `json:"tick"`
	Outcome             Outcome        `json:"outcome"`
	BalanceMicros       int64          `json:"balance_micros"`
	NetWorthMicros      int64          `json:"net_worth_micros"`
	PeakNetWorthMicros  int64          `json:"peak_net_worth_micros"`
	Level               int            `json:"level"`
	MaxLevel            int            `json:"max_level"`
	IncomePerTickMicros int64          `json:"income_per_tick_micros"`
	LotBonusMicros      int64          `json:"lot_bonus_micros"`
	UpgradeCostMicros   int64          `json:"upgrade_cost_micros"`
	RivalBalanceMicros  int64          `json:"rival_balance_micros"`
	RivalLots           int            `json:"rival_lots"`
	PlayerLots          int            `json:"player_lots"`
	Positions           []PositionView `json:"positions"`
	Lots                []LotView      `json:"lots"`
}

type PositionView struct {
	ID                 string    `json:"id"`
	Definition         string    `json:"definition"`
	DisplayName        string    `json:"display_name"`
	Risk               RiskLevel `json:"risk"`
	PrincipalMicros    int64     `json:"principal_micros"`
	CurrentValueMicros int64     `json:"current_value_micros"`
	UnrealizedMicros   int64     `json:"unrealized_micros"`
	TicksHeld          int64     `json:"ticks_held"`
}

type InvestmentView struct {
	Name                      string    `json:"name"`
	DisplayName               string    `json:"display_name"`
	Risk                      RiskLevel `json:"risk"`
	AnnualReturnRate          float64   `json:"annual_return_rate"`
	VolatilityMin             float64   `json:"volatility_min"`
	VolatilityMax             float64   `json:"volatility_max"`
	CompoundingFrequencyTicks int64     `json:"compounding_frequency_ticks"`
	CompoundsPerYear          int64     `json:"compounds_per_year"`
	MinimumDepositMicros      int64     `json:"minimum_deposit_micros"`
}

type LotView struct {
	LotID             string `json:"lot_id"`
	DisplayName       string `json:"display_name"`
	BaseCostMicros    int64  `json:"base_cost_micros"`
	IncomeBonusMicros int64  `json:"income_bonus_micros"`
	GridX             int    `json:"grid_x"`
	GridY             int    `json:"grid_y"`
	Owner             Owner  `json:"owner"`
}

// Summary is the read-only snapshot handed to the external narrator once
// the game ends. Nothing else crosses that boundary.
type Summary struct {
	Outcome              Outcome          `json:"outcome"`
	FinalTick            int64            `json:"final_tick"`
	FinalBalanceMicros   int64            `json:"final_balance_micros"`
	PeakNetWorthMicros   int64            `json:"peak_net_worth_micros"`
	RealizedGainMicros   int64            `json:"realized_gain_micros"`
	UnrealizedGainMicros int64            `json:"unrealized_gain_micros"`
	SellHistory          []SaleRecord     `json:"sell_history"`
	LotOwnership         map[string]Owner `json:"lot_ownership"`
}

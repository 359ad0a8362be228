package game

import "fmt"

// Content is the authored data for one session: starting balance, the
// restaurant level table, the investment catalog, the lot map, and the
// rival's economy. Loaded once at session start and immutable thereafter.
type Content struct {
	StartingBalanceMicros int64
	BaseIncomeMicros      int64
	IncomeLevels          []IncomeLevel
	Investments           []InvestmentDefinition
	Lots                  []CityLotDefinition
	Rival                 RivalConfig
}

// Validate rejects malformed authored content at load time, so bad numbers
// never surface as runtime faults mid-session.
func (c Content) Validate() error {
	if c.StartingBalanceMicros < 0 {
		return fmt.Errorf("starting balance must be >= 0")
	}
	if c.BaseIncomeMicros <= 0 {
		return fmt.Errorf("base income per tick must be > 0")
	}
	if len(c.IncomeLevels) == 0 {
		return fmt.Errorf("income level table is empty")
	}
	for i, lvl := range c.IncomeLevels {
		if lvl.IncomeMultiplier <= 0 {
			return fmt.Errorf("income level %d: multiplier must be > 0", i+1)
		}
		if i < len(c.IncomeLevels)-1 && lvl.UpgradeCostMicros <= 0 {
			return fmt.Errorf("income level %d: upgrade cost must be > 0", i+1)
		}
	}
	if len(c.Investments) == 0 {
		return fmt.Errorf("investment catalog is empty")
	}
	seen := map[string]bool{}
	for _, def := range c.Investments {
		if def.Name == "" {
			return fmt.Errorf("investment with empty name")
		}
		if seen[def.Name] {
			return fmt.Errorf("duplicate investment %q", def.Name)
		}
		seen[def.Name] = true
		if def.AnnualReturnRate < 0 || def.AnnualReturnRate > 0.5 {
			return fmt.Errorf("investment %q: annual return %.3f outside [0, 0.5]", def.Name, def.AnnualReturnRate)
		}
		if def.CompoundingFrequencyTicks <= 0 {
			return fmt.Errorf("investment %q: compounding frequency must be > 0 ticks", def.Name)
		}
		if def.CompoundsPerYear <= 0 {
			return fmt.Errorf("investment %q: compounds per year must be > 0", def.Name)
		}
		if def.MinimumDepositMicros < 0 {
			return fmt.Errorf("investment %q: minimum deposit must be >= 0", def.Name)
		}
		// Negative multipliers are legal: they are how a risky period loses money.
		v := def.Volatility
		if v.Max < v.Min {
			return fmt.Errorf("investment %q: volatility range (%.2f, %.2f) inverted", def.Name, v.Min, v.Max)
		}
		switch def.Risk {
		case RiskLow, RiskMedium, RiskHigh:
		default:
			return fmt.Errorf("investment %q: unknown risk level %q", def.Name, def.Risk)
		}
	}
	if len(c.Lots) == 0 {
		return fmt.Errorf("lot map is empty")
	}
	seenLots := map[string]bool{}
	for _, lot := range c.Lots {
		if lot.LotID == "" {
			return fmt.Errorf("lot with empty id")
		}
		if seenLots[lot.LotID] {
			return fmt.Errorf("duplicate lot %q", lot.LotID)
		}
		seenLots[lot.LotID] = true
		if lot.BaseCostMicros < 0 {
			return fmt.Errorf("lot %q: base cost must be >= 0", lot.LotID)
		}
		if lot.IncomeBonusMicros < 0 {
			return fmt.Errorf("lot %q: income bonus must be >= 0", lot.LotID)
		}
	}
	r := c.Rival
	if r.StartingMicros < 0 {
		return fmt.Errorf("rival starting money must be >= 0")
	}
	if r.IncomePerTickMicros < 0 {
		return fmt.Errorf("rival income per tick must be >= 0")
	}
	if r.PurchaseIntervalTicks <= 0 {
		return fmt.Errorf("rival purchase interval must be > 0 ticks")
	}
	if r.WarningTicks < 0 || r.WarningTicks >= r.PurchaseIntervalTicks {
		return fmt.Errorf("rival warning ticks must be in [0, purchase interval)")
	}
	if r.PurchaseBufferMicros < 0 {
		return fmt.Errorf("rival purchase buffer must be >= 0")
	}
	if r.Aggression.Enabled && r.Aggression.Gain < 0 {
		return fmt.Errorf("rival aggression gain must be >= 0")
	}
	return nil
}

// DefaultContent is the built-in campaign used when no content file is
// authored. Numbers are tuned for a 20-30 minute session at one tick per
// second.
func DefaultContent() Content {
	return Content{
		StartingBalanceMicros: 1_000 * MicrosPerCoin,
		BaseIncomeMicros:      4 * MicrosPerCoin,
		IncomeLevels: []IncomeLevel{
			{IncomeMultiplier: 1.0, UpgradeCostMicros: 250 * MicrosPerCoin},
			{IncomeMultiplier: 1.6, UpgradeCostMicros: 600 * MicrosPerCoin},
			{IncomeMultiplier: 2.4, UpgradeCostMicros: 1_400 * MicrosPerCoin},
			{IncomeMultiplier: 3.5, UpgradeCostMicros: 3_200 * MicrosPerCoin},
			{IncomeMultiplier: 5.0},
		},
		Investments: []InvestmentDefinition{
			{
				Name:                      "savings",
				DisplayName:               "City Savings Account",
				Risk:                      RiskLow,
				AnnualReturnRate:          0.04,
				Volatility:                VolatilityRange{Min: 1, Max: 1},
				CompoundingFrequencyTicks: 20,
				CompoundsPerYear:          12,
				MinimumDepositMicros:      50 * MicrosPerCoin,
			},
			{
				Name:                      "bonds",
				DisplayName:               "Municipal Bonds",
				Risk:                      RiskLow,
				AnnualReturnRate:          0.07,
				Volatility:                VolatilityRange{Min: 0.9, Max: 1.1},
				CompoundingFrequencyTicks: 30,
				CompoundsPerYear:          12,
				MinimumDepositMicros:      200 * MicrosPerCoin,
			},
			{
				Name:                      "index",
				DisplayName:               "Harbor Index Fund",
				Risk:                      RiskMedium,
				AnnualReturnRate:          0.12,
				Volatility:                VolatilityRange{Min: 0.6, Max: 1.5},
				CompoundingFrequencyTicks: 30,
				CompoundsPerYear:          12,
				MinimumDepositMicros:      500 * MicrosPerCoin,
			},
			{
				Name:                      "venture",
				DisplayName:               "Venture Syndicate",
				Risk:                      RiskHigh,
				AnnualReturnRate:          0.30,
				Volatility:                VolatilityRange{Min: -0.5, Max: 2.5},
				CompoundingFrequencyTicks: 45,
				CompoundsPerYear:          6,
				MinimumDepositMicros:      1_000 * MicrosPerCoin,
			},
		},
		Lots: []CityLotDefinition{
			{LotID: "market-row", DisplayName: "Market Row", BaseCostMicros: 1_200 * MicrosPerCoin, IncomeBonusMicros: 6 * MicrosPerCoin, GridX: 0, GridY: 0},
			{LotID: "old-harbor", DisplayName: "Old Harbor", BaseCostMicros: 1_800 * MicrosPerCoin, IncomeBonusMicros: 9 * MicrosPerCoin, GridX: 1, GridY: 0},
			{LotID: "mill-yards", DisplayName: "Mill Yards", BaseCostMicros: 2_600 * MicrosPerCoin, IncomeBonusMicros: 13 * MicrosPerCoin, GridX: 0, GridY: 1},
			{LotID: "garden-gate", DisplayName: "Garden Gate", BaseCostMicros: 3_500 * MicrosPerCoin, IncomeBonusMicros: 18 * MicrosPerCoin, GridX: 1, GridY: 1},
			{LotID: "clock-tower", DisplayName: "Clock Tower Plaza", BaseCostMicros: 5_000 * MicrosPerCoin, IncomeBonusMicros: 26 * MicrosPerCoin, GridX: 2, GridY: 1},
			{LotID: "high-street", DisplayName: "High Street", BaseCostMicros: 7_500 * MicrosPerCoin, IncomeBonusMicros: 40 * MicrosPerCoin, GridX: 2, GridY: 0},
		},
		Rival: RivalConfig{
			StartingMicros:        800 * MicrosPerCoin,
			IncomePerTickMicros:   10 * MicrosPerCoin,
			PurchaseIntervalTicks: 90,
			WarningTicks:          15,
			PurchaseBufferMicros:  150 * MicrosPerCoin,
			Aggression: AggressionCurve{
				Enabled:          true,
				Gain:             1.5,
				MinIntervalTicks: 25,
			},
		},
	}
}

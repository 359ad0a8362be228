package game

import "testing"

func testRivalConfig() RivalConfig {
	return RivalConfig{
		StartingMicros:        500 * MicrosPerCoin,
		IncomePerTickMicros:   8 * MicrosPerCoin,
		PurchaseIntervalTicks: 60,
		WarningTicks:          10,
		PurchaseBufferMicros:  100 * MicrosPerCoin,
	}
}

func TestRivalNeverBuysBeforeInterval(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1 * MicrosPerCoin},
	})
	cfg := testRivalConfig()
	cfg.StartingMicros = 1_000_000 * MicrosPerCoin
	rival := NewRivalAgent(cfg, market, bus)

	for i := 0; i < 59; i++ {
		rival.Tick()
		if owner, _ := market.Owner("alpha"); owner != OwnerNone {
			t.Fatalf("rival bought at tick %d, before the interval", i+1)
		}
	}
	rival.Tick()
	if owner, _ := market.Owner("alpha"); owner != OwnerRival {
		t.Fatal("rival did not buy when the interval elapsed")
	}
}

// Starting money 500, income 8/tick, interval 60; the cheapest lot costs
// 1000 with a 100 buffer. At tick 60 the rival holds 980 < 1100 and must
// wait a full extra interval.
func TestRivalWaitsOutTheBuffer(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1_000 * MicrosPerCoin},
		{LotID: "bravo", BaseCostMicros: 9_000 * MicrosPerCoin},
	})
	rival := NewRivalAgent(testRivalConfig(), market, bus)

	for i := 0; i < 60; i++ {
		rival.Tick()
	}
	if got := rival.BalanceMicros(); got != 980*MicrosPerCoin {
		t.Fatalf("balance at tick 60 = %d, want 980 coins", got)
	}
	if owner, _ := market.Owner("alpha"); owner != OwnerNone {
		t.Fatal("rival bought below the buffer threshold")
	}

	for i := 0; i < 60; i++ {
		rival.Tick()
	}
	// 500 + 8*120 = 1460 >= 1100; the second attempt clears.
	if owner, _ := market.Owner("alpha"); owner != OwnerRival {
		t.Fatal("rival did not buy once the buffer cleared")
	}
	if got := rival.BalanceMicros(); got != 460*MicrosPerCoin {
		t.Fatalf("balance after purchase = %d, want 460 coins", got)
	}
}

func TestRivalWarningPrecedesAttempt(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 100_000 * MicrosPerCoin},
	})
	var warnings []RivalWarning
	bus.OnRivalWarning(func(e RivalWarning) { warnings = append(warnings, e) })

	rival := NewRivalAgent(testRivalConfig(), market, bus)

	for i := 0; i < 49; i++ {
		rival.Tick()
	}
	if len(warnings) != 0 {
		t.Fatalf("warned too early: %+v", warnings)
	}
	rival.Tick() // tick 50: 10 ticks before the attempt at 60
	if len(warnings) != 1 || warnings[0].TicksRemaining != 10 {
		t.Fatalf("warnings = %+v", warnings)
	}

	// One warning per cycle, then it re-arms for the next.
	for i := 0; i < 10; i++ {
		rival.Tick()
	}
	if len(warnings) != 1 {
		t.Fatalf("warning repeated inside the cycle: %d", len(warnings))
	}
	for i := 0; i < 50; i++ {
		rival.Tick()
	}
	if len(warnings) != 2 {
		t.Fatalf("warning did not re-arm: %d", len(warnings))
	}
}

func TestAggressionShrinksInterval(t *testing.T) {
	bus := NewBus()
	lots := []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1 * MicrosPerCoin},
		{LotID: "bravo", BaseCostMicros: 1 * MicrosPerCoin},
		{LotID: "charlie", BaseCostMicros: 1 * MicrosPerCoin},
		{LotID: "delta", BaseCostMicros: 1 * MicrosPerCoin},
	}
	market := NewLotMarket(bus, lots)
	cfg := testRivalConfig()
	cfg.StartingMicros = 1_000_000 * MicrosPerCoin
	cfg.Aggression = AggressionCurve{Enabled: true, Gain: 2, MinIntervalTicks: 5}
	rival := NewRivalAgent(cfg, market, bus)

	if got := rival.EffectiveIntervalTicks(); got != 60 {
		t.Fatalf("interval at zero progress = %d", got)
	}

	prev := rival.EffectiveIntervalTicks()
	funds := NewLedger(NewBus(), 1_000_000*MicrosPerCoin)
	for _, lotID := range []string{"alpha", "bravo", "charlie"} {
		if err := market.AttemptPurchase(lotID, OwnerRival, funds); err != nil {
			t.Fatalf("purchase %s: %v", lotID, err)
		}
		got := rival.EffectiveIntervalTicks()
		if got >= prev {
			t.Fatalf("interval %d did not shrink from %d at progress %d/4", got, prev, market.OwnedBy(OwnerRival))
		}
		prev = got
	}
	// 3/4 progress: multiplier 1 + 2*0.75 = 2.5 -> round(60/2.5) = 24.
	if prev != 24 {
		t.Fatalf("interval at 3/4 progress = %d, want 24", prev)
	}
}

func TestAggressionFloor(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1 * MicrosPerCoin},
	})
	cfg := testRivalConfig()
	cfg.PurchaseIntervalTicks = 10
	cfg.WarningTicks = 2
	cfg.Aggression = AggressionCurve{Enabled: true, Gain: 100, MinIntervalTicks: 8}

	funds := NewLedger(NewBus(), 1_000_000*MicrosPerCoin)
	if err := market.AttemptPurchase("alpha", OwnerRival, funds); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	rival := NewRivalAgent(cfg, market, bus)
	if got := rival.EffectiveIntervalTicks(); got != 8 {
		t.Fatalf("interval = %d, want the floor 8", got)
	}
}

func TestDisabledCurveUsesConfiguredInterval(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, testLots())
	rival := NewRivalAgent(testRivalConfig(), market, bus)
	if got := rival.EffectiveIntervalTicks(); got != 60 {
		t.Fatalf("interval = %d, want 60 verbatim", got)
	}
}

func TestRivalNoAffordableLotWaitsWithoutPenalty(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1_000_000 * MicrosPerCoin},
	})
	rival := NewRivalAgent(testRivalConfig(), market, bus)

	for i := 0; i < 60; i++ {
		rival.Tick()
	}
	if owner, _ := market.Owner("alpha"); owner != OwnerNone {
		t.Fatal("rival bought an unaffordable lot")
	}
	// Balance keeps accruing; nothing was spent or forfeited.
	if got := rival.BalanceMicros(); got != 980*MicrosPerCoin {
		t.Fatalf("balance = %d", got)
	}
}

// A penniless rival can still take a free lot: the buffer clamps its
// budget to zero, not below, and a zero-cost lot fits a zero budget.
func TestRivalTakesFreeLotDespiteBuffer(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "freebie", BaseCostMicros: 0},
		{LotID: "bravo", BaseCostMicros: 9_000 * MicrosPerCoin},
	})
	cfg := testRivalConfig()
	cfg.StartingMicros = 0
	cfg.IncomePerTickMicros = 0
	rival := NewRivalAgent(cfg, market, bus)

	for i := 0; i < 60; i++ {
		rival.Tick()
	}
	if owner, _ := market.Owner("freebie"); owner != OwnerRival {
		t.Fatal("rival did not take the free lot")
	}
	if got := rival.BalanceMicros(); got != 0 {
		t.Fatalf("balance moved on a free lot: %d", got)
	}
}

func TestRivalReset(t *testing.T) {
	bus := NewBus()
	market := NewLotMarket(bus, []CityLotDefinition{
		{LotID: "alpha", BaseCostMicros: 1 * MicrosPerCoin},
	})
	cfg := testRivalConfig()
	rival := NewRivalAgent(cfg, market, bus)
	for i := 0; i < 45; i++ {
		rival.Tick()
	}

	rival.Reset()

	if got := rival.BalanceMicros(); got != 500*MicrosPerCoin {
		t.Fatalf("balance after reset = %d", got)
	}
	// A fresh full interval must elapse before the next attempt.
	for i := 0; i < 59; i++ {
		rival.Tick()
	}
	if owner, _ := market.Owner("alpha"); owner != OwnerNone {
		t.Fatal("rival attempted before a full post-reset interval")
	}
	rival.Tick()
	if owner, _ := market.Owner("alpha"); owner != OwnerRival {
		t.Fatal("rival missed its post-reset attempt")
	}
}

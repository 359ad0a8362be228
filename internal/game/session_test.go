package game

import (
	"errors"
	"testing"
)

func testContent() Content {
	return Content{
		StartingBalanceMicros: 1_000 * MicrosPerCoin,
		BaseIncomeMicros:      10 * MicrosPerCoin,
		IncomeLevels:          testLevels(),
		Investments:           []InvestmentDefinition{steadyFund()},
		Lots: []CityLotDefinition{
			{LotID: "alpha", DisplayName: "Alpha", BaseCostMicros: 300 * MicrosPerCoin, IncomeBonusMicros: 5 * MicrosPerCoin},
			{LotID: "bravo", DisplayName: "Bravo", BaseCostMicros: 900 * MicrosPerCoin, IncomeBonusMicros: 9 * MicrosPerCoin},
		},
		Rival: RivalConfig{
			StartingMicros:        100 * MicrosPerCoin,
			IncomePerTickMicros:   4 * MicrosPerCoin,
			PurchaseIntervalTicks: 50,
			WarningTicks:          5,
			PurchaseBufferMicros:  50 * MicrosPerCoin,
		},
	}
}

func TestNewSessionRejectsInvalidContent(t *testing.T) {
	content := testContent()
	content.Investments[0].CompoundsPerYear = 0
	if _, err := NewSession(content, WithSeed(1)); err == nil {
		t.Fatal("expected a content validation error")
	}
}

func TestTickOrderAndNotification(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	var ticks []int64
	session.Bus().OnTick(func(e TickEvent) { ticks = append(ticks, e.Tick) })

	got := session.Advance(3)
	if got != 3 {
		t.Fatalf("tick = %d", got)
	}
	if len(ticks) != 3 || ticks[0] != 1 || ticks[2] != 3 {
		t.Fatalf("tick notifications: %v", ticks)
	}

	dash := session.Dashboard()
	// Three ticks of level-1 income at 10/tick.
	if dash.BalanceMicros != 1_030*MicrosPerCoin {
		t.Fatalf("balance = %d, want 1030 coins", dash.BalanceMicros)
	}
}

func TestPlayerBuysLotAndEarnsBonus(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	if err := session.BuyLot("alpha"); err != nil {
		t.Fatalf("buy lot: %v", err)
	}
	dash := session.Dashboard()
	if dash.BalanceMicros != 700*MicrosPerCoin {
		t.Fatalf("balance after lot = %d", dash.BalanceMicros)
	}
	if dash.LotBonusMicros != 5*MicrosPerCoin {
		t.Fatalf("lot bonus = %d", dash.LotBonusMicros)
	}

	session.Advance(1)
	// 10 income + 5 bonus.
	if got := session.Dashboard().BalanceMicros; got != 715*MicrosPerCoin {
		t.Fatalf("balance after tick = %d, want 715 coins", got)
	}
}

func TestSummaryGatedUntilTerminal(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if _, err := session.Summary(); !errors.Is(err, ErrGameRunning) {
		t.Fatalf("expected ErrGameRunning, got %v", err)
	}

	if err := session.BuyLot("alpha"); err != nil {
		t.Fatalf("buy alpha: %v", err)
	}
	session.Advance(30)
	if err := session.BuyLot("bravo"); err != nil {
		t.Fatalf("buy bravo: %v", err)
	}

	if session.Outcome() != OutcomeWon {
		t.Fatalf("outcome = %s", session.Outcome())
	}
	summary, err := session.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Outcome != OutcomeWon {
		t.Fatalf("summary outcome = %s", summary.Outcome)
	}
	if summary.LotOwnership["alpha"] != OwnerPlayer || summary.LotOwnership["bravo"] != OwnerPlayer {
		t.Fatalf("ownership map: %+v", summary.LotOwnership)
	}
}

func TestMutationsRejectedAfterTerminal(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	session.Advance(40) // build up some balance
	if err := session.BuyLot("alpha"); err != nil {
		t.Fatalf("buy alpha: %v", err)
	}
	if err := session.BuyLot("bravo"); err != nil {
		t.Fatalf("buy bravo: %v", err)
	}

	if err := session.BuyLot("alpha"); !errors.Is(err, ErrGameOver) {
		t.Fatalf("buy after terminal: %v", err)
	}
	if _, err := session.OpenPosition("steady", 100*MicrosPerCoin); !errors.Is(err, ErrGameOver) {
		t.Fatalf("open after terminal: %v", err)
	}
	if err := session.UpgradeIncome(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("upgrade after terminal: %v", err)
	}

	// Ticking past the end is a no-op.
	before := session.Dashboard()
	session.Advance(10)
	after := session.Dashboard()
	if before.Tick != after.Tick || before.BalanceMicros != after.BalanceMicros {
		t.Fatal("simulation advanced past the terminal state")
	}
}

func TestRivalLossEndsGame(t *testing.T) {
	content := testContent()
	content.Rival.StartingMicros = 100_000 * MicrosPerCoin
	content.Rival.PurchaseIntervalTicks = 2
	content.Rival.WarningTicks = 1

	session, err := NewSession(content, WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	var overs []GameOverEvent
	session.Bus().OnGameOver(func(e GameOverEvent) { overs = append(overs, e) })

	session.Advance(100)

	if session.Outcome() != OutcomeLost {
		t.Fatalf("outcome = %s", session.Outcome())
	}
	if len(overs) != 1 {
		t.Fatalf("game over fired %d times", len(overs))
	}
	// The rival buys on ticks 2 and 4.
	if overs[0].Tick != 4 {
		t.Fatalf("terminal tick = %d, want 4", overs[0].Tick)
	}
}

func TestSessionReset(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	session.Advance(40)
	if err := session.BuyLot("alpha"); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if _, err := session.OpenPosition("steady", 200*MicrosPerCoin); err != nil {
		t.Fatalf("open: %v", err)
	}

	session.Reset()

	dash := session.Dashboard()
	if dash.Tick != 0 {
		t.Fatalf("tick after reset = %d", dash.Tick)
	}
	if dash.BalanceMicros != 1_000*MicrosPerCoin {
		t.Fatalf("balance after reset = %d", dash.BalanceMicros)
	}
	if dash.Level != 1 || dash.LotBonusMicros != 0 {
		t.Fatalf("restaurant after reset: level=%d bonus=%d", dash.Level, dash.LotBonusMicros)
	}
	if len(dash.Positions) != 0 {
		t.Fatalf("positions after reset: %d", len(dash.Positions))
	}
	for _, lot := range dash.Lots {
		if lot.Owner != OwnerNone {
			t.Fatalf("lot %s still owned by %s", lot.LotID, lot.Owner)
		}
	}
	if len(session.History()) != 0 {
		t.Fatal("sell history survived reset")
	}
}

func TestNetWorthTracksPeak(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	session.Advance(10)
	dash := session.Dashboard()
	if dash.NetWorthMicros != 1_100*MicrosPerCoin {
		t.Fatalf("net worth = %d", dash.NetWorthMicros)
	}
	if dash.PeakNetWorthMicros != dash.NetWorthMicros {
		t.Fatalf("peak = %d, net worth = %d", dash.PeakNetWorthMicros, dash.NetWorthMicros)
	}

	// Opening a position moves balance into the book, not out of net worth.
	if _, err := session.OpenPosition("steady", 500*MicrosPerCoin); err != nil {
		t.Fatalf("open: %v", err)
	}
	dash = session.Dashboard()
	if dash.NetWorthMicros != 1_100*MicrosPerCoin {
		t.Fatalf("net worth after open = %d", dash.NetWorthMicros)
	}
}

func TestProjectValueThroughSession(t *testing.T) {
	session, err := NewSession(testContent(), WithSeed(1))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	got, err := session.ProjectValue("steady", 1_000*MicrosPerCoin, 30)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got != 1_010*MicrosPerCoin {
		t.Fatalf("projected = %d, want 1010 coins", got)
	}
	if _, err := session.ProjectValue("nope", 1_000*MicrosPerCoin, 30); !errors.Is(err, ErrDefinitionNotFound) {
		t.Fatalf("unknown definition: %v", err)
	}
}

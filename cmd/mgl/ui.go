package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mogul/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptFloat(label string, min float64) (float64, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || v <= min {
			printWarn(fmt.Sprintf("Enter a number greater than %v.", min))
			continue
		}
		return v, nil
	}
}

func formatMicros(v int64) string {
	return fmt.Sprintf("%.2f", game.MicrosToCoins(v))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderDashboard(dash game.Dashboard) {
	accent.Printf("== Mogul / tick %d (%s) ==\n", dash.Tick, dash.Outcome)
	neutral.Printf("Balance %s  |  Net worth %s (peak %s)\n",
		formatMicros(dash.BalanceMicros), formatMicros(dash.NetWorthMicros), formatMicros(dash.PeakNetWorthMicros))
	neutral.Printf("Restaurant L%d/%d earning %s/tick (+%s lot bonus)\n",
		dash.Level, dash.MaxLevel, formatMicros(dash.IncomePerTickMicros), formatMicros(dash.LotBonusMicros))
	if dash.UpgradeCostMicros != game.UpgradeUnavailable {
		neutral.Printf("Next upgrade: %s\n", formatMicros(dash.UpgradeCostMicros))
	} else {
		neutral.Println("Restaurant is at max level.")
	}
	neutral.Printf("Lots: you %d, rival %d (rival holds %s)\n",
		dash.PlayerLots, dash.RivalLots, formatMicros(dash.RivalBalanceMicros))

	if len(dash.Positions) == 0 {
		neutral.Println("No open positions.")
		return
	}
	accent.Println("Positions:")
	for _, p := range dash.Positions {
		line := fmt.Sprintf("  %s  %-22s %-6s in %s now %s (%+.2f) held %d ticks",
			shortID(p.ID), p.DisplayName, p.Risk,
			formatMicros(p.PrincipalMicros), formatMicros(p.CurrentValueMicros),
			game.MicrosToCoins(p.UnrealizedMicros), p.TicksHeld)
		if p.UnrealizedMicros >= 0 {
			success.Println(line)
		} else {
			danger.Println(line)
		}
	}
}

func renderLots(lots []game.LotView) {
	accent.Println("City lots:")
	for _, lot := range lots {
		line := fmt.Sprintf("  %-14s %-20s cost %-10s bonus %s/tick  [%s]",
			lot.LotID, lot.DisplayName, formatMicros(lot.BaseCostMicros), formatMicros(lot.IncomeBonusMicros), lot.Owner)
		switch lot.Owner {
		case game.OwnerPlayer:
			success.Println(line)
		case game.OwnerRival:
			danger.Println(line)
		default:
			neutral.Println(line)
		}
	}
}

func renderInvestments(defs []game.InvestmentView) {
	accent.Println("Investment catalog:")
	for _, def := range defs {
		neutral.Printf("  %-10s %-24s %-6s %.1f%%/yr  vol [%.2f, %.2f]  every %d ticks  min %s\n",
			def.Name, def.DisplayName, def.Risk, def.AnnualReturnRate*100,
			def.VolatilityMin, def.VolatilityMax, def.CompoundingFrequencyTicks,
			formatMicros(def.MinimumDepositMicros))
	}
}

func renderSale(rec game.SaleRecord) {
	msg := fmt.Sprintf("Sold %s: proceeds %s on %s principal, realized %+.2f over %d ticks.",
		rec.Definition, formatMicros(rec.ProceedsMicros), formatMicros(rec.PrincipalMicros),
		game.MicrosToCoins(rec.RealizedGainMicros), rec.TicksHeld)
	if rec.RealizedGainMicros >= 0 {
		printSuccess(msg)
	} else {
		danger.Println(msg)
	}
}

func renderHistory(sales []game.SaleRecord) {
	if len(sales) == 0 {
		neutral.Println("No sales yet.")
		return
	}
	accent.Println("Sell history:")
	for _, rec := range sales {
		neutral.Printf("  %s  %-10s in %-10s out %-10s gain %+.2f  (%d ticks)\n",
			shortID(rec.PositionID), rec.Definition, formatMicros(rec.PrincipalMicros),
			formatMicros(rec.ProceedsMicros), game.MicrosToCoins(rec.RealizedGainMicros), rec.TicksHeld)
	}
}

func renderSummary(summary game.Summary) {
	if summary.Outcome == game.OutcomeWon {
		success.Println("== You own the city. ==")
	} else {
		danger.Println("== The rival owns the city. ==")
	}
	neutral.Printf("Finished at tick %d with %s (peak net worth %s).\n",
		summary.FinalTick, formatMicros(summary.FinalBalanceMicros), formatMicros(summary.PeakNetWorthMicros))
	neutral.Printf("Investment gains: %+.2f realized, %+.2f unrealized, %d sales.\n",
		game.MicrosToCoins(summary.RealizedGainMicros), game.MicrosToCoins(summary.UnrealizedGainMicros),
		len(summary.SellHistory))
	accent.Println("Final ownership:")
	for lotID, owner := range summary.LotOwnership {
		neutral.Printf("  %-14s %s\n", lotID, owner)
	}
}

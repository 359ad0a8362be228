package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "mogul/internal/cli"
	"mogul/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "mgl",
		Short:        "Mogul CLI game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "Mogul API base URL")

	root.AddCommand(
		newDashCmd(&apiBase),
		newLotsCmd(&apiBase),
		newBuyCmd(&apiBase),
		newInvestmentsCmd(&apiBase),
		newInvestCmd(&apiBase),
		newSellCmd(&apiBase),
		newProjectCmd(&apiBase),
		newUpgradeCmd(&apiBase),
		newTickCmd(&apiBase),
		newHistoryCmd(&apiBase),
		newSummaryCmd(&apiBase),
		newResetCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show the city dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			dash, err := newClient(apiBase).Dashboard(ctx)
			if err != nil {
				return err
			}
			renderDashboard(dash)
			return nil
		},
	}
}

func newLotsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lots",
		Short: "List city lots and ownership",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			lots, err := newClient(apiBase).Lots(ctx)
			if err != nil {
				return err
			}
			renderLots(lots)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <lot-id>",
		Short: "Buy a city lot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			lotID := strings.TrimSpace(args[0])
			if err := newClient(apiBase).BuyLot(ctx, lotID); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Lot %s is yours.", lotID))
			return nil
		},
	}
}

func newInvestmentsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "investments",
		Short: "Show the investment catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			defs, err := newClient(apiBase).Investments(ctx)
			if err != nil {
				return err
			}
			renderInvestments(defs)
			return nil
		},
	}
}

func newInvestCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "invest <definition> [amount]",
		Short: "Open an investment position",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := amountFromArgsOrPrompt(args, 1, "Amount to invest")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			view, err := newClient(apiBase).OpenPosition(ctx, strings.TrimSpace(args[0]), amount)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Opened %s position %s at %s.", view.DisplayName, shortID(view.ID), formatMicros(view.PrincipalMicros)))
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <position-id>",
		Short: "Liquidate a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			rec, err := newClient(apiBase).SellPosition(ctx, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			renderSale(rec)
			return nil
		},
	}
}

func newProjectCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "project <definition> <amount> <ticks>",
		Short: "Project a deposit's value (volatility ignored)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			ticks, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tick count %q", args[2])
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			projected, err := newClient(apiBase).ProjectValue(ctx, strings.TrimSpace(args[0]), amount, ticks)
			if err != nil {
				return err
			}
			printInfo(fmt.Sprintf("Projected value after %d ticks: %s", ticks, formatMicros(projected)))
			return nil
		},
	}
}

func newUpgradeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the restaurant",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).UpgradeIncome(ctx)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Restaurant upgraded to level %v.", out["level"]))
			return nil
		},
	}
}

func newTickCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tick [count]",
		Short: "Advance the simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid tick count %q", args[0])
				}
				count = n
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			tick, outcome, err := newClient(apiBase).AdvanceTicks(ctx, count)
			if err != nil {
				return err
			}
			printInfo(fmt.Sprintf("Now at tick %d (%s).", tick, outcome))
			return nil
		},
	}
}

func newHistoryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show sell history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			sales, err := newClient(apiBase).History(ctx)
			if err != nil {
				return err
			}
			renderHistory(sales)
			return nil
		},
	}
}

func newSummaryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the final game summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			summary, err := newClient(apiBase).Summary(ctx)
			if err != nil {
				return err
			}
			renderSummary(summary)
			return nil
		},
	}
}

func newResetCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the session to its starting state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := newClient(apiBase).Reset(ctx); err != nil {
				return err
			}
			printWarn("Session reset.")
			return nil
		},
	}
}

func amountFromArgsOrPrompt(args []string, idx int, label string) (float64, error) {
	if len(args) > idx {
		v, err := strconv.ParseFloat(args[idx], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", args[idx])
		}
		return v, nil
	}
	return promptFloat(label, 0)
}

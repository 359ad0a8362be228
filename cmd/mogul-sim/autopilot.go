package main

import (
	"errors"

	"mogul/internal/game"
)

// autopilot is a naive scripted player for headless runs: upgrade the
// restaurant while upgrades are cheap, park spare cash in the lowest-risk
// investment, liquidate it when a lot comes within reach, and grab lots
// whenever the reserve allows.
type autopilot struct {
	session *game.Session
	reserve int64
	parking string
}

func newAutopilot(session *game.Session, content game.Content) *autopilot {
	parking := ""
	for _, def := range content.Investments {
		if def.Risk == game.RiskLow {
			parking = def.Name
			break
		}
	}
	return &autopilot{
		session: session,
		reserve: content.StartingBalanceMicros / 2,
		parking: parking,
	}
}

func (a *autopilot) openValue(dash game.Dashboard) int64 {
	var total int64
	for _, p := range dash.Positions {
		total += p.CurrentValueMicros
	}
	return total
}

func (a *autopilot) act() {
	dash := a.session.Dashboard()
	if dash.Outcome != game.OutcomeOpen {
		return
	}

	if cost := dash.UpgradeCostMicros; cost != game.UpgradeUnavailable && dash.BalanceMicros > cost+a.reserve {
		_ = a.session.UpgradeIncome()
		dash = a.session.Dashboard()
	}

	for _, lot := range dash.Lots {
		if lot.Owner != game.OwnerNone {
			continue
		}
		// Liquidate positions when they bridge the gap to a lot.
		if dash.BalanceMicros <= lot.BaseCostMicros+a.reserve {
			needed := lot.BaseCostMicros + a.reserve - dash.BalanceMicros
			if a.openValue(dash) >= needed {
				for _, p := range dash.Positions {
					if _, err := a.session.SellPosition(p.ID); err != nil {
						break
					}
				}
				dash = a.session.Dashboard()
			}
		}
		if dash.BalanceMicros > lot.BaseCostMicros+a.reserve {
			if err := a.session.BuyLot(lot.LotID); err == nil {
				dash = a.session.Dashboard()
			}
		}
	}

	// Park anything beyond twice the reserve.
	if a.parking != "" {
		spare := dash.BalanceMicros - 2*a.reserve
		if spare > 0 {
			if _, err := a.session.OpenPosition(a.parking, spare); err != nil &&
				!errors.Is(err, game.ErrInvalidAmount) {
				return
			}
		}
	}
}

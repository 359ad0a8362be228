package game

import (
	"errors"
	"math"
)

const (
	MicrosPerCoin = int64(1_000_000)

	// UpgradeUnavailable is the sentinel cost returned by UpgradeCostMicros
	// when the restaurant is at its level cap or the level is out of range.
	UpgradeUnavailable = int64(-1)
)

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAtMaxLevel         = errors.New("restaurant is at max level")
	ErrLotAlreadyOwned    = errors.New("lot already owned")
	ErrLotNotFound        = errors.New("lot not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrDefinitionNotFound = errors.New("investment definition not found")
	ErrGameOver           = errors.New("game is over")
	ErrGameRunning        = errors.New("game still in progress")
)

func CoinsToMicros(v float64) int64 {
	return int64(math.Round(v * float64(MicrosPerCoin)))
}

func MicrosToCoins(v int64) float64 {
	return float64(v) / float64(MicrosPerCoin)
}

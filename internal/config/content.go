package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mogul/internal/game"
)

// The YAML content schema is authored in whole coins; conversion to micros
// happens here, at the loading boundary.

type contentFile struct {
	StartingBalance float64           `yaml:"starting_balance"`
	BaseIncome      float64           `yaml:"base_income_per_tick"`
	IncomeLevels    []incomeLevelYAML `yaml:"income_levels"`
	Investments     []investmentYAML  `yaml:"investments"`
	Lots            []lotYAML         `yaml:"lots"`
	Rival           rivalYAML         `yaml:"rival"`
}

type incomeLevelYAML struct {
	Multiplier  float64 `yaml:"multiplier"`
	UpgradeCost float64 `yaml:"upgrade_cost"`
}

type investmentYAML struct {
	Name             string  `yaml:"name"`
	DisplayName      string  `yaml:"display_name"`
	Risk             string  `yaml:"risk"`
	AnnualReturnRate float64 `yaml:"annual_return_rate"`
	VolatilityMin    float64 `yaml:"volatility_min"`
	VolatilityMax    float64 `yaml:"volatility_max"`
	CompoundingTicks int64   `yaml:"compounding_frequency_ticks"`
	CompoundsPerYear int64   `yaml:"compounds_per_year"`
	MinimumDeposit   float64 `yaml:"minimum_deposit"`
}

type lotYAML struct {
	ID          string  `yaml:"id"`
	DisplayName string  `yaml:"display_name"`
	BaseCost    float64 `yaml:"base_cost"`
	IncomeBonus float64 `yaml:"income_bonus"`
	GridX       int     `yaml:"grid_x"`
	GridY       int     `yaml:"grid_y"`
}

type rivalYAML struct {
	StartingMoney         float64 `yaml:"starting_money"`
	IncomePerTick         float64 `yaml:"income_per_tick"`
	PurchaseIntervalTicks int64   `yaml:"purchase_interval_ticks"`
	WarningTicks          int64   `yaml:"warning_ticks"`
	PurchaseBuffer        float64 `yaml:"purchase_buffer"`
	Aggression            struct {
		Enabled          bool    `yaml:"enabled"`
		Gain             float64 `yaml:"gain"`
		MinIntervalTicks int64   `yaml:"min_interval_ticks"`
	} `yaml:"aggression"`
}

// LoadContent returns the built-in campaign when path is empty, otherwise
// the authored YAML file. Content is validated before a session ever sees
// it; a malformed file is a load-time error, never a mid-session fault.
func LoadContent(path string) (game.Content, error) {
	if strings.TrimSpace(path) == "" {
		return game.DefaultContent(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Content{}, fmt.Errorf("read content file: %w", err)
	}
	var file contentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return game.Content{}, fmt.Errorf("parse content file: %w", err)
	}
	content := file.toContent()
	if err := content.Validate(); err != nil {
		return game.Content{}, fmt.Errorf("content file %s: %w", path, err)
	}
	return content, nil
}

func (f contentFile) toContent() game.Content {
	c := game.Content{
		StartingBalanceMicros: game.CoinsToMicros(f.StartingBalance),
		BaseIncomeMicros:      game.CoinsToMicros(f.BaseIncome),
		Rival: game.RivalConfig{
			StartingMicros:        game.CoinsToMicros(f.Rival.StartingMoney),
			IncomePerTickMicros:   game.CoinsToMicros(f.Rival.IncomePerTick),
			PurchaseIntervalTicks: f.Rival.PurchaseIntervalTicks,
			WarningTicks:          f.Rival.WarningTicks,
			PurchaseBufferMicros:  game.CoinsToMicros(f.Rival.PurchaseBuffer),
			Aggression: game.AggressionCurve{
				Enabled:          f.Rival.Aggression.Enabled,
				Gain:             f.Rival.Aggression.Gain,
				MinIntervalTicks: f.Rival.Aggression.MinIntervalTicks,
			},
		},
	}
	for _, lvl := range f.IncomeLevels {
		c.IncomeLevels = append(c.IncomeLevels, game.IncomeLevel{
			IncomeMultiplier:  lvl.Multiplier,
			UpgradeCostMicros: game.CoinsToMicros(lvl.UpgradeCost),
		})
	}
	for _, inv := range f.Investments {
		vol := game.VolatilityRange{Min: inv.VolatilityMin, Max: inv.VolatilityMax}
		if vol.Min == 0 && vol.Max == 0 {
			vol = game.VolatilityRange{Min: 1, Max: 1}
		}
		c.Investments = append(c.Investments, game.InvestmentDefinition{
			Name:                      strings.TrimSpace(inv.Name),
			DisplayName:               inv.DisplayName,
			Risk:                      game.RiskLevel(strings.ToLower(strings.TrimSpace(inv.Risk))),
			AnnualReturnRate:          inv.AnnualReturnRate,
			Volatility:                vol,
			CompoundingFrequencyTicks: inv.CompoundingTicks,
			CompoundsPerYear:          inv.CompoundsPerYear,
			MinimumDepositMicros:      game.CoinsToMicros(inv.MinimumDeposit),
		})
	}
	for _, lot := range f.Lots {
		id := strings.TrimSpace(lot.ID)
		if id == "" {
			id = slugify(lot.DisplayName)
		}
		c.Lots = append(c.Lots, game.CityLotDefinition{
			LotID:             id,
			DisplayName:       lot.DisplayName,
			BaseCostMicros:    game.CoinsToMicros(lot.BaseCost),
			IncomeBonusMicros: game.CoinsToMicros(lot.IncomeBonus),
			GridX:             lot.GridX,
			GridY:             lot.GridY,
		})
	}
	return c
}

// slugify derives a lot id from its display name when none is authored.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

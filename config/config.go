// Package config loads and validates the run configuration for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hacross/market"
	"hacross/strategy"
)

// Config is the complete configuration for one strategy run.
type Config struct {
	Run         RunConfig          `json:"run" yaml:"run"`
	Strategy    strategy.Params    `json:"strategy" yaml:"strategy"`
	Data        DataConfig         `json:"data" yaml:"data"`
	Journal     JournalConfig      `json:"journal" yaml:"journal"`
	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
}

// RunConfig carries host-level run settings.
type RunConfig struct {
	Lots int    `json:"lots" yaml:"lots"`
	Mode string `json:"mode" yaml:"mode"` // INTRADAY or DELIVERY
}

// DataConfig locates the candle datasets.
type DataConfig struct {
	Dir string `json:"dir" yaml:"dir"`

	// Window is how many trailing candles the strategy may look back over.
	Window int `json:"window" yaml:"window"`
}

// JournalConfig configures order journaling. An empty path disables it.
type JournalConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// InstrumentConfig declares one tradable instrument and its dataset file
// (relative to Data.Dir; plain CSV or .csv.xz). LotSize may be omitted for
// symbols in the built-in market.Instruments registry.
type InstrumentConfig struct {
	Symbol  string `json:"symbol" yaml:"symbol"`
	LotSize int    `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`
	File    string `json:"file" yaml:"file"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration, including the strategy parameters.
func (c *Config) Validate() error {
	if c.Run.Lots <= 0 {
		return fmt.Errorf("run.lots must be positive")
	}
	mode := strategy.Mode(strings.ToUpper(c.Run.Mode))
	if mode != strategy.ModeIntraday && mode != strategy.ModeDelivery {
		return fmt.Errorf("run.mode must be INTRADAY or DELIVERY, got %q", c.Run.Mode)
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.Window <= int(c.Strategy.SMAPeriod) {
		return fmt.Errorf("data.window must exceed strategy.sma_period (%v)", c.Strategy.SMAPeriod)
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	for i, inst := range c.Instruments {
		if inst.Symbol == "" {
			return fmt.Errorf("instruments[%d].symbol is required", i)
		}
		if inst.LotSize <= 0 {
			meta, ok := market.Instruments[inst.Symbol]
			if !ok {
				return fmt.Errorf("instrument %s: lot_size required (symbol not in built-in registry)", inst.Symbol)
			}
			c.Instruments[i].LotSize = meta.LotSize
		}
		if inst.File == "" {
			return fmt.Errorf("instrument %s: file is required", inst.Symbol)
		}
	}
	return nil
}

// Mode returns the normalized trading mode.
func (c *Config) Mode() strategy.Mode {
	return strategy.Mode(strings.ToUpper(c.Run.Mode))
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Lots: 1,
			Mode: string(strategy.ModeIntraday),
		},
		Strategy: strategy.Params{
			ProfitBookingBuyPoints:  10,
			ProfitBookingSellPoints: 8,
			SMAPeriod:               20,
		},
		Data: DataConfig{
			Dir:    "./data",
			Window: 200,
		},
		Journal: JournalConfig{
			DBPath: "./orders.sqlite",
		},
		Instruments: []InstrumentConfig{
			{Symbol: "NIFTY-FUT", LotSize: 50, File: "nifty-fut.csv"},
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hacross/broker"
	"hacross/config"
	"hacross/engine"
	"hacross/feed"
	"hacross/internal/id"
	"hacross/journal"
	"hacross/market"
	"hacross/strategy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the strategy over one day of candle data",
	Long: `Run loads the configured candle datasets and replays them through the
strategy against a paper broker.

Example:
  hacross run --config run.yaml`,
	RunE: runStrategy,
}

var (
	runConfigPath string
	runVerbose    bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to run config (YAML or JSON) (required)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "log every hook execution")

	runCmd.MarkFlagRequired("config")
}

func runStrategy(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if runVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var jrnl journal.Journal = journal.Nop{}
	var sqlJrnl *journal.SQLiteJournal
	if cfg.Journal.DBPath != "" {
		sqlJrnl, err = journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer sqlJrnl.Close()
		jrnl = sqlJrnl
	}

	runID := id.New()
	paper := broker.NewPaper(log, jrnl, runID)

	history, err := feed.NewHistory(cfg.Data.Window)
	if err != nil {
		return err
	}

	instruments := make([]market.Instrument, 0, len(cfg.Instruments))
	series := make(engine.DaySeries, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		inst := market.Instrument{Symbol: ic.Symbol, LotSize: ic.LotSize}
		instruments = append(instruments, inst)

		candles, err := feed.CSVCandles(filepath.Join(cfg.Data.Dir, ic.File))
		if err != nil {
			return fmt.Errorf("load candles for %s: %w", ic.Symbol, err)
		}
		series[ic.Symbol] = candles
	}

	strat, err := strategy.NewCrossover(cfg.Strategy, cfg.Run.Lots, cfg.Mode(), history, paper, log)
	if err != nil {
		return err
	}

	runner := &engine.Runner{
		Strategy:    strat,
		Instruments: instruments,
		History:     history,
		Prices:      paper,
		Log:         log,
	}

	fmt.Printf("Running %s (run %s)\n", strat.Name(), runID)
	if err := runner.Run(context.Background(), series); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if sqlJrnl != nil {
		orders, err := sqlJrnl.ListOrdersByRun(context.Background(), runID)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		exits, err := sqlJrnl.ListExitsByRun(context.Background(), runID)
		if err != nil {
			return fmt.Errorf("list exits: %w", err)
		}
		fmt.Printf("\nRun complete: %d orders placed, %d exits\n", len(orders), len(exits))
		for _, o := range orders {
			fmt.Printf("  %s %-10s %-6s %-6s qty=%-6d price=%.2f status=%s\n",
				o.OrderID, o.Instrument, o.Transaction, o.Variety, o.Quantity, o.Price, o.Status)
		}
	} else {
		fmt.Println("\nRun complete")
	}

	return nil
}

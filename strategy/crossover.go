package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"hacross/broker"
	"hacross/indicators"
	"hacross/market"
)

// EngineVersion is the newest host engine version this strategy supports.
const EngineVersion = "3.3.0"

// Params are the tunable strategy parameters. They arrive from host
// configuration as numbers (YAML/JSON carry them as floats) and must each be
// a positive integer.
type Params struct {
	// ProfitBookingBuyPoints is the price-point offset above a buy entry at
	// which the profit-booking sell limit is placed.
	ProfitBookingBuyPoints float64 `json:"profit_booking_buy_points" yaml:"profit_booking_buy_points"`

	// ProfitBookingSellPoints is the offset below a sell entry for the
	// profit-booking buy limit.
	ProfitBookingSellPoints float64 `json:"profit_booking_sell_points" yaml:"profit_booking_sell_points"`

	// SMAPeriod is the lookback of the moving average the Heikin-Ashi close
	// is compared against.
	SMAPeriod float64 `json:"sma_period" yaml:"sma_period"`
}

// Validate rejects parameters that are not positive integers.
func (p Params) Validate() error {
	if err := positiveInt("PROFIT_BOOKING_BUY_POINTS", p.ProfitBookingBuyPoints); err != nil {
		return err
	}
	if err := positiveInt("PROFIT_BOOKING_SELL_POINTS", p.ProfitBookingSellPoints); err != nil {
		return err
	}
	return positiveInt("SMA_PERIOD", p.SMAPeriod)
}

func positiveInt(name string, v float64) error {
	if v <= 0 || v != math.Trunc(v) {
		return fmt.Errorf("strategy parameter %s should be a positive integer, got %v", name, v)
	}
	return nil
}

// Crossover trades the crossover between a Heikin-Ashi-smoothed close and
// its simple moving average. A cross above the SMA is a long signal, a cross
// below a short signal; every entry is paired with a profit-booking limit
// order a fixed number of points away from the fill.
//
// It keeps at most one open main order per instrument, reset each day by
// Initialize.
type Crossover struct {
	buyPoints  int
	sellPoints int
	smaPeriod  int

	lots int
	mode Mode

	data   DataProvider
	broker broker.Broker
	log    *slog.Logger

	mainOrders   map[string]broker.Order
	profitOrders map[string]broker.Order
}

// NewCrossover validates params and builds the strategy. lots and mode are
// host-run configuration; data and b are the host's collaborators.
func NewCrossover(params Params, lots int, mode Mode, data DataProvider, b broker.Broker, log *slog.Logger) (*Crossover, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Crossover{
		buyPoints:  int(params.ProfitBookingBuyPoints),
		sellPoints: int(params.ProfitBookingSellPoints),
		smaPeriod:  int(params.SMAPeriod),
		lots:       lots,
		mode:       mode,
		data:       data,
		broker:     b,
		log:        log.With("strategy", crossoverName),
	}
	s.Initialize()
	return s, nil
}

const crossoverName = "SMA Heikin Ashi Crossover"

func (s *Crossover) Name() string { return crossoverName }

func (s *Crossover) VersionsSupported() string { return EngineVersion }

// Initialize resets the per-instrument order maps for a fresh trading day.
func (s *Crossover) Initialize() {
	s.mainOrders = make(map[string]broker.Order)
	s.profitOrders = make(map[string]broker.Order)
}

// getDecision evaluates the crossover rule for one instrument. It is a pure
// function of market history and configuration.
func (s *Crossover) getDecision(ctx context.Context, instrument market.Instrument, decision DecisionContext) (Action, error) {
	hist, err := s.data.HistoricalData(ctx, instrument)
	if err != nil {
		return NoAction, fmt.Errorf("historical data for %s: %w", instrument.Symbol, err)
	}

	haClose := market.Closes(indicators.HeikinAshi(hist))
	sma, err := indicators.SMA(haClose, s.smaPeriod)
	if err != nil {
		return NoAction, fmt.Errorf("sma for %s: %w", instrument.Symbol, err)
	}

	switch indicators.Crossover(haClose, sma) {
	case 1:
		if decision == Entry {
			return EntryBuy, nil
		}
		return ExitSell, nil
	case -1:
		if decision == Entry {
			return EntrySell, nil
		}
		return ExitBuy, nil
	default:
		return NoAction, nil
	}
}

func (s *Crossover) SelectInstrumentsForExit(ctx context.Context, _ market.Candle, bucket []market.Instrument) ([]market.Instrument, []ExitSignal, error) {
	var selected []market.Instrument
	var signals []ExitSignal

	for _, inst := range bucket {
		main := s.mainOrders[inst.Symbol]
		if main == nil || main.Status() != broker.StatusComplete {
			continue
		}

		action, err := s.getDecision(ctx, inst, Exit)
		if err != nil {
			return nil, nil, err
		}

		// An instrument is squared off when the exit signal direction
		// matches the open order's own transaction type. See DESIGN.md
		// before changing this to the usual opposite-direction rule.
		if (action == ExitSell && main.TransactionType() == broker.Sell) ||
			(action == ExitBuy && main.TransactionType() == broker.Buy) {
			selected = append(selected, inst)
			signals = append(signals, ExitSignal{Action: action})
		}
	}

	return selected, signals, nil
}

// ExitPosition squares off the instrument's main order and clears its
// main/profit references, making it eligible for fresh entries. It reports
// false, not an error, for signals it does not act on.
func (s *Crossover) ExitPosition(ctx context.Context, _ market.Candle, instrument market.Instrument, info ExitSignal) (bool, error) {
	if info.Action != ExitBuy && info.Action != ExitSell {
		return false, nil
	}

	main := s.mainOrders[instrument.Symbol]
	if main == nil {
		return false, nil
	}

	if err := main.ExitPosition(ctx); err != nil {
		return false, fmt.Errorf("exit %s: %w", instrument.Symbol, err)
	}

	delete(s.mainOrders, instrument.Symbol)
	delete(s.profitOrders, instrument.Symbol)

	s.log.Info("position exited", "instrument", instrument.Symbol, "action", info.Action.String())
	return true, nil
}

func (s *Crossover) SelectInstrumentsForEntry(ctx context.Context, _ market.Candle, bucket []market.Instrument) ([]market.Instrument, []EntrySignal, error) {
	var selected []market.Instrument
	var signals []EntrySignal

	for _, inst := range bucket {
		if s.mainOrders[inst.Symbol] != nil {
			continue
		}

		action, err := s.getDecision(ctx, inst, Entry)
		if err != nil {
			return nil, nil, err
		}

		// Short entries must be squared off the same day, so they are only
		// taken intraday.
		if action == EntryBuy || (action == EntrySell && s.mode == ModeIntraday) {
			selected = append(selected, inst)
			signals = append(signals, EntrySignal{Action: action})
		}
	}

	return selected, signals, nil
}

// EnterPosition places the market main order and its linked profit-booking
// limit order, then returns the main order for the host to track.
//
// A signal carrying anything other than an entry action indicates a broken
// selection/execution pairing and panics.
func (s *Crossover) EnterPosition(ctx context.Context, _ market.Candle, instrument market.Instrument, info EntrySignal) (broker.Order, error) {
	qty := s.lots * instrument.LotSize

	var main, profit broker.Order
	var err error

	switch info.Action {
	case EntryBuy:
		main, err = s.broker.PlaceBuy(ctx, broker.OrderRequest{
			Instrument: instrument,
			Code:       s.orderCode(),
			Variety:    broker.VarietyMarket,
			Quantity:   qty,
		})
		if err != nil {
			return nil, fmt.Errorf("place main buy for %s: %w", instrument.Symbol, err)
		}
		profit, err = s.broker.PlaceSell(ctx, broker.OrderRequest{
			Instrument:   instrument,
			Code:         s.orderCode(),
			Variety:      broker.VarietyLimit,
			Quantity:     qty,
			Price:        main.EntryPrice() + float64(s.buyPoints),
			Position:     broker.PositionExit,
			RelatedOrder: main,
		})
		if err != nil {
			return nil, fmt.Errorf("place profit sell for %s: %w", instrument.Symbol, err)
		}

	case EntrySell:
		main, err = s.broker.PlaceSell(ctx, broker.OrderRequest{
			Instrument: instrument,
			Code:       s.orderCode(),
			Variety:    broker.VarietyMarket,
			Quantity:   qty,
		})
		if err != nil {
			return nil, fmt.Errorf("place main sell for %s: %w", instrument.Symbol, err)
		}
		profit, err = s.broker.PlaceBuy(ctx, broker.OrderRequest{
			Instrument:   instrument,
			Code:         s.orderCode(),
			Variety:      broker.VarietyLimit,
			Quantity:     qty,
			Price:        main.EntryPrice() - float64(s.sellPoints),
			Position:     broker.PositionExit,
			RelatedOrder: main,
		})
		if err != nil {
			return nil, fmt.Errorf("place profit buy for %s: %w", instrument.Symbol, err)
		}

	default:
		panic(fmt.Sprintf("strategy: invalid entry sideband action %s for %s", info.Action, instrument.Symbol))
	}

	s.mainOrders[instrument.Symbol] = main
	s.profitOrders[instrument.Symbol] = profit

	s.log.Info("position entered",
		"instrument", instrument.Symbol,
		"action", info.Action.String(),
		"qty", qty,
		"entry_price", main.EntryPrice(),
	)
	return main, nil
}

func (s *Crossover) orderCode() broker.OrderCode {
	if s.mode == ModeIntraday {
		return broker.CodeIntraday
	}
	return broker.CodeDelivery
}

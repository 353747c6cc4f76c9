package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hacross/broker"
	"hacross/market"
)

var testInstrument = market.Instrument{Symbol: "NIFTY-FUT", LotSize: 50}

// flatCandles builds degenerate candles (O=H=L=C) so the Heikin-Ashi close
// equals the raw close and decision scenarios stay exact.
func flatCandles(closes ...float64) []market.Candle {
	base := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{
			Open: c, High: c, Low: c, Close: c,
			Time: base.Add(time.Duration(i) * 5 * time.Minute),
		}
	}
	return out
}

type stubData struct {
	candles []market.Candle
	err     error
}

func (d stubData) HistoricalData(_ context.Context, _ market.Instrument) ([]market.Candle, error) {
	return d.candles, d.err
}

type fakeOrder struct {
	txn    broker.TransactionType
	status broker.OrderStatus
	entry  float64
	exited bool
}

func (o *fakeOrder) Status() broker.OrderStatus              { return o.status }
func (o *fakeOrder) EntryPrice() float64                     { return o.entry }
func (o *fakeOrder) TransactionType() broker.TransactionType { return o.txn }
func (o *fakeOrder) ExitPosition(context.Context) error {
	o.exited = true
	return nil
}

type placedOrder struct {
	txn broker.TransactionType
	req broker.OrderRequest
}

type fakeBroker struct {
	marketPrice float64
	placed      []placedOrder
	orders      []*fakeOrder
}

func (b *fakeBroker) PlaceBuy(_ context.Context, req broker.OrderRequest) (broker.Order, error) {
	return b.place(broker.Buy, req), nil
}

func (b *fakeBroker) PlaceSell(_ context.Context, req broker.OrderRequest) (broker.Order, error) {
	return b.place(broker.Sell, req), nil
}

func (b *fakeBroker) place(txn broker.TransactionType, req broker.OrderRequest) *fakeOrder {
	entry := b.marketPrice
	if req.Variety == broker.VarietyLimit {
		entry = req.Price
	}
	o := &fakeOrder{txn: txn, status: broker.StatusComplete, entry: entry}
	b.placed = append(b.placed, placedOrder{txn: txn, req: req})
	b.orders = append(b.orders, o)
	return o
}

func newTestStrategy(t *testing.T, data DataProvider, b broker.Broker, mode Mode) *Crossover {
	t.Helper()
	s, err := NewCrossover(Params{
		ProfitBookingBuyPoints:  10,
		ProfitBookingSellPoints: 8,
		SMAPeriod:               3,
	}, 2, mode, data, b, nil)
	require.NoError(t, err)
	return s
}

func TestParamsValidation(t *testing.T) {
	cases := []struct {
		name   string
		params Params
		ok     bool
	}{
		{"valid", Params{ProfitBookingBuyPoints: 10, ProfitBookingSellPoints: 8, SMAPeriod: 20}, true},
		{"zero buy points", Params{ProfitBookingBuyPoints: 0, ProfitBookingSellPoints: 8, SMAPeriod: 20}, false},
		{"negative buy points", Params{ProfitBookingBuyPoints: -5, ProfitBookingSellPoints: 8, SMAPeriod: 20}, false},
		{"fractional buy points", Params{ProfitBookingBuyPoints: 2.5, ProfitBookingSellPoints: 8, SMAPeriod: 20}, false},
		{"fractional period", Params{ProfitBookingBuyPoints: 10, ProfitBookingSellPoints: 8, SMAPeriod: 20.5}, false},
		{"zero sell points", Params{ProfitBookingBuyPoints: 10, ProfitBookingSellPoints: 0, SMAPeriod: 20}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCrossover(tc.params, 1, ModeIntraday, stubData{}, &fakeBroker{}, nil)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	s := newTestStrategy(t, stubData{}, &fakeBroker{}, ModeIntraday)
	require.Equal(t, "SMA Heikin Ashi Crossover", s.Name())
	require.Equal(t, EngineVersion, s.VersionsSupported())
}

func TestEntrySelection_NeutralSignal(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 100)}
	s := newTestStrategy(t, data, &fakeBroker{}, ModeIntraday)

	selected, signals, err := s.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Empty(t, selected)
	require.Empty(t, signals)
}

func TestEntrySelection_CrossUpSelectsBuy(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 110)}
	s := newTestStrategy(t, data, &fakeBroker{}, ModeIntraday)

	selected, signals, err := s.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Equal(t, []market.Instrument{testInstrument}, selected)
	require.Equal(t, []EntrySignal{{Action: EntryBuy}}, signals)
}

func TestEntrySelection_ShortOnlyIntraday(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 90)}

	intraday := newTestStrategy(t, data, &fakeBroker{}, ModeIntraday)
	selected, signals, err := intraday.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	require.Equal(t, EntrySell, signals[0].Action)

	delivery := newTestStrategy(t, data, &fakeBroker{}, ModeDelivery)
	selected, _, err = delivery.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Empty(t, selected)
}

func TestEntrySelection_SkipsOpenPosition(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 110)}
	s := newTestStrategy(t, data, &fakeBroker{}, ModeIntraday)
	s.mainOrders[testInstrument.Symbol] = &fakeOrder{txn: broker.Buy, status: broker.StatusComplete}

	selected, _, err := s.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Empty(t, selected)
}

func TestEnterPosition_Buy(t *testing.T) {
	b := &fakeBroker{marketPrice: 104}
	s := newTestStrategy(t, stubData{}, b, ModeIntraday)

	order, err := s.EnterPosition(context.Background(), market.Candle{}, testInstrument, EntrySignal{Action: EntryBuy})
	require.NoError(t, err)
	require.Len(t, b.placed, 2)

	main := b.placed[0]
	require.Equal(t, broker.Buy, main.txn)
	require.Equal(t, broker.VarietyMarket, main.req.Variety)
	require.Equal(t, broker.CodeIntraday, main.req.Code)
	require.Equal(t, 2*testInstrument.LotSize, main.req.Quantity)

	profit := b.placed[1]
	require.Equal(t, broker.Sell, profit.txn)
	require.Equal(t, broker.VarietyLimit, profit.req.Variety)
	require.Equal(t, 2*testInstrument.LotSize, profit.req.Quantity)
	require.InDelta(t, 104+10, profit.req.Price, 1e-9)
	require.Equal(t, broker.PositionExit, profit.req.Position)
	require.Same(t, order, profit.req.RelatedOrder)

	require.Same(t, order, s.mainOrders[testInstrument.Symbol])
	require.NotNil(t, s.profitOrders[testInstrument.Symbol])
}

func TestEnterPosition_Sell(t *testing.T) {
	b := &fakeBroker{marketPrice: 104}
	s := newTestStrategy(t, stubData{}, b, ModeIntraday)

	_, err := s.EnterPosition(context.Background(), market.Candle{}, testInstrument, EntrySignal{Action: EntrySell})
	require.NoError(t, err)
	require.Len(t, b.placed, 2)

	require.Equal(t, broker.Sell, b.placed[0].txn)
	require.Equal(t, broker.VarietyMarket, b.placed[0].req.Variety)

	require.Equal(t, broker.Buy, b.placed[1].txn)
	require.Equal(t, broker.VarietyLimit, b.placed[1].req.Variety)
	require.InDelta(t, 104-8, b.placed[1].req.Price, 1e-9)
}

func TestEnterPosition_DeliveryOrderCode(t *testing.T) {
	b := &fakeBroker{marketPrice: 104}
	s := newTestStrategy(t, stubData{}, b, ModeDelivery)

	_, err := s.EnterPosition(context.Background(), market.Candle{}, testInstrument, EntrySignal{Action: EntryBuy})
	require.NoError(t, err)
	require.Equal(t, broker.CodeDelivery, b.placed[0].req.Code)
}

func TestEnterPosition_InvalidSidebandPanics(t *testing.T) {
	s := newTestStrategy(t, stubData{}, &fakeBroker{marketPrice: 104}, ModeIntraday)

	require.Panics(t, func() {
		_, _ = s.EnterPosition(context.Background(), market.Candle{}, testInstrument, EntrySignal{Action: ExitBuy})
	})
	require.Panics(t, func() {
		_, _ = s.EnterPosition(context.Background(), market.Candle{}, testInstrument, EntrySignal{Action: NoAction})
	})
}

func TestExitSelection_MatchesOwnTransactionType(t *testing.T) {
	crossDown := flatCandles(100, 100, 100, 100, 90) // exit context: EXIT_BUY
	crossUp := flatCandles(100, 100, 100, 100, 110)  // exit context: EXIT_SELL

	cases := []struct {
		name     string
		candles  []market.Candle
		txn      broker.TransactionType
		selected bool
		action   Action
	}{
		{"buy order, exit-buy signal", crossDown, broker.Buy, true, ExitBuy},
		{"buy order, exit-sell signal", crossUp, broker.Buy, false, NoAction},
		{"sell order, exit-sell signal", crossUp, broker.Sell, true, ExitSell},
		{"sell order, exit-buy signal", crossDown, broker.Sell, false, NoAction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStrategy(t, stubData{candles: tc.candles}, &fakeBroker{}, ModeIntraday)
			s.mainOrders[testInstrument.Symbol] = &fakeOrder{txn: tc.txn, status: broker.StatusComplete}

			selected, signals, err := s.SelectInstrumentsForExit(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
			require.NoError(t, err)
			if tc.selected {
				require.Len(t, selected, 1)
				require.Equal(t, tc.action, signals[0].Action)
			} else {
				require.Empty(t, selected)
			}
		})
	}
}

func TestExitSelection_SkipsPendingAndFlat(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 90)}

	s := newTestStrategy(t, data, &fakeBroker{}, ModeIntraday)
	// No open order at all.
	selected, _, err := s.SelectInstrumentsForExit(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Empty(t, selected)

	// Open but not yet complete.
	s.mainOrders[testInstrument.Symbol] = &fakeOrder{txn: broker.Buy, status: broker.StatusOpenPending}
	selected, _, err = s.SelectInstrumentsForExit(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Empty(t, selected)
}

func TestExitPosition_ClearsStateAndReenables(t *testing.T) {
	data := stubData{candles: flatCandles(100, 100, 100, 100, 110)}
	b := &fakeBroker{marketPrice: 104}
	s := newTestStrategy(t, data, b, ModeIntraday)

	main := &fakeOrder{txn: broker.Buy, status: broker.StatusComplete}
	s.mainOrders[testInstrument.Symbol] = main
	s.profitOrders[testInstrument.Symbol] = &fakeOrder{txn: broker.Sell, status: broker.StatusOpenPending}

	done, err := s.ExitPosition(context.Background(), market.Candle{}, testInstrument, ExitSignal{Action: ExitBuy})
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, main.exited)
	require.Nil(t, s.mainOrders[testInstrument.Symbol])
	require.Nil(t, s.profitOrders[testInstrument.Symbol])

	// Immediately eligible for a fresh entry.
	selected, signals, err := s.SelectInstrumentsForEntry(context.Background(), market.Candle{}, []market.Instrument{testInstrument})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	require.Equal(t, EntryBuy, signals[0].Action)
}

func TestExitPosition_UnrecognizedActionIsFalse(t *testing.T) {
	s := newTestStrategy(t, stubData{}, &fakeBroker{}, ModeIntraday)
	main := &fakeOrder{txn: broker.Buy, status: broker.StatusComplete}
	s.mainOrders[testInstrument.Symbol] = main

	done, err := s.ExitPosition(context.Background(), market.Candle{}, testInstrument, ExitSignal{Action: NoAction})
	require.NoError(t, err)
	require.False(t, done)
	require.False(t, main.exited)
	require.NotNil(t, s.mainOrders[testInstrument.Symbol])
}

func TestInitialize_ResetsDayState(t *testing.T) {
	s := newTestStrategy(t, stubData{}, &fakeBroker{}, ModeIntraday)
	s.mainOrders[testInstrument.Symbol] = &fakeOrder{txn: broker.Buy, status: broker.StatusComplete}
	s.profitOrders[testInstrument.Symbol] = &fakeOrder{txn: broker.Sell, status: broker.StatusOpenPending}

	s.Initialize()
	require.Empty(t, s.mainOrders)
	require.Empty(t, s.profitOrders)
}

package market

// Instrument identifies a tradable symbol. LotSize is the contract
// multiplier: order quantity is always a whole number of lots.
type Instrument struct {
	Symbol   string
	Exchange string
	LotSize  int
}

// Instruments is the built-in instrument registry used by the CLI runner.
// Hosts embedding the strategy supply their own instruments.
var Instruments = map[string]Instrument{
	"NIFTY-FUT": {
		Symbol:   "NIFTY-FUT",
		Exchange: "NFO",
		LotSize:  50,
	},
	"BANKNIFTY-FUT": {
		Symbol:   "BANKNIFTY-FUT",
		Exchange: "NFO",
		LotSize:  15,
	},
}

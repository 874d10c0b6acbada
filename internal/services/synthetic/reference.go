package synthetic

// baseQuote is the reference session used to seed synthetic quotes for
// well-known symbols.
type baseQuote struct {
	Price  float64
	Change float64
	Open   float64
	High   float64
	Low    float64
	Volume int64
}

var baseQuotes = map[string]baseQuote{
	"AAPL":  {Price: 195.89, Change: 2.45, Open: 193.44, High: 196.12, Low: 192.88, Volume: 45234567},
	"GOOGL": {Price: 142.56, Change: -0.89, Open: 143.45, High: 144.20, Low: 141.88, Volume: 28567432},
	"MSFT":  {Price: 378.85, Change: 4.23, Open: 374.62, High: 380.15, Low: 373.45, Volume: 32145678},
	"TSLA":  {Price: 248.42, Change: -3.67, Open: 252.09, High: 253.88, Low: 247.10, Volume: 89567234},
	"AMZN":  {Price: 175.28, Change: 1.84, Open: 173.44, High: 176.92, Low: 172.85, Volume: 52341678},
	"META":  {Price: 498.37, Change: 7.82, Open: 490.55, High: 501.24, Low: 489.12, Volume: 18743299},
	"NVDA":  {Price: 938.73, Change: -12.45, Open: 951.18, High: 956.84, Low: 935.22, Volume: 24657891},
	"NFLX":  {Price: 682.44, Change: 4.67, Open: 677.77, High: 685.92, Low: 675.33, Volume: 8234567},
}

// BasePrice returns the reference price for symbol and whether it is known.
func BasePrice(symbol string) (float64, bool) {
	b, ok := baseQuotes[symbol]
	return b.Price, ok
}

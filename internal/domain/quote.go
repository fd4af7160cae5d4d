package domain

// Quote is a single BTC-USD ticker snapshot.
type Quote struct {
	Price24h       float64 `json:"price_24h"`
	Volume24h      float64 `json:"volume_24h"`
	LastTradePrice float64 `json:"last_trade_price"`
}

// Difference is the 24h price minus the last trade price.
func (q Quote) Difference() float64 { return q.Price24h - q.LastTradePrice }

var (
	// PreviewQuote backs placeholder entries before any fetch has completed.
	PreviewQuote = Quote{Price24h: 42727.35, Volume24h: 2.51, LastTradePrice: 43689.54}
	// ErrorQuote is carried by entries whose fetch failed.
	ErrorQuote = Quote{}
)

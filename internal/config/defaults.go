package config

import "time"

const (
	DefaultQuoteURL        = "https://api.blockchain.com/v3/exchange/tickers/BTC-USD"
	DefaultPlaceholder     = "--"
	DefaultRefreshInterval = 15 * time.Minute
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTimelineKey     = "widget:timeline"
	DefaultUpdatesChannel  = "widget:timeline:updates"
)

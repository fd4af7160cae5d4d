package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"
	"btcwidget-service/internal/infrastructure/httpx"
)

const DefaultTickerURL = "https://api.blockchain.com/v3/exchange/tickers/BTC-USD"

// BlockchainProvider reads the BTC-USD ticker from the blockchain.com exchange API.
type BlockchainProvider struct {
	URL    string
	Client *httpx.Client
}

var _ application.QuoteFetcher = (*BlockchainProvider)(nil)

type tickerResp struct {
	Symbol         string   `json:"symbol"`
	Price24h       *float64 `json:"price_24h"`
	Volume24h      *float64 `json:"volume_24h"`
	LastTradePrice *float64 `json:"last_trade_price"`
}

func (r tickerResp) validate() error {
	switch {
	case r.Price24h == nil:
		return errors.New("missing price_24h")
	case r.Volume24h == nil:
		return errors.New("missing volume_24h")
	case r.LastTradePrice == nil:
		return errors.New("missing last_trade_price")
	}
	return nil
}

// Fetch issues exactly one GET. Every failure wraps domain.ErrFetchFailed.
func (p *BlockchainProvider) Fetch(ctx context.Context) (domain.Quote, error) {
	url := p.URL
	if url == "" {
		url = DefaultTickerURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("blockchain: %w: create request: %w", domain.ErrFetchFailed, err)
	}

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body tickerResp
	if err := client.DoJSON(ctx, req, &body); err != nil {
		return domain.Quote{}, fmt.Errorf("blockchain: %w: %w", domain.ErrFetchFailed, err)
	}
	if err := body.validate(); err != nil {
		return domain.Quote{}, fmt.Errorf("blockchain: %w: %w", domain.ErrFetchFailed, err)
	}

	return domain.Quote{
		Price24h:       *body.Price24h,
		Volume24h:      *body.Volume24h,
		LastTradePrice: *body.LastTradePrice,
	}, nil
}

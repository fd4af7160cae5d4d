package provider

import (
	"context"
	"fmt"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"
)

// Ensure Fake implements application.QuoteFetcher.
var _ application.QuoteFetcher = (*Fake)(nil)

type Fake struct {
	quote domain.Quote
	err   error
}

func NewFake(q domain.Quote) *Fake { return &Fake{quote: q} }

// NewFailingFake returns a fetcher that always fails with err wrapped in domain.ErrFetchFailed.
func NewFailingFake(err error) *Fake { return &Fake{err: err} }

func (f *Fake) Fetch(context.Context) (domain.Quote, error) {
	if f.err != nil {
		return domain.Quote{}, fmt.Errorf("fake: %w: %w", domain.ErrFetchFailed, f.err)
	}
	return f.quote, nil
}

package httpserver

import (
	"context"
	"sync"
	"time"

	"btcwidget-service/internal/application"
	"btcwidget-service/internal/domain"
)

var _ application.QuoteFetcher = (*fakeFetcher)(nil)

type fakeFetcher struct {
	mu     sync.Mutex
	quote  domain.Quote
	failed bool
}

func (f *fakeFetcher) Fetch(context.Context) (domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return domain.Quote{}, domain.ErrFetchFailed
	}
	return f.quote, nil
}

func (f *fakeFetcher) set(q domain.Quote) {
	f.mu.Lock()
	f.quote = q
	f.mu.Unlock()
}

func NewInMemoryService(f *fakeFetcher) (*application.WidgetService, *application.MemoryTimeline) {
	store := application.NewMemoryTimeline(nil)
	svc := application.NewWidgetService(f, store, application.WithRefreshInterval(time.Hour))
	return svc, store
}

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"btcwidget-service/internal/domain"
)

var (
	ErrStore = errors.New("store error")
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeFetcher struct {
	out   domain.Quote
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (domain.Quote, error) {
	f.calls++
	if f.err != nil {
		return domain.Quote{}, f.err
	}
	return f.out, nil
}

func failingFetcher() *fakeFetcher {
	return &fakeFetcher{err: fmt.Errorf("blockchain: %w: status 503", domain.ErrFetchFailed)}
}

type brokenStore struct {
	saved int
}

func (b *brokenStore) Save(context.Context, domain.Timeline) error {
	b.saved++
	return ErrStore
}
func (b *brokenStore) Current(context.Context) (domain.Timeline, error) {
	return domain.Timeline{}, ErrStore
}
func (b *brokenStore) Subscribe(context.Context) (<-chan domain.Timeline, error) {
	return nil, ErrStore
}
func (b *brokenStore) Ping(context.Context) error { return ErrStore }

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"btcwidget-service/internal/domain"

	"go.uber.org/zap"
)

const DefaultRefreshInterval = 15 * time.Minute

// WidgetService is the timeline provider behind every widget family.
type WidgetService struct {
	fetcher   QuoteFetcher
	store     TimelineStore
	presenter Presenter
	clock     Clock
	interval  time.Duration
	log       *zap.Logger
}

type Option func(*WidgetService)

func WithClock(c Clock) Option { return func(s *WidgetService) { s.clock = c } }
func WithRefreshInterval(d time.Duration) Option { return func(s *WidgetService) { s.interval = d } }
func WithPlaceholder(p string) Option { return func(s *WidgetService) { s.presenter = NewPresenter(p) } }
func WithLogger(l *zap.Logger) Option { return func(s *WidgetService) { s.log = l } }

func NewWidgetService(fetcher QuoteFetcher, store TimelineStore, opts ...Option) *WidgetService {
	s := &WidgetService{
		fetcher:   fetcher,
		store:     store,
		presenter: NewPresenter(DefaultPlaceholder),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.interval <= 0 {
		s.interval = DefaultRefreshInterval
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.store == nil {
		s.store = NewMemoryTimeline(s.clock)
	}
	return s
}

func (s *WidgetService) Presenter() Presenter { return s.presenter }

// Placeholder returns the preview entry shown before the first fetch lands.
func (s *WidgetService) Placeholder() domain.Entry {
	return domain.Entry{Date: s.clock.Now(), Quote: domain.PreviewQuote}
}

// Snapshot fetches one quote. A failed fetch yields a failed entry, never an error.
func (s *WidgetService) Snapshot(ctx context.Context) domain.Entry {
	q, err := s.fetcher.Fetch(ctx)
	now := s.clock.Now()
	if err != nil {
		s.log.Warn("widget.fetch_failed", zap.Error(err))
		return domain.Entry{Date: now, Quote: domain.ErrorQuote, Failed: true}
	}
	s.log.Debug("widget.fetch_done",
		zap.Float64("price_24h", q.Price24h),
		zap.Float64("last_trade_price", q.LastTradePrice),
	)
	return domain.Entry{Date: now, Quote: q}
}

// Timeline builds a single-entry timeline due for reload after the refresh interval.
func (s *WidgetService) Timeline(ctx context.Context) domain.Timeline {
	e := s.Snapshot(ctx)
	return domain.Timeline{
		Entries:      []domain.Entry{e},
		RefreshAfter: e.Date.Add(s.interval),
	}
}

// Refresh builds a fresh timeline and stores it.
func (s *WidgetService) Refresh(ctx context.Context) (domain.Timeline, error) {
	tl := s.Timeline(ctx)
	if err := s.store.Save(ctx, tl); err != nil {
		return tl, fmt.Errorf("save timeline: %w", err)
	}
	return tl, nil
}

// Current returns the stored timeline, refreshing it when absent or expired.
func (s *WidgetService) Current(ctx context.Context) (domain.Timeline, error) {
	tl, err := s.store.Current(ctx)
	if err == nil {
		return tl, nil
	}
	if !errors.Is(err, ErrNotFound) {
		s.log.Warn("widget.store_read_failed", zap.Error(err))
		return s.Timeline(ctx), nil
	}
	tl, err = s.Refresh(ctx)
	if err != nil {
		s.log.Warn("widget.store_write_failed", zap.Error(err))
	}
	return tl, nil
}

// CurrentEntry is the entry the widget should draw right now.
func (s *WidgetService) CurrentEntry(ctx context.Context) (domain.Entry, error) {
	tl, err := s.Current(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	e, ok := tl.Latest()
	if !ok {
		return s.Placeholder(), nil
	}
	return e, nil
}

// View lays out the current entry for family and scheme.
func (s *WidgetService) View(ctx context.Context, family, scheme string) (View, error) {
	f, ok := domain.ParseFamily(family)
	if !ok {
		return View{}, fmt.Errorf("%w: unknown family %q", ErrBadRequest, family)
	}
	sc, ok := domain.ParseScheme(scheme)
	if !ok {
		return View{}, fmt.Errorf("%w: unknown scheme %q", ErrBadRequest, scheme)
	}
	e, err := s.CurrentEntry(ctx)
	if err != nil {
		return View{}, err
	}
	return s.presenter.BuildView(e, f, sc), nil
}

func (s *WidgetService) Subscribe(ctx context.Context) (<-chan domain.Timeline, error) {
	return s.store.Subscribe(ctx)
}

func (s *WidgetService) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

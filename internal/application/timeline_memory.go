package application

import (
	"context"
	"sync"

	"btcwidget-service/internal/domain"
)

var _ TimelineStore = (*MemoryTimeline)(nil)

// MemoryTimeline keeps the timeline in process; useful for tests/dev when Redis is disabled.
type MemoryTimeline struct {
	clock Clock

	mu   sync.Mutex
	tl   domain.Timeline
	has  bool
	subs map[chan domain.Timeline]struct{}
}

func NewMemoryTimeline(clock Clock) *MemoryTimeline {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryTimeline{clock: clock, subs: map[chan domain.Timeline]struct{}{}}
}

func (m *MemoryTimeline) Save(_ context.Context, tl domain.Timeline) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tl, m.has = tl, true
	for ch := range m.subs {
		// slow subscribers miss intermediate timelines
		select {
		case ch <- tl:
		default:
		}
	}
	return nil
}

func (m *MemoryTimeline) Current(context.Context) (domain.Timeline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.has {
		return domain.Timeline{}, ErrNotFound
	}
	if !m.tl.RefreshAfter.IsZero() && !m.clock.Now().Before(m.tl.RefreshAfter) {
		return domain.Timeline{}, ErrNotFound
	}
	return m.tl, nil
}

func (m *MemoryTimeline) Subscribe(ctx context.Context) (<-chan domain.Timeline, error) {
	ch := make(chan domain.Timeline, 1)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *MemoryTimeline) Ping(context.Context) error { return nil }

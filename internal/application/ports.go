package application

import (
	"context"

	"btcwidget-service/internal/domain"
)

// QuoteFetcher performs one outbound quote request per call.
type QuoteFetcher interface {
	Fetch(ctx context.Context) (domain.Quote, error)
}

// TimelineStore keeps the current timeline until its refresh deadline.
type TimelineStore interface {
	Save(ctx context.Context, tl domain.Timeline) error
	// Current returns ErrNotFound when nothing is stored or the entry expired.
	Current(ctx context.Context) (domain.Timeline, error)
	// Subscribe delivers every saved timeline until ctx is done, then closes the channel.
	Subscribe(ctx context.Context) (<-chan domain.Timeline, error)
	Ping(ctx context.Context) error
}

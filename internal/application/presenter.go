package application

import (
	"fmt"

	"btcwidget-service/internal/domain"
)

// DefaultPlaceholder replaces every numeric field of a failed or flat entry.
const DefaultPlaceholder = "--"

type Display struct {
	Price      string `json:"price"`
	Difference string `json:"difference"`
	Volume     string `json:"volume"`
}

// Classify derives the direction of q. A failed fetch and a zero difference both
// classify as FlatOrError.
func Classify(q domain.Quote, failed bool) domain.Direction {
	d := q.Difference()
	switch {
	case failed || d == 0:
		return domain.DirectionFlatOrError
	case d > 0:
		return domain.DirectionUp
	default:
		return domain.DirectionDown
	}
}

type Presenter struct {
	Placeholder string
}

func NewPresenter(placeholder string) Presenter {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return Presenter{Placeholder: placeholder}
}

func (p Presenter) placeholder() string {
	if p.Placeholder == "" {
		return DefaultPlaceholder
	}
	return p.Placeholder
}

// Format renders the display strings of q.
func (p Presenter) Format(q domain.Quote, failed bool) Display {
	dir := Classify(q, failed)
	if dir == domain.DirectionFlatOrError {
		ph := p.placeholder()
		return Display{Price: ph, Difference: ph, Volume: ph}
	}
	diff := fmt.Sprintf("%.2f", q.Difference())
	if dir == domain.DirectionUp {
		diff = "+" + diff
	}
	return Display{
		Price:      fmt.Sprintf("%.1f", q.Price24h),
		Difference: diff,
		Volume:     fmt.Sprintf("%.2f", q.Volume24h),
	}
}

// Format renders q with the default placeholder.
func Format(q domain.Quote, failed bool) Display {
	return Presenter{}.Format(q, failed)
}

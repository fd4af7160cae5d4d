package application

import (
	"time"

	"btcwidget-service/internal/domain"
)

const (
	widgetTitle    = "BTC App"
	widgetSubtitle = "Bitcoin"

	LayoutRow    = "row"
	LayoutColumn = "column"

	// Point sizes of the system text styles the widget falls back to.
	titleStyleSize = 28
	bodyStyleSize  = 17
	largeTitleSize = 40
)

// View is what a single widget family draws for one entry.
type View struct {
	Family          domain.Family    `json:"family"`
	Title           string           `json:"title"`
	Subtitle        string           `json:"subtitle"`
	Price           string           `json:"price"`
	Difference      string           `json:"difference"`
	Volume          string           `json:"volume,omitempty"`
	Direction       domain.Direction `json:"direction"`
	DifferenceColor string           `json:"difference_color"`
	VolumeColor     string           `json:"volume_color,omitempty"`
	Layout          string           `json:"layout"`
	TitleSize       int              `json:"title_size"`
	PriceSize       int              `json:"price_size"`
	Date            string           `json:"date"`
}

// BuildView lays out e for the given family and colour scheme.
func (p Presenter) BuildView(e domain.Entry, family domain.Family, scheme domain.Scheme) View {
	disp := p.Format(e.Quote, e.Failed)
	dir := Classify(e.Quote, e.Failed)

	v := View{
		Family:          family,
		Title:           widgetTitle,
		Subtitle:        widgetSubtitle,
		Price:           disp.Price,
		Difference:      disp.Difference,
		Direction:       dir,
		DifferenceColor: dir.Color(),
		Layout:          LayoutColumn,
		TitleSize:       titleStyleSize,
		Date:            e.Date.Format(time.RFC3339),
	}
	switch family {
	case domain.FamilySmall:
		v.PriceSize = bodyStyleSize
	case domain.FamilyMedium:
		v.Layout = LayoutRow
		v.PriceSize = family.Rank()*25 + 14
	case domain.FamilyLarge:
		v.TitleSize = largeTitleSize
		v.PriceSize = family.Rank()*25 + 14
		v.Volume = "VOLUME: " + disp.Volume
		v.VolumeColor = "purple"
		if scheme == domain.SchemeDark {
			v.VolumeColor = "pink"
		}
	}
	return v
}

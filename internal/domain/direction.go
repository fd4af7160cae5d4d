package domain

type Direction string

const (
	DirectionUp          Direction = "up"
	DirectionDown        Direction = "down"
	DirectionFlatOrError Direction = "error"
)

// Color is the asset name the widget uses to tint the difference.
func (d Direction) Color() string { return string(d) + "Color" }

package component

import "image/color"

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is a flat-colored primitive drawn at the entity's Transform.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
	Color  color.Color
}

var ShapeComponent = NewComponent[Shape]()

// Label draws text next to an entity, typically its current word.
type Label struct {
	Text    string
	OffsetX float64
	OffsetY float64
	Color   color.Color
}

var LabelComponent = NewComponent[Label]()

// HealthBar draws Current/Max as a bar under or over the entity.
type HealthBar struct {
	Width   float64
	Height  float64
	OffsetY float64
	Color   color.Color
	Current int
	Max     int
}

var HealthBarComponent = NewComponent[HealthBar]()

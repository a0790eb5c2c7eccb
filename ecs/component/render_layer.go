package component

// RenderLayer sorts draw order. Lower draws first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

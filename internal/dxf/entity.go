package dxf

// Entity type tags as they appear in the tag stream.
const (
	TypeLine       = "LINE"
	TypeLWPolyline = "LWPOLYLINE"
	TypePolyline   = "POLYLINE"
	TypeInsert     = "INSERT"
)

// Entity is one model-space entity. The concrete set is closed: Line,
// Polyline, Insert and Generic. Consumers type-switch over it; anything that
// is not curve-like or a block reference arrives as *Generic so that entity
// tallies still see it.
type Entity interface {
	// Type returns the DXF type tag, e.g. "LINE".
	Type() string
	// Layer returns the raw layer name; may be empty.
	Layer() string

	entity()
}

// header holds the attributes shared by every entity.
type header struct {
	kind  string
	layer string
}

func (h header) Type() string  { return h.kind }
func (h header) Layer() string { return h.layer }
func (h header) entity()       {}

// Line is a straight segment between two points.
type Line struct {
	header
	Start, End Point
}

// Polyline is an ordered vertex chain. Covers both LWPOLYLINE and the
// heavyweight POLYLINE/VERTEX form; Type distinguishes them.
type Polyline struct {
	header
	Vertices []Point
}

// Insert is a placed reference to a named block.
type Insert struct {
	header
	BlockName string
}

// Generic is any entity kind the loader does not model geometrically.
type Generic struct {
	header
}

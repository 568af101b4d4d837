package dxf

// Constructors for building documents programmatically, used by callers
// that synthesize drawings (tests, fixtures) rather than loading files.

func NewLine(layer string, start, end Point) *Line {
	return &Line{header: header{kind: TypeLine, layer: layer}, Start: start, End: end}
}

func NewPolyline(layer string, vertices ...Point) *Polyline {
	return &Polyline{header: header{kind: TypeLWPolyline, layer: layer}, Vertices: vertices}
}

func NewInsert(layer, blockName string) *Insert {
	return &Insert{header: header{kind: TypeInsert, layer: layer}, BlockName: blockName}
}

func NewGeneric(kind, layer string) *Generic {
	return &Generic{header: header{kind: kind, layer: layer}}
}

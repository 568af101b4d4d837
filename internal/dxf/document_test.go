package dxf

import (
	"errors"
	"strings"
	"testing"
)

func tags(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

const fixture = `0
SECTION
2
ENTITIES
0
LINE
8
Pipe
10
0
20
0
11
3
21
4
0
LWPOLYLINE
8
PIPE
90
3
10
0
20
0
10
1
20
0
10
1
20
1
0
POLYLINE
8
DUCT
66
1
0
VERTEX
8
DUCT
10
0
20
0
0
VERTEX
8
DUCT
10
5
20
0
0
SEQEND
8
DUCT
0
INSERT
8
0
2
Valve
10
2
20
2
0
CIRCLE
8
WALL
10
1
20
1
40
5
0
ENDSEC
0
EOF
`

func TestLoadParsesEntities(t *testing.T) {
	doc, err := Load(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Entities) != 5 {
		t.Fatalf("expected 5 entities, got %d", len(doc.Entities))
	}

	line, ok := doc.Entities[0].(*Line)
	if !ok {
		t.Fatalf("entity 0: expected *Line, got %T", doc.Entities[0])
	}
	if line.Layer() != "Pipe" {
		t.Fatalf("line layer: %q", line.Layer())
	}
	if line.End != (Point{X: 3, Y: 4}) {
		t.Fatalf("line end: %+v", line.End)
	}

	lw, ok := doc.Entities[1].(*Polyline)
	if !ok || lw.Type() != TypeLWPolyline {
		t.Fatalf("entity 1: expected LWPOLYLINE, got %T %s", doc.Entities[1], doc.Entities[1].Type())
	}
	if len(lw.Vertices) != 3 || lw.Vertices[2] != (Point{X: 1, Y: 1}) {
		t.Fatalf("lwpolyline vertices: %+v", lw.Vertices)
	}

	poly, ok := doc.Entities[2].(*Polyline)
	if !ok || poly.Type() != TypePolyline {
		t.Fatalf("entity 2: expected POLYLINE, got %T %s", doc.Entities[2], doc.Entities[2].Type())
	}
	if poly.Layer() != "DUCT" || len(poly.Vertices) != 2 || poly.Vertices[1] != (Point{X: 5, Y: 0}) {
		t.Fatalf("polyline: layer=%q vertices=%+v", poly.Layer(), poly.Vertices)
	}

	ins, ok := doc.Entities[3].(*Insert)
	if !ok {
		t.Fatalf("entity 3: expected *Insert, got %T", doc.Entities[3])
	}
	if ins.BlockName != "Valve" {
		t.Fatalf("insert block: %q", ins.BlockName)
	}

	gen, ok := doc.Entities[4].(*Generic)
	if !ok || gen.Type() != "CIRCLE" || gen.Layer() != "WALL" {
		t.Fatalf("entity 4: %T %s %s", doc.Entities[4], doc.Entities[4].Type(), doc.Entities[4].Layer())
	}
}

func TestLoadEmptyEntitiesSection(t *testing.T) {
	doc, err := Load(strings.NewReader(tags("0", "SECTION", "2", "ENTITIES", "0", "ENDSEC", "0", "EOF")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Entities) != 0 {
		t.Fatalf("expected no entities, got %d", len(doc.Entities))
	}
}

func TestLoadRejectsMissingEntitiesSection(t *testing.T) {
	_, err := Load(strings.NewReader(tags("0", "SECTION", "2", "HEADER", "0", "ENDSEC", "0", "EOF")))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("this is not\na drawing at all\n"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoadSkipsUnmappedSections(t *testing.T) {
	input := tags(
		"0", "SECTION", "2", "HEADER", "9", "$ACADVER", "1", "AC1027", "0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "LINE", "8", "A", "10", "0", "20", "0", "11", "1", "21", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Entities) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(doc.Entities))
	}
}

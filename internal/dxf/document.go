package dxf

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseError reports unreadable or structurally invalid drawing input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dxf: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document is the in-memory form of a drawing: the flat entity list of the
// ENTITIES section. Entities are never mutated after loading.
type Document struct {
	Entities []Entity
}

// Open loads a drawing from a file on disk.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads a complete tag stream and collects the ENTITIES section. A
// stream with no ENTITIES section is rejected: it is either not a DXF file
// or truncated before the part this service needs.
func Load(r io.Reader) (*Document, error) {
	s := NewScanner(r)
	doc := &Document{Entities: make([]Entity, 0, 256)}
	seenEntities := false

	for s.Next() {
		tag := s.Tag()
		if tag.Code == 0 && strings.EqualFold(tag.Text(), "SECTION") {
			if !s.Next() {
				break
			}
			if strings.EqualFold(s.Tag().Text(), "ENTITIES") {
				seenEntities = true
				if err := doc.parseEntities(s); err != nil {
					return nil, &ParseError{Err: err}
				}
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, &ParseError{Err: err}
	}
	if !seenEntities {
		return nil, &ParseError{Err: fmt.Errorf("no ENTITIES section")}
	}
	return doc, nil
}

func (d *Document) parseEntities(s *Scanner) error {
	for !s.Done() {
		tag := s.Tag()
		if tag.Code != 0 {
			if !s.Next() {
				break
			}
			continue
		}

		name := strings.ToUpper(tag.Text())
		switch name {
		case "ENDSEC":
			return nil
		case "ENTITIES", "SECTION":
			if !s.Next() {
				return s.Err()
			}
		case TypeLine:
			d.Entities = append(d.Entities, parseLine(s))
		case TypeLWPolyline:
			d.Entities = append(d.Entities, parseLWPolyline(s))
		case TypePolyline:
			d.Entities = append(d.Entities, parsePolyline(s))
		case TypeInsert:
			d.Entities = append(d.Entities, parseInsert(s))
		default:
			d.Entities = append(d.Entities, parseGeneric(s, name))
		}
	}
	return s.Err()
}

// Each parse function enters positioned on the entity's 0 tag and leaves
// positioned on the next 0 tag (or with the scanner exhausted).

func parseLine(s *Scanner) *Line {
	l := &Line{header: header{kind: TypeLine}}
	for s.Next() && s.Tag().Code != 0 {
		switch t := s.Tag(); t.Code {
		case 8:
			l.layer = t.Text()
		case 10:
			l.Start.X = t.Float()
		case 20:
			l.Start.Y = t.Float()
		case 11:
			l.End.X = t.Float()
		case 21:
			l.End.Y = t.Float()
		}
	}
	return l
}

func parseLWPolyline(s *Scanner) *Polyline {
	p := &Polyline{header: header{kind: TypeLWPolyline}}
	var x float64
	for s.Next() && s.Tag().Code != 0 {
		switch t := s.Tag(); t.Code {
		case 8:
			p.layer = t.Text()
		case 10:
			x = t.Float()
		case 20:
			p.Vertices = append(p.Vertices, Point{X: x, Y: t.Float()})
		}
	}
	return p
}

// parsePolyline handles the heavyweight POLYLINE form: a header entity
// followed by VERTEX sub-entities and a closing SEQEND.
func parsePolyline(s *Scanner) *Polyline {
	p := &Polyline{header: header{kind: TypePolyline}}
	for s.Next() && s.Tag().Code != 0 {
		if t := s.Tag(); t.Code == 8 {
			p.layer = t.Text()
		}
	}
	for !s.Done() && s.Tag().Code == 0 {
		switch strings.ToUpper(s.Tag().Text()) {
		case "VERTEX":
			var v Point
			for s.Next() && s.Tag().Code != 0 {
				switch t := s.Tag(); t.Code {
				case 10:
					v.X = t.Float()
				case 20:
					v.Y = t.Float()
				}
			}
			p.Vertices = append(p.Vertices, v)
		case "SEQEND":
			// Consume the SEQEND body and stop at the next entity.
			for s.Next() && s.Tag().Code != 0 {
			}
			return p
		default:
			return p
		}
	}
	return p
}

func parseInsert(s *Scanner) *Insert {
	i := &Insert{header: header{kind: TypeInsert}}
	for s.Next() && s.Tag().Code != 0 {
		switch t := s.Tag(); t.Code {
		case 2:
			i.BlockName = t.Text()
		case 8:
			i.layer = t.Text()
		}
	}
	return i
}

func parseGeneric(s *Scanner, kind string) *Generic {
	g := &Generic{header: header{kind: kind}}
	for s.Next() && s.Tag().Code != 0 {
		if t := s.Tag(); t.Code == 8 {
			g.layer = t.Text()
		}
	}
	return g
}

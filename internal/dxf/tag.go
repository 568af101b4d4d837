package dxf

import (
	"strconv"
	"strings"
)

// Tag is a single DXF group code / value pair.
type Tag struct {
	Code  int
	Value string
}

// Text returns the value with surrounding whitespace removed.
func (t Tag) Text() string {
	return strings.TrimSpace(t.Value)
}

// Float parses the value as a float64, returning 0 on failure.
func (t Tag) Float() float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return f
}

// Int parses the value as an int, returning 0 on failure.
func (t Tag) Int() int {
	i, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return i
}

// Point is a 2D point in drawing coordinates.
type Point struct {
	X, Y float64
}

package dxf

import (
	"strings"
	"testing"
)

func TestScannerReadsPairs(t *testing.T) {
	s := NewScanner(strings.NewReader("0\nLINE\n8\n  Pipe \n10\n1.5\n"))

	if !s.Next() {
		t.Fatalf("expected first tag, got err=%v", s.Err())
	}
	if tag := s.Tag(); tag.Code != 0 || tag.Text() != "LINE" {
		t.Fatalf("unexpected tag %+v", tag)
	}

	if !s.Next() {
		t.Fatalf("expected second tag, got err=%v", s.Err())
	}
	if tag := s.Tag(); tag.Code != 8 || tag.Text() != "Pipe" {
		t.Fatalf("unexpected tag %+v", tag)
	}
	// Raw value keeps leading spaces, loses only the line ending.
	if got := s.Tag().Value; got != "  Pipe " {
		t.Fatalf("raw value mangled: %q", got)
	}

	if !s.Next() {
		t.Fatalf("expected third tag, got err=%v", s.Err())
	}
	if got := s.Tag().Float(); got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}

	if s.Next() {
		t.Fatalf("expected exhaustion, got %+v", s.Tag())
	}
	if s.Err() != nil {
		t.Fatalf("clean EOF should not error: %v", s.Err())
	}
}

func TestScannerSkipsBlankCodeLines(t *testing.T) {
	s := NewScanner(strings.NewReader("\n\n0\nEOF\n"))
	if !s.Next() {
		t.Fatalf("expected tag, got err=%v", s.Err())
	}
	if tag := s.Tag(); tag.Code != 0 || tag.Text() != "EOF" {
		t.Fatalf("unexpected tag %+v", tag)
	}
}

func TestScannerRejectsNonNumericCode(t *testing.T) {
	s := NewScanner(strings.NewReader("banana\nLINE\n"))
	if s.Next() {
		t.Fatalf("expected failure, got %+v", s.Tag())
	}
	if s.Err() == nil {
		t.Fatal("expected error for non-numeric group code")
	}
}

func TestScannerRejectsDanglingCode(t *testing.T) {
	s := NewScanner(strings.NewReader("0\n"))
	if s.Next() {
		t.Fatalf("expected failure, got %+v", s.Tag())
	}
	if s.Err() == nil {
		t.Fatal("expected error for code without value")
	}
}

func TestScannerLastPairWithoutTrailingNewline(t *testing.T) {
	s := NewScanner(strings.NewReader("0\nEOF"))
	if !s.Next() {
		t.Fatalf("expected tag, got err=%v", s.Err())
	}
	if tag := s.Tag(); tag.Code != 0 || tag.Text() != "EOF" {
		t.Fatalf("unexpected tag %+v", tag)
	}
	if s.Next() {
		t.Fatal("expected exhaustion after final pair")
	}
	if s.Err() != nil {
		t.Fatalf("unexpected error: %v", s.Err())
	}
}

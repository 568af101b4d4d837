package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Scanner reads a DXF tag stream: alternating group-code and value lines.
type Scanner struct {
	reader *bufio.Reader
	tag    Tag
	line   int
	done   bool
	err    error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// Next advances to the following tag. It returns false at end of input or on
// a malformed pair; check Err to distinguish.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}

	codeLine, err := s.reader.ReadString('\n')
	if err != nil {
		s.done = true
		if err != io.EOF || strings.TrimSpace(codeLine) != "" {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			s.err = fmt.Errorf("line %d: %w", s.line+1, err)
		}
		return false
	}
	s.line++

	codeStr := strings.TrimSpace(codeLine)
	if codeStr == "" {
		// Blank code lines are tolerated between pairs.
		return s.Next()
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.done = true
		s.err = fmt.Errorf("line %d: invalid group code %q", s.line, codeStr)
		return false
	}

	valueLine, err := s.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		s.done = true
		s.err = fmt.Errorf("line %d: %w", s.line+1, err)
		return false
	}
	if err == io.EOF && valueLine == "" {
		s.done = true
		s.err = fmt.Errorf("line %d: group code %d has no value", s.line, code)
		return false
	}
	s.line++

	// Trailing newline goes, leading spaces in the value stay.
	s.tag = Tag{Code: code, Value: strings.TrimRight(valueLine, "\r\n")}
	if err == io.EOF {
		// Last pair of the file; subsequent Next calls report exhaustion.
		s.done = true
		s.err = nil
		return true
	}
	return true
}

// Tag returns the most recently scanned tag.
func (s *Scanner) Tag() Tag {
	return s.tag
}

// Done reports whether the stream is exhausted.
func (s *Scanner) Done() bool {
	return s.done
}

func (s *Scanner) Err() error {
	return s.err
}

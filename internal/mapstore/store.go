package mapstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/mwaldrop/bomgen/internal/survey"
)

// LoadError reports a mapping file that exists but cannot be used. It is
// deliberately distinct from absence: a corrupt table must surface, never be
// silently replaced by a synthesized one.
type LoadError struct {
	Identity string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("mapping %q: %s", e.Identity, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrBadIdentity rejects identities that would escape the mapping directory.
var ErrBadIdentity = errors.New("invalid mapping identity")

// Store keeps one JSON mapping table per identity under a directory.
type Store struct {
	dir  string
	init singleflight.Group
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(identity string) (string, error) {
	if identity == "" || strings.ContainsAny(identity, `/\`) || strings.Contains(identity, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadIdentity, identity)
	}
	return filepath.Join(s.dir, identity+".json"), nil
}

// Load reads and validates the table at identity. Absence is reported as an
// error wrapping fs.ErrNotExist; any other failure is a LoadError.
func (s *Store) Load(identity string) (*Table, error) {
	p, err := s.path(identity)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, &LoadError{Identity: identity, Err: err}
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &LoadError{Identity: identity, Err: err}
	}
	if err := t.Validate(); err != nil {
		return nil, &LoadError{Identity: identity, Err: err}
	}
	return &t, nil
}

// Save validates and persists a table with atomic replace semantics: the
// JSON is written to a temp file in the same directory and renamed over the
// destination, so a reader never observes a half-written table.
func (s *Store) Save(identity string, t *Table) error {
	p, err := s.path(identity)
	if err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return &LoadError{Identity: identity, Err: err}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mapping dir: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, identity+".*.tmp")
	if err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write mapping: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write mapping: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace mapping: %w", err)
	}
	return nil
}

// LoadOrInit returns the table at identity, synthesizing and persisting one
// from the survey when none exists. An existing table is authoritative even
// if the drawing's layer/block universe has diverged from it. Concurrent
// first-time callers for one identity are collapsed to a single
// synthesize-and-write.
func (s *Store) LoadOrInit(identity string, sv survey.Result) (*Table, error) {
	v, err, _ := s.init.Do(identity, func() (any, error) {
		t, err := s.Load(identity)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		t = Synthesize(sv)
		if err := s.Save(identity, t); err != nil {
			return nil, err
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

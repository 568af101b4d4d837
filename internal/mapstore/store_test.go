package mapstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mwaldrop/bomgen/internal/survey"
)

func sampleSurvey() survey.Result {
	return survey.Result{
		Entities: map[string]int{"LINE": 7, "INSERT": 3},
		Layers:   map[string]int{"WALL": 5, "PIPE": 2},
		Blocks:   map[string]int{"VALVE": 3},
	}
}

func TestSynthesize(t *testing.T) {
	table := Synthesize(sampleSurvey())

	require.Equal(t, map[string]Entry{
		"WALL": {Item: "WALL", Unit: UnitMeters},
		"PIPE": {Item: "PIPE", Unit: UnitMeters},
	}, table.Layers)
	require.Equal(t, map[string]Entry{
		"VALVE": {Item: "VALVE", Unit: UnitPieces},
	}, table.Blocks)
	require.Equal(t, Defaults{UnitLength: UnitMeters, LengthPrecision: 2}, table.Defaults)
	require.NoError(t, table.Validate())
}

func TestSynthesizeAvoidsLayerBlockNameClash(t *testing.T) {
	sv := survey.Result{
		Layers: map[string]int{"VALVE": 1},
		Blocks: map[string]int{"VALVE": 2},
	}
	table := Synthesize(sv)
	require.NoError(t, table.Validate())
	require.NotEqual(t, table.Layers["VALVE"].Item, table.Blocks["VALVE"].Item)
}

func TestLoadOrInitSynthesizesOnce(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.LoadOrInit("default", sampleSurvey())
	require.NoError(t, err)

	raw1, err := os.ReadFile(filepath.Join(store.dir, "default.json"))
	require.NoError(t, err)

	// Second call must read the persisted table back, not rewrite it.
	second, err := store.LoadOrInit("default", sampleSurvey())
	require.NoError(t, err)
	require.Equal(t, first, second)

	raw2, err := os.ReadFile(filepath.Join(store.dir, "default.json"))
	require.NoError(t, err)
	require.Equal(t, raw1, raw2)
}

func TestLoadOrInitExistingTableIsAuthoritative(t *testing.T) {
	store := NewStore(t.TempDir())

	custom := &Table{
		Layers:   map[string]Entry{"PIPE": {Item: "Pipe-25mm", Unit: UnitMeters}},
		Blocks:   map[string]Entry{},
		Defaults: Defaults{UnitLength: UnitMeters, LengthPrecision: 3},
	}
	require.NoError(t, store.Save("site-a", custom))

	// Even with a survey full of new layers, the stored table wins.
	got, err := store.LoadOrInit("site-a", sampleSurvey())
	require.NoError(t, err)
	require.Equal(t, custom, got)
}

func TestLoadAbsentVsInvalid(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(store.dir, "broken.json"), []byte("{not json"), 0o644))
	_, err = store.Load("broken")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.NotErrorIs(t, err, fs.ErrNotExist)

	// A corrupt table must never be replaced by a synthesized one.
	_, err = store.LoadOrInit("broken", sampleSurvey())
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadRejectsMissingFields(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(
		filepath.Join(store.dir, "partial.json"),
		[]byte(`{"layers":{"A":{"item":"A","unit":"m"}},"defaults":{"unit_length":"m","length_precision":2}}`),
		0o644,
	))
	_, err := store.Load("partial")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateRejectsUnitCollision(t *testing.T) {
	table := &Table{
		Layers:   map[string]Entry{"PIPE": {Item: "Widget", Unit: UnitMeters}},
		Blocks:   map[string]Entry{"VALVE": {Item: "Widget", Unit: UnitPieces}},
		Defaults: Defaults{UnitLength: UnitMeters, LengthPrecision: 2},
	}
	err := table.Validate()
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	require.Equal(t, "Widget", collision.Item)
}

func TestValidateAllowsSharedItemWithSameUnit(t *testing.T) {
	table := &Table{
		Layers: map[string]Entry{
			"PIPE-A": {Item: "Pipe", Unit: UnitMeters},
			"PIPE-B": {Item: "Pipe", Unit: UnitMeters},
		},
		Blocks:   map[string]Entry{},
		Defaults: Defaults{UnitLength: UnitMeters, LengthPrecision: 2},
	}
	require.NoError(t, table.Validate())
}

func TestBadIdentityRejected(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, identity := range []string{"", "../escape", "a/b", `a\b`} {
		_, err := store.LoadOrInit(identity, sampleSurvey())
		require.ErrorIs(t, err, ErrBadIdentity, "identity %q", identity)
	}
}

func TestConcurrentFirstInit(t *testing.T) {
	store := NewStore(t.TempDir())
	sv := sampleSurvey()

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	errs := make([]error, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i], errs[i] = store.LoadOrInit("shared", sv)
		}(i)
	}
	wg.Wait()

	for i := range tables {
		require.NoError(t, errs[i])
		require.NotNil(t, tables[i])
	}
	// Whatever the interleaving, the persisted table must load cleanly.
	got, err := store.Load("shared")
	require.NoError(t, err)
	require.NoError(t, got.Validate())
}

func TestSaveValidates(t *testing.T) {
	store := NewStore(t.TempDir())
	bad := &Table{
		Layers:   map[string]Entry{"A": {Item: "", Unit: UnitMeters}},
		Blocks:   map[string]Entry{},
		Defaults: Defaults{UnitLength: UnitMeters, LengthPrecision: 2},
	}
	var loadErr *LoadError
	require.ErrorAs(t, store.Save("x", bad), &loadErr)
	_, err := store.Load("x")
	require.ErrorIs(t, err, fs.ErrNotExist, "failed save must not leave a file behind")
}

func TestErrorsAreErrors(t *testing.T) {
	err := errors.New("boom")
	le := &LoadError{Identity: "x", Err: err}
	require.ErrorIs(t, le, err)
	require.Contains(t, le.Error(), `"x"`)
}

//go:build cgo

package outline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fixturePath returns a houlang fixture path. Tests run from
// internal/outline/, so the relative path is ../../testdata/...
func fixturePath(name string) string {
	return filepath.Join("../../testdata/fixtures/houlang", name)
}

func newTestOutliner(t *testing.T, opts ...Option) *Outliner {
	t.Helper()
	o, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: endLine, Character: endChar},
	}
}

// ---------------------------------------------------------------------------
// TestOutliner_Outline
// ---------------------------------------------------------------------------

func TestOutliner_Outline(t *testing.T) {
	o := newTestOutliner(t)
	ctx := context.Background()

	t.Run("two weeks", func(t *testing.T) {
		src := []byte("2024-01-01\nmon: 9:00 - 17:00\n2024-01-08\ntue: 10:00 - 18:00\n")
		symbols, err := o.Outline(ctx, "two.hou", src)
		require.NoError(t, err)
		require.Len(t, symbols, 2)

		assert.Equal(t, protocol.DocumentSymbol{
			Name:           "2024-01-01",
			Kind:           protocol.SymbolKindVariable,
			Range:          rng(0, 0, 1, 17),
			SelectionRange: rng(0, 0, 1, 17),
		}, symbols[0])
		assert.Equal(t, protocol.DocumentSymbol{
			Name:           "2024-01-08",
			Kind:           protocol.SymbolKindVariable,
			Range:          rng(2, 0, 3, 18),
			SelectionRange: rng(2, 0, 3, 18),
		}, symbols[1])
	})

	t.Run("no weeks yields an empty, non-nil list", func(t *testing.T) {
		symbols, err := o.Outline(ctx, "empty.hou", []byte(""))
		require.NoError(t, err)
		require.NotNil(t, symbols)
		assert.Empty(t, symbols)
	})

	t.Run("malformed text still parses", func(t *testing.T) {
		symbols, err := o.Outline(ctx, "junk.hou", []byte("this is not a schedule\n"))
		require.NoError(t, err)
		assert.NotNil(t, symbols)
	})

	t.Run("names round-trip the source bytes", func(t *testing.T) {
		src := []byte("2024-12-30\nmon: 9:00 - 17:00\n1-2-3\nsun: 1:1 - 2:2\n")
		symbols, err := o.Outline(ctx, "names.hou", src)
		require.NoError(t, err)
		require.Len(t, symbols, 2)
		assert.Equal(t, "2024-12-30", symbols[0].Name)
		assert.Equal(t, "1-2-3", symbols[1].Name)
	})

	t.Run("symbols have no children", func(t *testing.T) {
		src := []byte("2024-01-01\nmon: 9:00 - 17:00\n")
		symbols, err := o.Outline(ctx, "one.hou", src)
		require.NoError(t, err)
		require.Len(t, symbols, 1)
		assert.Empty(t, symbols[0].Children)
	})
}

func TestOutliner_OutlineFile(t *testing.T) {
	o := newTestOutliner(t)
	ctx := context.Background()

	t.Run("schedule fixture", func(t *testing.T) {
		symbols, err := o.OutlineFile(ctx, fixturePath("schedule.hou"))
		require.NoError(t, err)
		require.Len(t, symbols, 3)

		names := []string{symbols[0].Name, symbols[1].Name, symbols[2].Name}
		assert.Equal(t, []string{"2024-03-04", "2024-03-11", "2024-03-18"}, names)

		// Rows equal the zero-based rows of each week block.
		assert.Equal(t, rng(0, 0, 3, 17), symbols[0].Range)
		assert.Equal(t, rng(5, 0, 6, 18), symbols[1].Range)
		assert.Equal(t, rng(8, 0, 10, 17), symbols[2].Range)
	})

	t.Run("empty fixture", func(t *testing.T) {
		symbols, err := o.OutlineFile(ctx, fixturePath("empty.hou"))
		require.NoError(t, err)
		assert.NotNil(t, symbols)
		assert.Empty(t, symbols)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.hou")
		_, err := o.OutlineFile(ctx, path)

		var rerr *ReadError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, path, rerr.Path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.hou")
		require.NoError(t, os.WriteFile(path, []byte{'2', '0', 0xff, '\n'}, 0o644))
		_, err := o.OutlineFile(ctx, path)

		var rerr *ReadError
		require.ErrorAs(t, err, &rerr)
		assert.ErrorIs(t, err, errInvalidUTF8)
	})
}

func TestOutliner_Concurrent(t *testing.T) {
	o := newTestOutliner(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			symbols, err := o.OutlineFile(ctx, fixturePath("two_weeks.hou"))
			if err == nil && len(symbols) != 2 {
				t.Errorf("expected 2 symbols, got %d", len(symbols))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestOutliner_Encoding(t *testing.T) {
	assert.Equal(t, EncodingUTF8, newTestOutliner(t).Encoding())
	assert.Equal(t, EncodingUTF16, newTestOutliner(t, WithEncoding(EncodingUTF16)).Encoding())
}

func TestAssemble_Empty(t *testing.T) {
	symbols, err := Assemble(nil, nil, NewMapper(EncodingUTF8))
	require.NoError(t, err)
	assert.NotNil(t, symbols)
	assert.Empty(t, symbols)
}

func TestAssemble_DecodeErrorAbortsRequest(t *testing.T) {
	src := []byte("2024-01-01\nmon: 9:00 - 17:00\n")
	tree := parseSource(t, src)
	matches := compileWeekQuery(t).Matches(tree.RootNode(), src)
	require.Len(t, matches, 1)

	// Assembling against a different, shorter buffer puts the date span out
	// of bounds; the whole request fails instead of returning a partial list.
	symbols, err := Assemble(matches, []byte("2024"), NewMapper(EncodingUTF8))
	assert.Nil(t, symbols)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

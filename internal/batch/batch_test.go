package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("2024-01-01\nmon: 9:00 - 17:00\n"), 0o644))
	}
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hou", "b.hou", "notes.txt", "weeks/2024/c.hou", "weeks/d.hou")

	t.Run("recursive glob", func(t *testing.T) {
		paths, err := Expand(root, []string{"**/*.hou"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.hou"),
			filepath.Join(root, "b.hou"),
			filepath.Join(root, "weeks", "2024", "c.hou"),
			filepath.Join(root, "weeks", "d.hou"),
		}, paths)
	})

	t.Run("pattern order and dedup", func(t *testing.T) {
		paths, err := Expand(root, []string{"weeks/d.hou", "*.hou", "weeks/*.hou"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "weeks", "d.hou"),
			filepath.Join(root, "a.hou"),
			filepath.Join(root, "b.hou"),
		}, paths)
	})

	t.Run("literal path kept when missing", func(t *testing.T) {
		paths, err := Expand(root, []string{"missing.hou"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "missing.hou")}, paths)
	})

	t.Run("absolute pattern ignores root", func(t *testing.T) {
		paths, err := Expand("/elsewhere", []string{filepath.Join(root, "weeks", "*.hou")})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "weeks", "d.hou")}, paths)
	})

	t.Run("no matches", func(t *testing.T) {
		paths, err := Expand(root, []string{"**/*.week"})
		require.NoError(t, err)
		assert.Empty(t, paths)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := Expand(root, []string{"[a-"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `expand "[a-"`)
	})
}

type fakeOutliner struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	fail     map[string]error
}

func (f *fakeOutliner) OutlineFile(_ context.Context, path string) ([]protocol.DocumentSymbol, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if err := f.fail[path]; err != nil {
		return nil, err
	}
	return []protocol.DocumentSymbol{{Name: path, Kind: protocol.SymbolKindVariable}}, nil
}

func TestOutlineAll(t *testing.T) {
	ctx := context.Background()

	t.Run("input order and per-file errors", func(t *testing.T) {
		boom := errors.New("boom")
		o := &fakeOutliner{fail: map[string]error{"b": boom}}

		results := OutlineAll(ctx, o, []string{"a", "b", "c"}, 2)
		require.Len(t, results, 3)

		assert.Equal(t, "a", results[0].Path)
		assert.Equal(t, "a", results[0].Symbols[0].Name)
		assert.Equal(t, "b", results[1].Path)
		assert.ErrorIs(t, results[1].Err, boom)
		assert.Nil(t, results[1].Symbols)
		assert.Equal(t, "c", results[2].Symbols[0].Name)
		assert.Equal(t, 1, Failed(results))
	})

	t.Run("concurrency bound", func(t *testing.T) {
		o := &fakeOutliner{}
		paths := []string{"1", "2", "3", "4", "5", "6", "7", "8"}

		results := OutlineAll(ctx, o, paths, 3)
		assert.Len(t, results, len(paths))
		assert.LessOrEqual(t, o.maxSeen.Load(), int32(3))
		assert.Zero(t, Failed(results))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		results := OutlineAll(cctx, &fakeOutliner{}, []string{"a", "b"}, 1)
		for _, r := range results {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, OutlineAll(ctx, &fakeOutliner{}, nil, 0))
	})
}

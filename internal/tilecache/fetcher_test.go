package tilecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygrid/planner/internal/viewport"
)

// worldBounds covers all 4 tiles at zoom 1.
var worldBounds = viewport.Bounds{MinLng: -179.9, MinLat: -85, MaxLng: 179.9, MaxLat: 85}

func newTileServer(handler http.HandlerFunc) (*httptest.Server, string) {
	srv := httptest.NewServer(handler)
	return srv, srv.URL + "/{z}/{x}/{y}.png"
}

func TestFetcher_CachesAllTiles(t *testing.T) {
	var requests atomic.Int64
	srv, tmpl := newTileServer(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("tile-bytes"))
	})
	defer srv.Close()

	store, err := NewStore(newTestDB(t), "test")
	require.NoError(t, err)
	f := NewFetcher(store, tmpl, nil)

	var progressCalls int
	var lastPercent float64
	res := f.Fetch(context.Background(), worldBounds, 1, 1,
		func(done, total int, percent float64) {
			progressCalls++
			lastPercent = percent
			assert.Equal(t, 4, total)
		})

	assert.True(t, res.Success)
	assert.Equal(t, 4, res.CachedCount)
	assert.Equal(t, 0, res.FailedCount)
	assert.NoError(t, res.Err)
	assert.Equal(t, 4, progressCalls)
	assert.InDelta(t, 100.0, lastPercent, 1e-9)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, int64(4), requests.Load())
}

func TestFetcher_SkipsAlreadyCachedTiles(t *testing.T) {
	var requests atomic.Int64
	srv, tmpl := newTileServer(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("tile-bytes"))
	})
	defer srv.Close()

	store, err := NewStore(newTestDB(t), "test")
	require.NoError(t, err)
	f := NewFetcher(store, tmpl, nil)

	first := f.Fetch(context.Background(), worldBounds, 1, 1, nil)
	require.True(t, first.Success)
	require.Equal(t, int64(4), requests.Load())

	second := f.Fetch(context.Background(), worldBounds, 1, 1, nil)
	assert.True(t, second.Success)
	assert.Equal(t, 4, second.CachedCount, "cached tiles still count as covered")
	assert.Equal(t, int64(4), requests.Load(), "no tile should be re-downloaded")
}

func TestFetcher_FailuresCountedNotFatal(t *testing.T) {
	srv, tmpl := newTileServer(func(w http.ResponseWriter, r *http.Request) {
		// fail one column of the zoom-1 grid
		if strings.Contains(r.URL.Path, "/1/1/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("tile-bytes"))
	})
	defer srv.Close()

	store, err := NewStore(newTestDB(t), "test")
	require.NoError(t, err)
	f := NewFetcher(store, tmpl, nil)

	var lastProcessed int
	res := f.Fetch(context.Background(), worldBounds, 1, 1,
		func(processed, total int, percent float64) {
			lastProcessed = processed
		})

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.CachedCount)
	assert.Equal(t, 2, res.FailedCount)
	assert.NoError(t, res.Err, "per-tile failures do not abort the run")
	assert.Equal(t, 4, lastProcessed, "progress counts failed tiles as processed")

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFetcher_CancellationKeepsStoredTiles(t *testing.T) {
	srv, tmpl := newTileServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tile-bytes"))
	})
	defer srv.Close()

	store, err := NewStore(newTestDB(t), "test")
	require.NoError(t, err)
	require.NoError(t, store.Put(Tile{Zoom: 1, X: 0, Y: 0}, []byte("pre")))
	f := NewFetcher(store, tmpl, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.Fetch(ctx, worldBounds, 1, 1, nil)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, res.Success)

	// no rollback: previously stored tiles survive
	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFetcher_TileURL(t *testing.T) {
	f := NewFetcher(nil, "https://tiles.example.com/{z}/{x}/{y}.png", nil)
	got := f.tileURL(Tile{Zoom: 12, X: 2190, Y: 1408})
	assert.Equal(t, "https://tiles.example.com/12/2190/1408.png", got)
}

package tilecache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skygrid/planner/internal/queue"
	"github.com/skygrid/planner/internal/viewport"
)

// ProgressFunc is invoked after each tile attempt with the number of tiles
// processed so far (successes and failures alike), the total, and the
// completion percentage.
type ProgressFunc func(processed, total int, percent float64)

// Result summarizes a fetch run. Individual tile failures are counted, not
// fatal; Err is set only when the run itself stopped (cancellation).
type Result struct {
	Success     bool  `json:"success"`
	CachedCount int   `json:"cachedCount"`
	FailedCount int   `json:"failedCount"`
	Err         error `json:"-"`
}

// Fetcher downloads tiles over HTTP and stores them.
type Fetcher struct {
	store       *Store
	urlTemplate string // contains {z}, {x}, {y}
	client      *http.Client
	log         *slog.Logger
}

// NewFetcher creates a fetcher for the given tile URL template.
func NewFetcher(store *Store, urlTemplate string, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		store:       store,
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: 30 * time.Second},
		log:         log,
	}
}

// Fetch caches every tile covering bounds from minZoom to maxZoom.
// Tiles are processed in deterministic order: zoom ascending, then row,
// then column. Already-stored tiles are skipped but still reported as
// cached. Cancelling the context stops the run and leaves stored tiles
// intact; there is no rollback.
func (f *Fetcher) Fetch(ctx context.Context, b viewport.Bounds, minZoom, maxZoom int, progress ProgressFunc) Result {
	pending := queue.New[Tile]()
	for z := minZoom; z <= maxZoom; z++ {
		r := RangeForBounds(b, z)
		for y := r.MinY; y <= r.MaxY; y++ {
			for x := r.MinX; x <= r.MaxX; x++ {
				pending.Push(Tile{Zoom: z, X: x, Y: y})
			}
		}
	}

	total := pending.Len()
	var res Result
	done := 0

	for {
		t, ok := pending.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}

		if err := f.fetchOne(ctx, t); err != nil {
			res.FailedCount++
			f.log.Warn("tile fetch failed",
				"zoom", t.Zoom, "x", t.X, "y", t.Y, "error", err)
		} else {
			res.CachedCount++
		}
		done++
		if progress != nil {
			progress(done, total, float64(done)/float64(total)*100)
		}
	}

	res.Success = res.FailedCount == 0
	return res
}

func (f *Fetcher) fetchOne(ctx context.Context, t Tile) error {
	cached, err := f.store.Has(t)
	if err != nil {
		return err
	}
	if cached {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.tileURL(t), nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tile server returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return f.store.Put(t, data)
}

func (f *Fetcher) tileURL(t Tile) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(t.Zoom),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	)
	return r.Replace(f.urlTemplate)
}

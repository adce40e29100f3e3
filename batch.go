package tileforge

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Summary aggregates a batch run.
type Summary struct {
	// Results holds one entry per unique (glyph, value) pair, in
	// deduplicated catalog order.
	Results []TileResult

	Exported int // tiles written, including degraded ones
	Degraded int // exported tiles missing at least one element
	Skipped  int // tiles not exported at all
}

// RunBatch synthesizes one solid per unique (glyph, value) pair across a
// fixed-size worker pool. Tiles are independent: each one reads only its
// own spec and the shared read-only font, so a failed tile never stops
// its siblings.
func RunBatch(ctx context.Context, syn *Synthesizer, specs []TileSpec) Summary {
	unique := UniqueTiles(specs)
	results := make([]TileResult, len(unique))

	jobs := make(chan int, len(unique))
	for i := range unique {
		jobs <- i
	}
	close(jobs)

	workers := syn.cfg.workers()
	if workers > len(unique) {
		workers = len(unique)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = TileResult{Spec: unique[i], Err: err}
					continue
				}
				results[i] = syn.synthesizeGuarded(ctx, unique[i])
			}
		}()
	}
	wg.Wait()

	var sum Summary
	sum.Results = results
	for _, r := range results {
		switch {
		case r.Err != nil:
			sum.Skipped++
			log.Printf("tile %s skipped: %v", r.Spec.Label(), r.Err)
		case len(r.Degraded) > 0:
			sum.Exported++
			sum.Degraded++
		default:
			sum.Exported++
		}
		for _, err := range r.Degraded {
			log.Printf("tile %s degraded: %v", r.Spec.Label(), err)
		}
	}
	return sum
}

// synthesizeGuarded bounds one tile's wall-clock time. Boolean evaluation
// and meshing are assumed to terminate, but a stuck tile should not stall
// the rest of the batch.
func (s *Synthesizer) synthesizeGuarded(ctx context.Context, spec TileSpec) TileResult {
	if s.cfg.TileTimeout <= 0 {
		return s.SynthesizeTile(spec)
	}

	done := make(chan TileResult, 1)
	go func() {
		done <- s.SynthesizeTile(spec)
	}()

	timer := time.NewTimer(s.cfg.TileTimeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return TileResult{Spec: spec, Err: ctx.Err()}
	case <-timer.C:
		return TileResult{
			Spec: spec,
			Err:  errors.Wrapf(ErrInvalidMesh, "timed out after %s", s.cfg.TileTimeout),
		}
	}
}

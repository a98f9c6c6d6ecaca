package terrain

import (
	"context"
	"sync"
)

// Band is a half-open range of vertex rows [Start, End).
type Band struct {
	Start int
	End   int
}

// splitBands divides rows into at most n contiguous bands whose sizes differ
// by at most one. Earlier bands take the remainder.
func splitBands(rows, n int) []Band {
	n = max(1, min(n, rows))
	base, extra := rows/n, rows%n
	bands := make([]Band, 0, n)
	start := 0
	for i := range n {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, Band{Start: start, End: start + size})
		start += size
	}
	return bands
}

// bandJob is one band of one mesh build.
type bandJob struct {
	band Band
	fill func(start, end int)
	done *sync.WaitGroup
}

// BandPool runs the row bands of a mesh build on a fixed set of goroutines.
type BandPool struct {
	jobs   chan bandJob
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewBandPool starts workers band goroutines.
func NewBandPool(workers int) *BandPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &BandPool{
		jobs:   make(chan bandJob, workers),
		ctx:    ctx,
		cancel: cancel,
	}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *BandPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			job.fill(job.band.Start, job.band.End)
			job.done.Done()
		case <-p.ctx.Done():
			return
		}
	}
}

// Run calls fill once per band in parallel and returns when all have
// finished. After Close the bands run on the caller.
func (p *BandPool) Run(bands []Band, fill func(start, end int)) {
	if p.ctx.Err() != nil {
		for _, b := range bands {
			fill(b.Start, b.End)
		}
		return
	}
	var done sync.WaitGroup
	done.Add(len(bands))
	for _, b := range bands {
		p.jobs <- bandJob{band: b, fill: fill, done: &done}
	}
	done.Wait()
}

// Close stops the workers. It must not overlap a Run; calling it more than
// once is fine.
func (p *BandPool) Close() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

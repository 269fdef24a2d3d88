package html2pdf

import (
	"context"
	"runtime"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer can run.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent renderers; each is a full WebKit process.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the renderer's own threads.
	cpuDivisor = 2
)

// Pool bounds how many renderer processes run at once. Conversions beyond
// the limit wait for a slot. A Pool is safe for concurrent use and needs
// no closing: it owns no processes between calls.
type Pool struct {
	conv *Converter
	sem  chan struct{}
}

// NewPool creates a pool that runs at most n conversions through conv
// concurrently. n below 1 is treated as 1.
func NewPool(conv *Converter, n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{
		conv: conv,
		sem:  make(chan struct{}, n),
	}
}

// Convert waits for a free slot and runs conv.Convert in it. If ctx ends
// while waiting, no renderer is started and a canceled or timed-out
// *TimeoutError is returned.
func (p *Pool) Convert(ctx context.Context, doc Document, out Output) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return &TimeoutError{Source: doc.Source, Timeout: p.conv.env.timeout(), Err: ctx.Err()}
	}
	defer func() { <-p.sem }()

	return p.conv.Convert(ctx, doc, out)
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware when the binary imports automaxprocs.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

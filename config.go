package falseshare

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfiguration marks an invalid parameter. It is always detected
	// before any measurement starts.
	ErrConfiguration = errors.New("falseshare: invalid configuration")

	// ErrResource marks a failure to start the worker cohort. A run that
	// hits it is aborted outright; there are no partial results.
	ErrResource = errors.New("falseshare: worker start failed")
)

// Defaults for Config. The iteration counts, publish interval, trial count
// and significance threshold are tuning constants with no derivation beyond
// "pronounced effect on common hardware"; override them freely.
const (
	DefaultWorkerCount = 4

	// DefaultIterations is the per-worker increment count for the paired
	// comparison, where every trial runs the workload twice.
	DefaultIterations = 50_000_000

	// SingleIterations is the larger count used when one variant runs
	// standalone.
	SingleIterations = 100_000_000

	DefaultPublishInterval = 1000

	DefaultTrials = 3

	// DefaultSignificanceThreshold is the packed-over-padded speedup above
	// which the outcome counts as a significant improvement.
	DefaultSignificanceThreshold = 1.5
)

// Config holds the parameters of one benchmark session.
type Config struct {
	// WorkerCount is the number of concurrent workers, one per layout slot.
	WorkerCount int

	// Iterations is the number of increments each worker performs. It must
	// fit in the 4-byte counter a slot stores.
	Iterations int

	// PublishInterval is how often a worker writes its private accumulator
	// to the shared slot: every PublishInterval-th iteration, plus once
	// unconditionally after the loop.
	PublishInterval int

	// CacheLineBytes is the assumed cache-line size. It must match the
	// compile-time CacheLineSize the layouts are padded with; the field
	// exists so a stale assumption fails fast instead of silently skewing
	// the experiment.
	CacheLineBytes uintptr

	// Trials is the number of packed+padded run pairs averaged over.
	Trials int

	// SignificanceThreshold classifies the final speedup; see Report.
	SignificanceThreshold float64

	// PinWorkers locks each worker to an OS thread and, on Linux, binds it
	// to a distinct CPU. Off by default.
	PinWorkers bool
}

// DefaultConfig returns the comparison-mode defaults.
func DefaultConfig() Config {
	return Config{
		WorkerCount:           DefaultWorkerCount,
		Iterations:            DefaultIterations,
		PublishInterval:       DefaultPublishInterval,
		CacheLineBytes:        CacheLineSize,
		Trials:                DefaultTrials,
		SignificanceThreshold: DefaultSignificanceThreshold,
	}
}

// Validate reports the first invalid parameter as an ErrConfiguration. A
// config that validates cleanly cannot fail later for configuration reasons.
func (c Config) Validate() error {
	switch {
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker count %d, want >= 1", ErrConfiguration, c.WorkerCount)
	case c.Iterations < 1:
		return fmt.Errorf("%w: iteration count %d, want >= 1", ErrConfiguration, c.Iterations)
	case c.Iterations > math.MaxInt32:
		return fmt.Errorf("%w: iteration count %d overflows the 4-byte counter", ErrConfiguration, c.Iterations)
	case c.PublishInterval < 1:
		return fmt.Errorf("%w: publish interval %d, want >= 1", ErrConfiguration, c.PublishInterval)
	case c.Trials < 1:
		return fmt.Errorf("%w: trial count %d, want >= 1", ErrConfiguration, c.Trials)
	case !(c.SignificanceThreshold > 0):
		return fmt.Errorf("%w: significance threshold %v, want > 0", ErrConfiguration, c.SignificanceThreshold)
	case c.CacheLineBytes == 0 || c.CacheLineBytes&(c.CacheLineBytes-1) != 0:
		return fmt.Errorf("%w: cache line size %d, want a power of two", ErrConfiguration, c.CacheLineBytes)
	case c.CacheLineBytes < counterBytes:
		return fmt.Errorf("%w: cache line size %d smaller than the %d-byte counter", ErrConfiguration, c.CacheLineBytes, counterBytes)
	case c.CacheLineBytes != CacheLineSize:
		return fmt.Errorf("%w: cache line size %d, but this build pads to %d", ErrConfiguration, c.CacheLineBytes, CacheLineSize)
	}
	return nil
}

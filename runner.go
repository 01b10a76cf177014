package falseshare

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner executes one measured pass of the workload over a layout. The zero
// value is ready to use.
type Runner struct {
	clock Clock
}

// Measure zeroes the layout, runs one worker per slot to completion and
// returns the wall-clock duration of the whole pass in milliseconds.
//
// The measured interval opens before the first worker starts and closes
// after the slowest worker finishes; Measure is itself the join barrier and
// does not return while any worker is still running. There is no timeout
// and no cancellation: a hung worker hangs the measurement. After a nil
// error return, every slot holds exactly cfg.Iterations.
func (r *Runner) Measure(layout Layout, cfg Config) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if layout.Len() != cfg.WorkerCount {
		return 0, fmt.Errorf("%w: layout has %d slots, config wants %d workers",
			ErrConfiguration, layout.Len(), cfg.WorkerCount)
	}
	layout.Reset()

	var g errgroup.Group
	start := r.clock.Now()
	for i := range cfg.WorkerCount {
		slot := layout.Slot(i)
		g.Go(func() error {
			if cfg.PinWorkers {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				if err := pinWorker(i); err != nil {
					return fmt.Errorf("%w: pin worker %d: %v", ErrResource, i, err)
				}
			}
			runWorker(slot, cfg.Iterations, cfg.PublishInterval)
			return nil
		})
	}
	err := g.Wait()
	end := r.clock.Now()
	if err != nil {
		return 0, err
	}
	return r.clock.ElapsedMS(start, end), nil
}

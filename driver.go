package falseshare

import (
	"fmt"
	"time"
)

// TrialSet is the ordered sequence of elapsed-time samples, in milliseconds,
// collected for one variant across a comparison.
type TrialSet []float64

// Mean returns the arithmetic mean of the samples, or 0 for an empty set.
func (s TrialSet) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Driver runs the paired packed-versus-padded comparison. The zero value is
// ready to use.
type Driver struct {
	Runner Runner

	// Observer, when set, is invoked after every completed trial with that
	// trial's pair of timings. Used for progress output.
	Observer func(trial int, packedMS, paddedMS float64)
}

// Compare runs both variants cfg.Trials times each, packed then padded
// within every trial so any systemic drift hits both sides symmetrically,
// and aggregates the timings into a Report.
//
// An anomalous trial is never discarded or re-run; the only robustness is
// the averaging itself. Trials execute strictly one after another on the
// calling goroutine, so no two measurements ever overlap.
func (d *Driver) Compare(cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	packed, err := NewPackedLayout(cfg.WorkerCount)
	if err != nil {
		return nil, err
	}
	padded, err := NewPaddedLayout(cfg.WorkerCount)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Config: cfg,
		Packed: Inspect(packed),
		Padded: Inspect(padded),
	}
	for trial := range cfg.Trials {
		packedMS, err := d.measureVerified(packed, cfg)
		if err != nil {
			return nil, err
		}
		settle()
		paddedMS, err := d.measureVerified(padded, cfg)
		if err != nil {
			return nil, err
		}
		rep.PackedTrials = append(rep.PackedTrials, packedMS)
		rep.PaddedTrials = append(rep.PaddedTrials, paddedMS)
		if d.Observer != nil {
			d.Observer(trial, packedMS, paddedMS)
		}
	}
	rep.finalize()
	return rep, nil
}

// SingleResult is the outcome of one standalone run of a single variant.
type SingleResult struct {
	Layout    LayoutInfo
	ElapsedMS float64
	OpsPerSec float64
	Counters  []int32
}

// Single runs one variant once and reports its timing and final counters.
func (d *Driver) Single(layout Layout, cfg Config) (*SingleResult, error) {
	ms, err := d.measureVerified(layout, cfg)
	if err != nil {
		return nil, err
	}
	res := &SingleResult{
		Layout:    Inspect(layout),
		ElapsedMS: ms,
		OpsPerSec: opsPerSec(cfg, ms),
		Counters:  make([]int32, layout.Len()),
	}
	for i := range layout.Len() {
		res.Counters[i] = *layout.Slot(i)
	}
	return res, nil
}

// measureVerified runs one pass and checks the published counters after the
// join: a slot that does not hold the full iteration count means the harness
// itself is broken and its timings are garbage.
func (d *Driver) measureVerified(layout Layout, cfg Config) (float64, error) {
	ms, err := d.Runner.Measure(layout, cfg)
	if err != nil {
		return 0, err
	}
	want := int32(cfg.Iterations)
	for i := range layout.Len() {
		if got := *layout.Slot(i); got != want {
			return 0, fmt.Errorf("falseshare: %s slot %d holds %d after run, want %d",
				layout.Name(), i, got, want)
		}
	}
	return ms, nil
}

// settle leaves a short gap between the two halves of a trial so scheduler
// and cache residue from one variant does not bleed into the other.
func settle() {
	time.Sleep(10 * time.Millisecond)
}

// opsPerSec converts a mean duration into total increments per second, or 0
// when the duration is too small to divide by.
func opsPerSec(cfg Config, meanMS float64) float64 {
	if meanMS <= 0 {
		return 0
	}
	return float64(cfg.WorkerCount) * float64(cfg.Iterations) / (meanMS / 1e3)
}

// Compare runs the paired comparison with a default Driver.
func Compare(cfg Config) (*Report, error) {
	return new(Driver).Compare(cfg)
}

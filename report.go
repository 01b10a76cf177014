package falseshare

import (
	"fmt"
	"io"
)

// LayoutInfo is the introspection a report prints about one layout.
type LayoutInfo struct {
	Name        string
	Slots       int
	Stride      uintptr
	SizeInBytes uintptr

	// SlotsPerLine is how many slots fit in one assumed cache line. Values
	// above 1 mean neighbouring workers alias the same line.
	SlotsPerLine int
}

// Inspect captures a layout's placement facts for reporting.
func Inspect(l Layout) LayoutInfo {
	info := LayoutInfo{
		Name:         l.Name(),
		Slots:        l.Len(),
		Stride:       l.Stride(),
		SizeInBytes:  l.SizeInBytes(),
		SlotsPerLine: 1,
	}
	if l.Stride() < CacheLineSize {
		info.SlotsPerLine = int(CacheLineSize / l.Stride())
	}
	return info
}

// Aliased reports whether at least two slots share a cache line.
func (in LayoutInfo) Aliased() bool {
	return in.Slots > 1 && in.SlotsPerLine > 1
}

// Report is the aggregated outcome of one packed-versus-padded comparison.
type Report struct {
	Config         Config
	Packed, Padded LayoutInfo

	PackedTrials TrialSet
	PaddedTrials TrialSet

	PackedMeanMS float64
	PaddedMeanMS float64

	// Speedup is mean packed time over mean padded time; above 1 means
	// padding helped.
	Speedup float64

	// TimeReductionPct is how much of the packed run time padding removed.
	TimeReductionPct float64

	PackedOpsPerSec float64
	PaddedOpsPerSec float64

	// Significant is true when Speedup exceeds the configured threshold.
	Significant bool
}

func (r *Report) finalize() {
	r.PackedMeanMS = r.PackedTrials.Mean()
	r.PaddedMeanMS = r.PaddedTrials.Mean()
	if r.PaddedMeanMS > 0 {
		r.Speedup = r.PackedMeanMS / r.PaddedMeanMS
	}
	if r.PackedMeanMS > 0 {
		r.TimeReductionPct = (r.PackedMeanMS - r.PaddedMeanMS) / r.PackedMeanMS * 100
	}
	r.PackedOpsPerSec = opsPerSec(r.Config, r.PackedMeanMS)
	r.PaddedOpsPerSec = opsPerSec(r.Config, r.PaddedMeanMS)
	r.Significant = r.Speedup > r.Config.SignificanceThreshold
}

// TrialSpeedup returns the packed-over-padded ratio for one trial.
func (r *Report) TrialSpeedup(trial int) float64 {
	if r.PaddedTrials[trial] <= 0 {
		return 0
	}
	return r.PackedTrials[trial] / r.PaddedTrials[trial]
}

// Classification names the outcome class.
func (r *Report) Classification() string {
	if r.Significant {
		return "significant improvement"
	}
	return "marginal improvement"
}

// Fprint writes the full human-readable report to w.
func (r *Report) Fprint(w io.Writer) {
	fmt.Fprintf(w, "=== RESULTS (%d trials) ===\n", r.Config.Trials)
	for i := range r.PackedTrials {
		fmt.Fprintf(w, "Trial %d/%d:\n", i+1, r.Config.Trials)
		fmt.Fprintf(w, "  packed (false sharing): %.2f ms\n", r.PackedTrials[i])
		fmt.Fprintf(w, "  padded (optimized):     %.2f ms\n", r.PaddedTrials[i])
		fmt.Fprintf(w, "  speedup this trial:     %.2fx\n", r.TrialSpeedup(i))
	}

	fmt.Fprintf(w, "\nAverage execution times:\n")
	fmt.Fprintf(w, "  Without padding (false sharing): %.2f ms\n", r.PackedMeanMS)
	fmt.Fprintf(w, "  With padding (optimized):        %.2f ms\n", r.PaddedMeanMS)
	fmt.Fprintf(w, "  Performance improvement:         %.2fx speedup\n", r.Speedup)
	fmt.Fprintf(w, "  Time reduction:                  %.1f%%\n", r.TimeReductionPct)

	fmt.Fprintf(w, "\nThroughput comparison:\n")
	fmt.Fprintf(w, "  False sharing: %.0f ops/sec (%.2f million ops/sec)\n",
		r.PackedOpsPerSec, r.PackedOpsPerSec/1e6)
	fmt.Fprintf(w, "  Optimized:     %.0f ops/sec (%.2f million ops/sec)\n",
		r.PaddedOpsPerSec, r.PaddedOpsPerSec/1e6)

	fmt.Fprintf(w, "\nOutcome: %s (speedup %.2fx, threshold %.2fx)\n",
		r.Classification(), r.Speedup, r.Config.SignificanceThreshold)
	if r.Significant {
		fmt.Fprintf(w, "Padding eliminated the false sharing between worker counters.\n")
	} else {
		fmt.Fprintf(w, "Limited difference observed. Common causes:\n")
		fmt.Fprintf(w, "  - single-core or heavily loaded host\n")
		fmt.Fprintf(w, "  - very fast cache-coherence protocols or adjacent-line prefetch\n")
		fmt.Fprintf(w, "  - a real cache-line size different from the assumed %d bytes\n",
			r.Config.CacheLineBytes)
		fmt.Fprintf(w, "Try increasing the iteration or worker count for a more pronounced effect.\n")
	}
}

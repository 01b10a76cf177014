// Package falseshare is a microbenchmark harness that quantifies the cost of
// false sharing: independent per-worker counters that happen to occupy the
// same cache line force the coherence protocol to bounce that line between
// cores on every write, even though no worker ever reads another's counter.
//
// The harness races two layouts of the same data through an identical
// workload. PackedLayout stores the counters back to back, so several of
// them alias one cache line; PaddedLayout gives every counter its own
// cache-line-sized, cache-line-aligned slot. A Driver runs both layouts for
// a fixed number of trials, averages the wall-clock timings, and classifies
// the packed-over-padded speedup against a configurable threshold.
//
// Nothing here counts cache misses or coherence messages; the effect is
// inferred purely from the elapsed-time difference between two otherwise
// identical workloads.
package falseshare

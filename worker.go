package falseshare

// runWorker performs one worker's share of the workload against its slot:
// iterations increments of a private accumulator, published to the slot
// every publishInterval-th iteration and once more after the loop, so the
// slot always ends at exactly iterations.
//
// Publications are plain stores on purpose. Atomic or locked stores would
// serialize the very cache-line traffic this harness exists to measure.
// Workers never write each other's slots, so the stores race with nothing;
// the only contention is at the coherence-protocol level.
func runWorker(slot *int32, iterations, publishInterval int) {
	var local int32
	for i := 0; i < iterations; i++ {
		local++
		if i%publishInterval == 0 {
			*slot = local
		}
	}
	*slot = local
}

package falseshare

import "testing"

func TestWorkerPublishesExactCount(t *testing.T) {
	const iterations = 12345
	for _, interval := range []int{1, 3, 7, 1000, iterations, iterations * 10} {
		var slot int32
		runWorker(&slot, iterations, interval)
		if slot != iterations {
			t.Errorf("interval %d: slot = %d, want %d", interval, slot, iterations)
		}
	}
}

func TestWorkerSingleIteration(t *testing.T) {
	var slot int32
	runWorker(&slot, 1, 1000)
	if slot != 1 {
		t.Errorf("slot = %d, want 1", slot)
	}
}

func TestWorkerOverwritesStaleSlot(t *testing.T) {
	slot := int32(-7)
	runWorker(&slot, 42, 5)
	if slot != 42 {
		t.Errorf("slot = %d, want 42", slot)
	}
}

//go:build !linux

package falseshare

// Worker pinning is only wired up on Linux; elsewhere the scheduler places
// the workers and pinWorker is a no-op.
func pinWorker(int) error { return nil }

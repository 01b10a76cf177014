//go:build linux

package falseshare

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinWorker binds the calling thread to one CPU so each worker hammers its
// slot from a stable core. The caller must hold runtime.LockOSThread for
// the affinity to mean anything.
func pinWorker(worker int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(worker % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}

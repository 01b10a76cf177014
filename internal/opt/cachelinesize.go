//go:build !falseshare_cachelinesize_32 && !falseshare_cachelinesize_64 && !falseshare_cachelinesize_128 && !falseshare_cachelinesize_256

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the cache-line size assumed when padding and aligning
// counter slots. It's automatically calculated using the `golang.org/x/sys`
// package for the target architecture, and can be forced to a specific value
// with one of the falseshare_cachelinesize_{32,64,128,256} build tags.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})

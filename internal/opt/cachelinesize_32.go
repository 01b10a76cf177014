//go:build falseshare_cachelinesize_32

package opt

// CacheLineSize_ forced to 32 bytes by build tag.
const CacheLineSize_ = 32

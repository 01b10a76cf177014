//go:build falseshare_cachelinesize_128

package opt

// CacheLineSize_ forced to 128 bytes by build tag.
const CacheLineSize_ = 128

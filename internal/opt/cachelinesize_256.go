//go:build falseshare_cachelinesize_256

package opt

// CacheLineSize_ forced to 256 bytes by build tag.
const CacheLineSize_ = 256

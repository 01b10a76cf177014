package falseshare

import (
	"fmt"
	"unsafe"

	"github.com/perfbench/falseshare/internal/opt"
)

// CacheLineSize is the cache-line size the padded layout is built around.
// It is fixed at compile time; see internal/opt for the build tags that
// override the detected value.
const CacheLineSize = opt.CacheLineSize_

// counterBytes is the width of one published counter. Deliberately much
// narrower than a cache line, so packed counters alias the same line.
const counterBytes = unsafe.Sizeof(int32(0))

// A Layout stores one published counter per worker. Both implementations
// hold the same logical data; they differ only in where the counters sit
// relative to cache-line boundaries, which is the variable under test.
type Layout interface {
	// Slot returns the counter owned by worker i. It panics if i is outside
	// [0, Len()): a worker writing through a wrong index would corrupt a
	// neighbour's slot and invalidate the whole measurement.
	Slot(i int) *int32

	// Len returns the number of slots.
	Len() int

	// Stride returns the distance in bytes between consecutive slots.
	Stride() uintptr

	// SizeInBytes returns the total footprint of the slot storage.
	SizeInBytes() uintptr

	// Reset zeroes every slot.
	Reset()

	// Name identifies the variant in reports.
	Name() string
}

// PackedLayout stores the counters contiguously with no spacing, so up to
// CacheLineSize/4 neighbouring counters share one cache line. That aliasing
// is the condition under test, not an accident.
type PackedLayout struct {
	counters []int32
}

// NewPackedLayout allocates a packed layout with n zeroed slots.
func NewPackedLayout(n int) (*PackedLayout, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: slot count %d, want >= 1", ErrConfiguration, n)
	}
	return &PackedLayout{counters: make([]int32, n)}, nil
}

func (l *PackedLayout) Slot(i int) *int32 { return &l.counters[i] }

func (l *PackedLayout) Len() int { return len(l.counters) }

func (l *PackedLayout) Stride() uintptr { return counterBytes }

func (l *PackedLayout) SizeInBytes() uintptr {
	return uintptr(len(l.counters)) * counterBytes
}

func (l *PackedLayout) Reset() { clear(l.counters) }

func (l *PackedLayout) Name() string { return "packed" }

// paddedSlot pins one counter to a full cache line. The padding arithmetic
// keeps the slot size equal to CacheLineSize for any line size the build
// selects.
type paddedSlot struct {
	c int32
	_ [(CacheLineSize - unsafe.Sizeof(int32(0))%CacheLineSize) % CacheLineSize]byte
}

// PaddedLayout gives each counter its own cache-line-sized slot and aligns
// slot 0 to a cache-line boundary, so no two slots ever share a line.
//
// Go offers no alignment directive, so the layout over-allocates a byte
// buffer and takes an aligned slice view into it. The buffer is retained to
// keep the backing array reachable for the lifetime of the view.
type PaddedLayout struct {
	slots []paddedSlot
	buf   []byte
}

// NewPaddedLayout allocates a padded layout with n zeroed slots. The slot
// stride and base alignment are verified rather than assumed: if either does
// not hold, the variant proves nothing, so construction fails instead.
func NewPaddedLayout(n int) (*PaddedLayout, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: slot count %d, want >= 1", ErrConfiguration, n)
	}
	const stride = unsafe.Sizeof(paddedSlot{})
	if stride != CacheLineSize {
		return nil, fmt.Errorf("%w: padded slot is %d bytes, want the %d-byte cache line",
			ErrConfiguration, stride, CacheLineSize)
	}
	buf := make([]byte, uintptr(n)*stride+CacheLineSize-1)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	off := (CacheLineSize - uintptr(base)%CacheLineSize) % CacheLineSize
	slots := unsafe.Slice((*paddedSlot)(unsafe.Add(base, off)), n)
	l := &PaddedLayout{slots: slots, buf: buf}
	if l.base()%CacheLineSize != 0 {
		return nil, fmt.Errorf("%w: padded base %#x not aligned to %d bytes",
			ErrConfiguration, l.base(), CacheLineSize)
	}
	return l, nil
}

func (l *PaddedLayout) Slot(i int) *int32 { return &l.slots[i].c }

func (l *PaddedLayout) Len() int { return len(l.slots) }

func (l *PaddedLayout) Stride() uintptr { return unsafe.Sizeof(paddedSlot{}) }

func (l *PaddedLayout) SizeInBytes() uintptr {
	return uintptr(len(l.slots)) * unsafe.Sizeof(paddedSlot{})
}

func (l *PaddedLayout) Reset() { clear(l.slots) }

func (l *PaddedLayout) Name() string { return "padded" }

// base returns the address of slot 0.
func (l *PaddedLayout) base() uintptr {
	return uintptr(unsafe.Pointer(&l.slots[0]))
}

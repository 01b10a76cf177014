package falseshare

import (
	"errors"
	"testing"
	"unsafe"
)

func TestPaddedSlotSize(t *testing.T) {
	var s paddedSlot
	if size := unsafe.Sizeof(s); size != CacheLineSize {
		t.Errorf("paddedSlot size = %d, want %d", size, CacheLineSize)
	}
}

func TestPackedLayoutPlacement(t *testing.T) {
	const n = 8
	l, err := NewPackedLayout(n)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != n {
		t.Errorf("Len = %d, want %d", l.Len(), n)
	}
	if l.Stride() != counterBytes {
		t.Errorf("Stride = %d, want %d", l.Stride(), counterBytes)
	}
	if l.SizeInBytes() != n*counterBytes {
		t.Errorf("SizeInBytes = %d, want %d", l.SizeInBytes(), n*counterBytes)
	}
	for i := 1; i < n; i++ {
		diff := uintptr(unsafe.Pointer(l.Slot(i))) - uintptr(unsafe.Pointer(l.Slot(i-1)))
		if diff != counterBytes {
			t.Errorf("slot %d is %d bytes after slot %d, want %d", i, diff, i-1, counterBytes)
		}
	}
}

func TestPackedLayoutAliasesOneLine(t *testing.T) {
	// Precondition of the experiment: with the default worker count the
	// whole packed array fits in one cache line.
	l, err := NewPackedLayout(DefaultWorkerCount)
	if err != nil {
		t.Fatal(err)
	}
	if l.SizeInBytes() > CacheLineSize {
		t.Fatalf("packed array is %d bytes, exceeds one %d-byte line", l.SizeInBytes(), CacheLineSize)
	}
	span := uintptr(unsafe.Pointer(l.Slot(l.Len()-1))) - uintptr(unsafe.Pointer(l.Slot(0)))
	if span+counterBytes > CacheLineSize {
		t.Errorf("packed slots span %d bytes, want <= %d", span+counterBytes, CacheLineSize)
	}
}

func TestPaddedLayoutPlacement(t *testing.T) {
	const n = 8
	l, err := NewPaddedLayout(n)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != n {
		t.Errorf("Len = %d, want %d", l.Len(), n)
	}
	if l.Stride() != CacheLineSize {
		t.Errorf("Stride = %d, want %d", l.Stride(), CacheLineSize)
	}
	if l.SizeInBytes() != n*CacheLineSize {
		t.Errorf("SizeInBytes = %d, want %d", l.SizeInBytes(), n*CacheLineSize)
	}
	base := uintptr(unsafe.Pointer(l.Slot(0)))
	if base%CacheLineSize != 0 {
		t.Errorf("base %#x not aligned to %d bytes", base, CacheLineSize)
	}
	for i := 1; i < n; i++ {
		diff := uintptr(unsafe.Pointer(l.Slot(i))) - uintptr(unsafe.Pointer(l.Slot(i-1)))
		if diff != CacheLineSize {
			t.Errorf("slot %d is %d bytes after slot %d, want %d", i, diff, i-1, CacheLineSize)
		}
	}
}

func TestLayoutReset(t *testing.T) {
	for _, l := range testLayouts(t, 4) {
		for i := range l.Len() {
			*l.Slot(i) = int32(i + 1)
		}
		l.Reset()
		for i := range l.Len() {
			if v := *l.Slot(i); v != 0 {
				t.Errorf("%s slot %d = %d after Reset, want 0", l.Name(), i, v)
			}
		}
	}
}

func TestLayoutSlotBounds(t *testing.T) {
	for _, l := range testLayouts(t, 2) {
		for _, i := range []int{-1, 2} {
			func() {
				defer func() {
					if recover() == nil {
						t.Errorf("%s Slot(%d) did not panic", l.Name(), i)
					}
				}()
				l.Slot(i)
			}()
		}
	}
}

func TestNewLayoutRejectsBadSlotCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewPackedLayout(n); !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewPackedLayout(%d) err = %v, want ErrConfiguration", n, err)
		}
		if _, err := NewPaddedLayout(n); !errors.Is(err, ErrConfiguration) {
			t.Errorf("NewPaddedLayout(%d) err = %v, want ErrConfiguration", n, err)
		}
	}
}

func testLayouts(t *testing.T, n int) []Layout {
	t.Helper()
	packed, err := NewPackedLayout(n)
	if err != nil {
		t.Fatal(err)
	}
	padded, err := NewPaddedLayout(n)
	if err != nil {
		t.Fatal(err)
	}
	return []Layout{packed, padded}
}

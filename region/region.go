// Package region manages page-aligned, write-xor-execute memory for machine
// code snippets. A Region is allocated RW, populated, flipped to RX, and
// unmapped on Close — the pages are never simultaneously writable and
// executable (spec.md §4.1, I1).
package region

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/haldoris/instrbench/internal/obs"
)

var pageSize = mustPageSize()

// mustPageSize reads sysconf(_SC_PAGE_SIZE) via the stdlib wrapper around
// getpagesize(2). A zero or negative result is not observed on any host Go
// supports; it is treated the same as the other fatal setup failures below.
func mustPageSize() int {
	sz := os.Getpagesize()
	if sz <= 0 {
		obs.Fatal("sysconf(_SC_PAGE_SIZE) failed", fmt.Errorf("getpagesize returned %d", sz), nil)
	}
	return sz
}

func roundToPageSize(n int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// Region owns a page-aligned anonymous private mapping containing a
// snippet's bytes, exposed read+execute once constructed. The zero value is
// not usable; construct with New.
type Region struct {
	mem  []byte
	size int
}

// New allocates size bytes rounded up to a full page, copies code into it,
// and flips the mapping to read+execute. Allocation or protection failure is
// treated as fatal: the caller cannot meaningfully recover from a host that
// cannot give us executable memory, so New aborts the process rather than
// returning an error (spec.md §4.1).
func New(code []byte) *Region {
	size := roundToPageSize(len(code))
	if size == 0 {
		size = pageSize
	}

	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		obs.Fatal("mmap RW region failed", err, map[string]any{"size": size})
	}

	copy(mem, code)

	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		obs.Fatal("mprotect RX region failed", err, map[string]any{"size": size})
	}

	obs.L().Debug().Int("size", size).Msg("executable region mapped")

	return &Region{mem: mem, size: size}
}

// Addr returns a stable pointer to the first byte of the mapping, valid
// until Close is called. Using it afterward is a program error.
func (r *Region) Addr() uintptr {
	return uintptr(unsafe.Pointer(&r.mem[0]))
}

// Size returns the page-rounded size of the mapping.
func (r *Region) Size() int {
	return r.size
}

// Close unmaps the region. Calls after the first are no-ops that return
// nil; using Addr after Close is a program error.
func (r *Region) Close() error {
	if r.mem == nil {
		return nil
	}
	err := unix.Munmap(r.mem)
	r.mem = nil
	if err != nil {
		return fmt.Errorf("munmap region: %w", err)
	}
	return nil
}

// Package shmem implements the two named shared-memory regions the
// arbiter, players, and viewer all map: /game_state (the board) and
// /game_sync (the SyncBlock). It is deliberately a thin layer — create,
// open, destroy, close, plus typed views over the mapped bytes — with all
// platform-specific mmap work isolated behind a //go:build split, the way
// internal/platform gates its OS-specific syscalls in the example this was
// adapted from.
package shmem

import (
	"fmt"
	"unsafe"

	"github.com/garaekz/chompchamps/internal/errkind"
)

const op = "shmem"

// Region is a mapped POSIX-named shared-memory region, optionally reserving
// its first bytes for a front semaphore (used by no current component, but
// kept per the SharedRegion contract so a future caller can opt in without
// a layout change).
type Region struct {
	name         string
	data         []byte
	withFrontSem bool
	dataOffset   int
}

// frontSemSize is the number of bytes reserved at the start of a region
// created with withFrontSem set.
var frontSemSize = int(unsafe.Sizeof(frontSemPlaceholder{}))

// frontSemPlaceholder mirrors ipc.Sema's layout without importing internal/ipc,
// keeping shmem's only dependency direction pointing at errkind.
type frontSemPlaceholder struct {
	count int32
}

// Create creates a new named region of the given size, truncating it if it
// already exists from a previous crashed run.
func Create(name string, size int, withFrontSem bool) (*Region, error) {
	if size <= 0 {
		return nil, errkind.New(errkind.InvalidArgument, op+".Create", fmt.Errorf("size must be positive, got %d", size))
	}
	total := size
	offset := 0
	if withFrontSem {
		offset = frontSemSize
		total += frontSemSize
	}

	data, err := platformCreate(name, total)
	if err != nil {
		return nil, errkind.New(errkind.ResourceUnavailable, op+".Create", err)
	}
	return &Region{name: name, data: data, withFrontSem: withFrontSem, dataOffset: offset}, nil
}

// Open maps an existing named region. If size is 0, the size is taken from
// the region's current filesystem metadata. Open reports
// ResourceUnavailable when the region cannot be mapped and InvalidArgument
// when it is too small for the requested front semaphore; whether it is
// large enough for a header layout is left to the caller to check via
// Size().
func Open(name string, size int, withFrontSem bool) (*Region, error) {
	// A region carrying a front semaphore must be writable to be usable, so
	// the read-only fallback is only offered when none was requested.
	data, err := platformOpen(name, size, !withFrontSem)
	if err != nil {
		return nil, errkind.New(errkind.ResourceUnavailable, op+".Open", err)
	}
	offset := 0
	if withFrontSem {
		offset = frontSemSize
	}
	if len(data) < offset {
		platformClose(data)
		return nil, errkind.New(errkind.InvalidArgument, op+".Open", fmt.Errorf("region %q too small for front semaphore", name))
	}
	return &Region{name: name, data: data, withFrontSem: withFrontSem, dataOffset: offset}, nil
}

// Name returns the region's POSIX name.
func (r *Region) Name() string { return r.name }

// Size returns the size of the data area, excluding any front-semaphore
// reservation.
func (r *Region) Size() int { return len(r.data) - r.dataOffset }

// Data returns the mapped bytes past any front-semaphore reservation.
func (r *Region) Data() []byte { return r.data[r.dataOffset:] }

// FrontSemBytes returns the raw bytes reserved for the front semaphore, or
// nil if the region was not created with one.
func (r *Region) FrontSemBytes() []byte {
	if !r.withFrontSem {
		return nil
	}
	return r.data[:r.dataOffset]
}

// Close unmaps the region without removing its name, so other processes
// that still hold it mapped are unaffected. Players and the viewer call
// Close; only the arbiter calls Destroy.
func (r *Region) Close() error {
	if err := platformClose(r.data); err != nil {
		return errkind.New(errkind.IOFailure, op+".Close", err)
	}
	return nil
}

// Destroy unmaps the region and removes its name so no new process can open
// it. Only the arbiter, as the region's creator, calls this.
func (r *Region) Destroy() error {
	if err := platformDestroy(r.name, r.data); err != nil {
		return errkind.New(errkind.IOFailure, op+".Destroy", err)
	}
	return nil
}

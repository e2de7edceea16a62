package shmem

import (
	"fmt"
	"unsafe"

	"github.com/garaekz/chompchamps/internal/board"
	"github.com/garaekz/chompchamps/internal/errkind"
	"github.com/garaekz/chompchamps/internal/ipc"
)

// StateHeaderSize is the number of bytes board.StateHeader occupies at the
// front of the /game_state region.
var StateHeaderSize = int(unsafe.Sizeof(board.StateHeader{}))

// CellSize is the wire size of a single board.Cell.
var CellSize = int(unsafe.Sizeof(board.Cell(0)))

// SyncBlockSize is the fixed size of the /game_sync region.
var SyncBlockSize = int(unsafe.Sizeof(ipc.SyncBlock{}))

// StateSize returns the total size the /game_state region must have to hold
// a width x height board, matching spec's
// sizeof(header) + width*height*sizeof(Cell) layout.
func StateSize(width, height int32) int {
	return StateHeaderSize + int(width)*int(height)*CellSize
}

// Header returns a pointer to the StateHeader stored at the front of the
// region's data area. Mutations through the returned pointer are visible to
// every other process mapping the same region once the writer lock
// protecting them is released.
func (r *Region) Header() *board.StateHeader {
	return (*board.StateHeader)(unsafe.Pointer(&r.Data()[0]))
}

// Cells returns a slice view over the flexible board array following the
// header, sized from the header's own Width/Height fields. The caller must
// hold at least the readers' protocol before reading through it, or the
// writer lock before writing through it.
func (r *Region) Cells() []board.Cell {
	h := r.Header()
	n := int(h.Width) * int(h.Height)
	base := unsafe.Pointer(&r.Data()[StateHeaderSize])
	return unsafe.Slice((*board.Cell)(base), n)
}

// ValidateStateSize checks that the region is large enough to hold a header
// plus a width x height board, reporting InvalidArgument if not — the
// "fail if too small to hold the requested header layout" contract from the
// SharedRegion spec.
func (r *Region) ValidateStateSize(width, height int32) error {
	want := StateSize(width, height)
	if r.Size() < want {
		return errkind.New(errkind.InvalidArgument, op+".ValidateStateSize",
			fmt.Errorf("region %q is %d bytes, need at least %d for a %dx%d board", r.name, r.Size(), want, width, height))
	}
	return nil
}

// Sync returns a pointer to the SyncBlock stored in the region's data area.
func (r *Region) Sync() *ipc.SyncBlock {
	return (*ipc.SyncBlock)(unsafe.Pointer(&r.Data()[0]))
}

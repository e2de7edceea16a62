//go:build linux

package shmem

import (
	"fmt"
	"os"
	"testing"

	"github.com/garaekz/chompchamps/internal/board"
)

func testRegionName(t *testing.T) string {
	return fmt.Sprintf("chompchamps_test_%d_%s", os.Getpid(), t.Name())
}

func TestCreateOpenDestroyRoundTrip(t *testing.T) {
	name := testRegionName(t)

	r, err := Create(name, StateSize(4, 4), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Destroy()

	h := r.Header()
	h.Width = 4
	h.Height = 4
	h.PlayerCount = 1

	cells := r.Cells()
	cells[0] = board.Cell(5)

	opened, err := Open(name, 0, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := opened.Header(); got.Width != 4 || got.Height != 4 {
		t.Fatalf("opened header = %+v, want Width=4 Height=4", got)
	}
	if got := opened.Cells()[0]; got != 5 {
		t.Fatalf("opened cell[0] = %d, want 5", got)
	}

	if err := opened.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenMissingRegionFails(t *testing.T) {
	_, err := Open(testRegionName(t)+"_missing", 0, false)
	if err == nil {
		t.Fatal("Open on a nonexistent region should fail")
	}
}

func TestCreateRejectsNonPositiveSize(t *testing.T) {
	_, err := Create(testRegionName(t), 0, false)
	if err == nil {
		t.Fatal("Create with size 0 should fail")
	}
}

func TestValidateStateSizeRejectsUndersizedRegion(t *testing.T) {
	name := testRegionName(t)
	r, err := Create(name, StateSize(2, 2), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Destroy()

	if err := r.ValidateStateSize(100, 100); err == nil {
		t.Fatal("ValidateStateSize should reject a region too small for the requested board")
	}
	if err := r.ValidateStateSize(2, 2); err != nil {
		t.Fatalf("ValidateStateSize(2,2) on a region sized for 2x2: %v", err)
	}
}

func TestFrontSemReservation(t *testing.T) {
	name := testRegionName(t)
	r, err := Create(name, 64, true)
	if err != nil {
		t.Fatalf("Create with front sem: %v", err)
	}
	defer r.Destroy()

	if got := len(r.FrontSemBytes()); got != frontSemSize {
		t.Fatalf("FrontSemBytes() length = %d, want %d", got, frontSemSize)
	}
	if got := r.Size(); got != 64 {
		t.Fatalf("Size() = %d, want 64 (data area excludes the front sem reservation)", got)
	}
}

func TestSyncBlockView(t *testing.T) {
	name := testRegionName(t)
	r, err := Create(name, SyncBlockSize, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Destroy()

	sb := r.Sync()
	sb.SignalTurn(0)

	opened, err := Open(name, SyncBlockSize, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer opened.Close()

	if !opened.Sync().TurnToken[0].TryWait() {
		t.Fatal("turn token signalled through one mapping should be visible through another")
	}
}

package board

import (
	"math/rand"
)

// MaxPlayers is the largest player count a single game supports. It bounds
// both StateHeader.Players and the start-position table below.
const MaxPlayers = 9

// NameLen is the fixed width of a PlayerRecord's Name field.
const NameLen = 16

// PlayerRecord is the fixed-size, memcpy-able record for one player slot in
// shared memory. Field order and width matter: this struct is laid out
// directly into the shared region by internal/shmem, so it must not contain
// pointers, slices, or anything else the Go runtime would need to relocate.
type PlayerRecord struct {
	Name         [NameLen]byte
	Score        int64
	ValidMoves   uint64
	InvalidMoves uint64
	X            int32
	Y            int32
	PID          int32
	Blocked      bool
	_            [7]byte // pad to a multiple of 8 bytes
}

// SetName copies s into Name, truncating if s is longer than NameLen.
func (p *PlayerRecord) SetName(s string) {
	p.Name = [NameLen]byte{}
	copy(p.Name[:], s)
}

// NameString returns Name as a Go string, trimmed at the first NUL byte.
func (p *PlayerRecord) NameString() string {
	n := 0
	for n < NameLen && p.Name[n] != 0 {
		n++
	}
	return string(p.Name[:n])
}

// StateHeader is the fixed-size header stored at the start of the game
// state shared region. The board cells follow immediately after it as a
// flexible array of Width*Height board.Cell values; internal/shmem computes
// that slice's address from Width and Height rather than this struct
// carrying a pointer.
type StateHeader struct {
	Width       int32
	Height      int32
	PlayerCount int32
	GameOver    bool
	_           [3]byte // pad PlayerCount/GameOver to keep Players 8-aligned
	Players     [MaxPlayers]PlayerRecord
}

// Snapshot is a read-only, heap-allocated copy of the game state taken
// under the readers' side of ipc.SyncBlock. Player and viewer code works
// against Snapshot instead of touching the shared mapping directly, so a
// slow policy decision never holds the reader lock.
type Snapshot struct {
	Header StateHeader
	Cells  []Cell
}

// At returns the cell at board coordinate (x, y).
func (s *Snapshot) At(x, y int32) Cell {
	return s.Cells[y*s.Header.Width+x]
}

// InBounds reports whether (x, y) lies within the snapshot's board.
func (s *Snapshot) InBounds(x, y int32) bool {
	return x >= 0 && x < s.Header.Width && y >= 0 && y < s.Header.Height
}

// startPositions gives the deterministic seat layout for up to MaxPlayers
// players, expressed as fractions of (width-1, height-1) so the same table
// works for any board size: corners first, then edge midpoints, then
// centre. Player i always starts at the i-th entry regardless of how many
// players are actually in the game, so adding players never relocates an
// earlier player's seat.
var startPositions = [MaxPlayers][2]float64{
	{0, 0},       // top-left
	{1, 0},       // top-right
	{1, 1},       // bottom-right
	{0, 1},       // bottom-left
	{0.5, 0},     // top-mid
	{0.5, 1},     // bottom-mid
	{0, 0.5},     // left-mid
	{1, 0.5},     // right-mid
	{0.5, 0.5},   // centre
}

// StartPosition returns the seed coordinate for player index idx on a
// width x height board.
func StartPosition(idx int, width, height int32) (x, y int32) {
	f := startPositions[idx]
	x = int32(f[0] * float64(width-1))
	y = int32(f[1] * float64(height-1))
	return
}

// NewSnapshot allocates a Snapshot for a width x height board with
// playerCount players, with every cell seeded a uniform random reward in
// [1, MaxReward] via rng, then player start cells claimed in player index
// order. Seats land on distinct cells when width and height are both at
// least 3; on smaller boards two seats can map to the same cell, and the
// later player's claim overwrites the earlier one.
func NewSnapshot(width, height int32, playerCount int, rng *rand.Rand) *Snapshot {
	s := &Snapshot{
		Header: StateHeader{
			Width:       width,
			Height:      height,
			PlayerCount: int32(playerCount),
		},
		Cells: make([]Cell, width*height),
	}

	for i := range s.Cells {
		s.Cells[i] = Cell(1 + rng.Intn(MaxReward))
	}

	for i := 0; i < playerCount; i++ {
		x, y := StartPosition(i, width, height)
		s.Header.Players[i].X = x
		s.Header.Players[i].Y = y
		// Placement consumes the seat cell like any accepted move would,
		// so a game that ends before the first move still has a nonzero
		// score to rank on.
		s.Header.Players[i].Score = int64(s.Cells[y*width+x].Reward())
		s.Cells[y*width+x] = Claim(int32(i))
	}

	return s
}

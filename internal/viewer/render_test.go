package viewer

import (
	"strings"
	"testing"

	"github.com/garaekz/chompchamps/internal/board"
)

func testSnapshot() *board.Snapshot {
	s := &board.Snapshot{
		Header: board.StateHeader{Width: 2, Height: 1, PlayerCount: 1},
		Cells:  make([]board.Cell, 2),
	}
	s.Header.Players[0] = board.PlayerRecord{X: 0, Y: 0, Score: 3, ValidMoves: 1}
	s.Cells[0] = board.Claim(0)
	s.Cells[1] = board.Cell(5)
	return s
}

func TestRenderBoardMarksHeadAndReward(t *testing.T) {
	out := renderBoard(testSnapshot())
	if !strings.Contains(out, "5") {
		t.Fatalf("renderBoard() = %q, want the unclaimed reward digit", out)
	}
	if !strings.Contains(out, "A") {
		t.Fatalf("renderBoard() = %q, want player 0's head glyph A", out)
	}
}

func TestRenderScoreboardListsPlayer(t *testing.T) {
	out := renderScoreboard(testSnapshot())
	if !strings.Contains(out, "3") {
		t.Fatalf("renderScoreboard() = %q, want the score", out)
	}
}

func TestRenderScoreboardSortsByScoreDescending(t *testing.T) {
	s := &board.Snapshot{
		Header: board.StateHeader{Width: 1, Height: 1, PlayerCount: 2},
		Cells:  make([]board.Cell, 1),
	}
	s.Header.Players[0] = board.PlayerRecord{Score: 1}
	s.Header.Players[1] = board.PlayerRecord{Score: 9}
	s.Header.Players[0].SetName("low")
	s.Header.Players[1].SetName("high")

	out := renderScoreboard(s)
	if strings.Index(out, "high") > strings.Index(out, "low") {
		t.Fatalf("renderScoreboard() = %q, want high score listed before low score", out)
	}
}

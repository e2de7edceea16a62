package viewer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/garaekz/chompchamps/color"
	"github.com/garaekz/chompchamps/internal/board"
)

// headGlyphs and bodyGlyphs give each of the nine player slots a distinct,
// stable letter: uppercase for the player's current head, lowercase for the
// trail of cells it has already claimed — "marking heads separately from
// bodies" per spec.md §4.5.
var headGlyphs = [board.MaxPlayers]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I'}
var bodyGlyphs = [board.MaxPlayers]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i'}

// playerPalette gives each player slot a stable color so the same player
// reads as the same color across every redraw.
var playerPalette = [board.MaxPlayers]color.Color{
	color.ColorBrightRed, color.ColorBrightGreen, color.ColorBrightYellow,
	color.ColorBrightBlue, color.ColorBrightMagenta, color.ColorBrightCyan,
	color.ColorRed, color.ColorGreen, color.ColorBlue,
}

// renderBoard renders the board row-major, one glyph per cell: a digit for
// an unclaimed reward, an uppercase letter for a player's head, a
// lowercase letter for the rest of that player's claimed trail.
func renderBoard(s *board.Snapshot) string {
	var b strings.Builder
	for y := int32(0); y < s.Header.Height; y++ {
		for x := int32(0); x < s.Header.Width; x++ {
			b.WriteString(cellGlyph(s, x, y))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellGlyph(s *board.Snapshot, x, y int32) string {
	cell := s.At(x, y)
	if cell.Unclaimed() {
		return fmt.Sprintf("%d", cell.Reward())
	}

	idx, _ := cell.Owner()
	p := s.Header.Players[idx]
	isHead := p.X == x && p.Y == y

	glyph := bodyGlyphs[idx]
	if isHead {
		glyph = headGlyphs[idx]
	}
	return playerPalette[idx%board.MaxPlayers].Apply(string(glyph))
}

// renderScoreboard renders a table sorted score desc, then valid_moves asc,
// then invalid_moves asc, per spec.md §4.5.
func renderScoreboard(s *board.Snapshot) string {
	type row struct {
		idx  int32
		name string
		rec  board.PlayerRecord
	}
	rows := make([]row, 0, s.Header.PlayerCount)
	for i := int32(0); i < s.Header.PlayerCount; i++ {
		p := s.Header.Players[i]
		rows = append(rows, row{idx: i, name: p.NameString(), rec: p})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].rec, rows[j].rec
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ValidMoves != b.ValidMoves {
			return a.ValidMoves < b.ValidMoves
		}
		return a.InvalidMoves < b.InvalidMoves
	})

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n%-3s %-16s %8s %8s %8s %8s\n", "#", "player", "score", "valid", "invalid", "blocked"))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-3s %-16s %8d %8d %8d %8v\n",
			string(headGlyphs[r.idx]), r.name, r.rec.Score, r.rec.ValidMoves, r.rec.InvalidMoves, r.rec.Blocked))
	}
	if s.Header.GameOver {
		b.WriteString("\ngame over\n")
	}
	return b.String()
}

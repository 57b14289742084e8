package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/zone"
)

const (
	boardTop  = 3
	boardLeft = 2
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), 255}
}

func text(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// cell draws one board cell as two columns.
func cell(screen tcell.Screen, row, col int, style tcell.Style, glyph string) {
	text(screen, boardLeft+1+col*2, boardTop+1+row, style, glyph)
}

func draw(screen tcell.Screen, snap *game.Snapshot) {
	screen.Clear()
	rows, cols := snap.Board.Rows(), snap.Board.Cols()

	header := fmt.Sprintf("%-9s level %d  score %d  lines %d  next level in %d  %s  sound:%v",
		snap.Status, snap.Level, snap.TotalScore, snap.TotalLines, snap.PointsToNextLevel, snap.Mode, snap.Sound)
	text(screen, boardLeft, 0, tcell.StyleDefault.Bold(true), header)
	if len(snap.Shared) > 0 {
		status := fmt.Sprintf("shift every %s, next in %s", snap.ShiftInterval, snap.ShiftCountdown.Round(time.Second))
		if snap.Shift.Active {
			status = fmt.Sprintf("zone %d shifting %d -> %d", snap.Shift.Zone+1, snap.Shift.From, snap.Shift.To)
		}
		text(screen, boardLeft, 1, tcell.StyleDefault, status)
	}

	frameStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := -1; row <= rows; row++ {
		text(screen, boardLeft, boardTop+1+row, frameStyle, "│")
		text(screen, boardLeft+1+cols*2, boardTop+1+row, frameStyle, "│")
	}
	for col := 0; col < cols*2+2; col++ {
		screen.SetContent(boardLeft+col, boardTop+rows+1, '─', nil, frameStyle)
	}

	backgrounds := zoneBackgrounds(snap, cols)
	for row := range rows {
		for col := range cols {
			bg := tcell.StyleDefault.Background(rgb(backgrounds[col]))
			if block, ok := snap.Cell(row, col).Block(); ok {
				cell(screen, row, col, bg.Foreground(rgb(block.Paint())), "██")
			} else {
				cell(screen, row, col, bg.Foreground(tcell.ColorDarkGray), " ·")
			}
		}
	}

	for _, bomb := range snap.Bombs {
		style := tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Blink(bomb.Remaining < 0.3)
		for _, pos := range bomb.Cells {
			cell(screen, pos.Row, pos.Col, style, "▒▒")
		}
	}

	for _, p := range snap.Players {
		if p.Piece == nil {
			continue
		}
		fill := p.Piece.Kind.Color()
		if p.Explicit {
			fill = p.Color
		}
		ghost := *p.Piece
		ghost.Y = p.GhostY
		drawCells(screen, ghost.Cells(), tcell.StyleDefault.Foreground(rgb(p.Color)), "░░")
		drawCells(screen, p.Piece.Cells(), tcell.StyleDefault.Foreground(rgb(fill)), "██")
	}

	y := boardTop + rows + 2
	for i, p := range snap.Players {
		line := fmt.Sprintf("P%-2d %6d pts %4d lines  next %s", p.ID+1, p.Score, p.Lines, p.Next)
		text(screen, boardLeft+(i%3)*34, y+i/3, tcell.StyleDefault.Foreground(rgb(p.Color)), line)
	}
	y += (len(snap.Players)+2)/3 + 1
	text(screen, boardLeft, y, frameStyle,
		"n start/restart  p pause  m sound  c mode  -/+ players  [/] shift  esc quit")

	if msg := overlay(snap); msg != "" {
		text(screen, boardLeft+2, boardTop+rows/2, tcell.StyleDefault.Reverse(true), msg)
	}
	screen.Show()
}

func drawCells(screen tcell.Screen, cells []board.Pos, style tcell.Style, glyph string) {
	for _, pos := range cells {
		if pos.Row >= 0 {
			cell(screen, pos.Row, pos.Col, style, glyph)
		}
	}
}

// zoneBackgrounds tints each column by the lane that owns it; shared
// columns stay neutral.
func zoneBackgrounds(snap *game.Snapshot, cols int) []color.RGBA {
	out := make([]color.RGBA, cols)
	base := color.RGBA{16, 16, 20, 255}
	for i := range out {
		out[i] = base
	}
	if snap.Mode == zone.Lanes {
		for _, p := range snap.Players {
			for col := p.Zone.Min; col <= p.Zone.Max; col++ {
				out[col] = scale(p.Color, 0.18)
			}
		}
	}
	for i, sz := range snap.Shared {
		start, end := sz.Start, sz.End
		if snap.Shift.Active && snap.Shift.Zone == i {
			start = int(snap.Shift.Position + 0.5)
			end = start + sz.End - sz.Start
		}
		for col := max(start, 0); col <= min(end, cols-1); col++ {
			out[col] = color.RGBA{44, 44, 56, 255}
		}
	}
	return out
}

func overlay(snap *game.Snapshot) string {
	switch snap.Status {
	case game.StatusReady:
		return " Ready. Press n to start. "
	case game.StatusPaused:
		return " Paused. Press p to resume. "
	case game.StatusGameOver:
		return fmt.Sprintf(" Game over: P%d, %s. Press n. ", snap.Loser+1, snap.Reason)
	}
	return ""
}

package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/zone"
)

const (
	margin    = 16
	hudHeight = 96
	maxCell   = 32
)

var (
	background  = color.RGBA{18, 18, 24, 255}
	gridLine    = color.RGBA{40, 40, 52, 255}
	sharedTint  = color.RGBA{255, 255, 255, 18}
	shiftTarget = color.RGBA{255, 220, 120, 200}
	bombColor   = color.RGBA{255, 80, 40, 255}
	dim         = color.RGBA{0, 0, 0, 170}
)

// boardGeometry is where the board sits on screen.
type boardGeometry struct {
	x, y, cell float32
}

func (bg boardGeometry) cellRect(row, col int) (x, y float32) {
	return bg.x + float32(col)*bg.cell, bg.y + float32(row)*bg.cell
}

func fitBoard(screen *ebiten.Image, rows, cols int) boardGeometry {
	w := float32(screen.Bounds().Dx() - 2*margin)
	h := float32(screen.Bounds().Dy() - 2*margin - hudHeight)
	cell := min(w/float32(cols), h/float32(rows), maxCell)
	cell = max(cell, 2)
	return boardGeometry{
		x:    (float32(screen.Bounds().Dx()) - cell*float32(cols)) / 2,
		y:    margin + hudHeight,
		cell: cell,
	}
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// Colours are premultiplied.
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}

func drawGame(screen *ebiten.Image, snap *game.Snapshot) {
	screen.Fill(background)
	rows, cols := snap.Board.Rows(), snap.Board.Cols()
	if rows == 0 || cols == 0 {
		return
	}
	bg := fitBoard(screen, rows, cols)
	width, height := bg.cell*float32(cols), bg.cell*float32(rows)

	drawZones(screen, snap, bg, height)
	for row := range rows {
		for col := range cols {
			x, y := bg.cellRect(row, col)
			if block, ok := snap.Cell(row, col).Block(); ok {
				vector.DrawFilledRect(screen, x+1, y+1, bg.cell-2, bg.cell-2, block.Paint(), false)
			} else {
				vector.StrokeRect(screen, x, y, bg.cell, bg.cell, 1, gridLine, false)
			}
		}
	}
	drawBombs(screen, snap, bg)
	for i := range snap.Players {
		drawPiece(screen, &snap.Players[i], bg)
	}
	vector.StrokeRect(screen, bg.x-1, bg.y-1, width+2, height+2, 2, color.RGBA{120, 120, 140, 255}, false)

	drawHUD(screen, snap)
	if snap.Status != game.StatusRunning {
		drawOverlay(screen, snap, bg, width, height)
	}
}

func drawZones(screen *ebiten.Image, snap *game.Snapshot, bg boardGeometry, height float32) {
	if snap.Mode == zone.Lanes {
		for _, p := range snap.Players {
			x, _ := bg.cellRect(0, p.Zone.Min)
			vector.DrawFilledRect(screen, x, bg.y, bg.cell*float32(p.Zone.Width()), height, withAlpha(p.Color, 22), false)
		}
	}
	for _, sz := range snap.Shared {
		x, _ := bg.cellRect(0, sz.Start)
		vector.DrawFilledRect(screen, x, bg.y, bg.cell*float32(sz.End-sz.Start+1), height, sharedTint, false)
	}

	shift := snap.Shift
	if !shift.Active {
		return
	}
	sz := snap.Shared[shift.Zone]
	w := bg.cell * float32(sz.End-sz.Start+1)
	moving := bg.x + float32(shift.Position)*bg.cell
	target := bg.x + float32(shift.To)*bg.cell
	vector.StrokeRect(screen, target, bg.y, w, height, 1, withAlpha(shiftTarget, 90), false)
	vector.StrokeRect(screen, moving, bg.y, w, height, 3, shiftTarget, false)
}

func drawBombs(screen *ebiten.Image, snap *game.Snapshot, bg boardGeometry) {
	for _, bomb := range snap.Bombs {
		a := uint8(60 + 160*(1-bomb.Remaining))
		for _, pos := range bomb.Cells {
			x, y := bg.cellRect(pos.Row, pos.Col)
			vector.DrawFilledRect(screen, x, y, bg.cell, bg.cell, withAlpha(bombColor, a), false)
		}
	}
}

func drawPiece(screen *ebiten.Image, p *game.PlayerSnapshot, bg boardGeometry) {
	if p.Piece == nil {
		return
	}
	fill := p.Piece.Kind.Color()
	if p.Explicit {
		fill = p.Color
	}
	ghost := *p.Piece
	ghost.Y = p.GhostY
	for _, pos := range ghost.Cells() {
		if pos.Row < 0 {
			continue
		}
		x, y := bg.cellRect(pos.Row, pos.Col)
		vector.StrokeRect(screen, x+2, y+2, bg.cell-4, bg.cell-4, 1, withAlpha(p.Color, 160), false)
	}
	for _, pos := range p.Piece.Cells() {
		if pos.Row < 0 {
			continue
		}
		x, y := bg.cellRect(pos.Row, pos.Col)
		vector.DrawFilledRect(screen, x+1, y+1, bg.cell-2, bg.cell-2, fill, false)
		vector.StrokeRect(screen, x+1, y+1, bg.cell-2, bg.cell-2, 1, p.Color, false)
	}
}

func drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  |  level %d  score %d  lines %d  next level in %d",
		snap.Status, snap.Level, snap.TotalScore, snap.TotalLines, snap.PointsToNextLevel)
	if len(snap.Shared) > 0 {
		if snap.Shift.Active {
			fmt.Fprintf(&sb, "  |  zone %d shifting", snap.Shift.Zone+1)
		} else {
			fmt.Fprintf(&sb, "  |  shift in %ds", int(snap.ShiftCountdown.Round(time.Second)/time.Second))
		}
	}
	fmt.Fprintf(&sb, "  |  %s, sound %v\n", snap.Mode, snap.Sound)
	for _, p := range snap.Players {
		fmt.Fprintf(&sb, "P%d %5d/%-3d next %s  ", p.ID+1, p.Score, p.Lines, p.Next)
		if (p.ID+1)%6 == 0 {
			sb.WriteByte('\n')
		}
	}
	ebitenutil.DebugPrintAt(screen, sb.String(), margin, margin)
	ebitenutil.DebugPrintAt(screen,
		"N start/restart  P pause  M sound  Tab mode  -/= players  [/] shift  F1 inspector  Esc quit",
		margin, screen.Bounds().Dy()-margin-12)
}

func drawOverlay(screen *ebiten.Image, snap *game.Snapshot, bg boardGeometry, width, height float32) {
	vector.DrawFilledRect(screen, bg.x, bg.y, width, height, dim, false)
	var msg string
	switch snap.Status {
	case game.StatusReady:
		msg = "Ready. Press N to start."
	case game.StatusPaused:
		msg = "Paused. Press P to resume."
	case game.StatusGameOver:
		msg = fmt.Sprintf("Game over: player %d, %s.\nPress N to play again.", snap.Loser+1, snap.Reason)
	}
	ebitenutil.DebugPrintAt(screen, msg, int(bg.x)+8, int(bg.y+height/2))
}

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/shape"
	"github.com/plus3/tetrodeck/shop"
)

const (
	originX = 2
	originY = 1
	// Each cell is two columns wide so blocks look square.
	cellWidth = 2
	hudX      = originX + board.Width*cellWidth + 4
)

var (
	styleText   = tcell.StyleDefault
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGhost  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBomb   = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	styleCursor = tcell.StyleDefault.Reverse(true)
)

func shapeStyle(id shape.ID) tcell.Style {
	c := id.Color()
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2])))
}

func drawText(scr tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		scr.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawCell(scr tcell.Screen, x, y int, mainc rune, style tcell.Style) {
	if y < 0 {
		return
	}
	sx, sy := originX+x*cellWidth, originY+y
	scr.SetContent(sx, sy, mainc, nil, style)
	scr.SetContent(sx+1, sy, mainc, nil, style)
}

// render draws the whole frame for snap.
func render(scr tcell.Screen, snap engine.Snapshot, ui uiState) {
	scr.Clear()
	switch snap.Mode {
	case engine.ModeMenu:
		drawText(scr, originX, originY, styleTitle, "TETRODECK")
		drawText(scr, originX, originY+2, styleText, "Enter to start, q to quit")
		drawText(scr, originX, originY+3, styleText, "arrows/hjkl move and rotate, space drops, c holds")
	case engine.ModeShop:
		renderShop(scr, snap, ui)
	case engine.ModePackOpening:
		drawText(scr, originX, originY, styleTitle, "PACK OPENED")
		for i, id := range snap.Pack {
			drawText(scr, originX, originY+2+i, shapeStyle(id), "  ")
			drawText(scr, originX+3, originY+2+i, styleText, id.Name())
		}
		drawText(scr, originX, originY+3+len(snap.Pack), styleText, "Enter to add to your deck")
	default:
		renderBoard(scr, snap)
		renderHUD(scr, snap)
		if snap.Mode == engine.ModeGameOver {
			drawText(scr, originX+2, originY+board.Height/2, styleBomb, " GAME OVER ")
			drawText(scr, originX+2, originY+board.Height/2+1, styleText, "r to restart")
		}
	}
	if ui.notice != "" {
		_, h := scr.Size()
		drawText(scr, originX, h-1, styleText, ui.notice)
	}
	scr.Show()
}

func renderBoard(scr tcell.Screen, snap engine.Snapshot) {
	left, right := originX-1, originX+board.Width*cellWidth
	for y := 0; y < board.Height; y++ {
		scr.SetContent(left, originY+y, '│', nil, styleBorder)
		scr.SetContent(right, originY+y, '│', nil, styleBorder)
	}
	for x := left; x <= right; x++ {
		scr.SetContent(x, originY+board.Height, '─', nil, styleBorder)
	}

	for y, row := range snap.Board {
		for x, c := range row {
			if id, ok := c.Shape(); ok {
				drawCell(scr, x, y, ' ', shapeStyle(id))
			}
		}
	}
	if snap.Ghost != nil {
		for _, p := range snap.Ghost.Cells() {
			drawCell(scr, p.X, p.Y, '░', styleGhost)
		}
	}
	if snap.Piece != nil {
		style, r := shapeStyle(snap.Piece.Shape), ' '
		if snap.Piece.Special {
			style, r = styleBomb, '*'
		}
		for _, p := range snap.Piece.Cells() {
			drawCell(scr, p.X, p.Y, r, style)
		}
	}
}

func renderHUD(scr tcell.Screen, snap engine.Snapshot) {
	r := snap.Round
	lines := []string{
		fmt.Sprintf("Round  %d", r.RoundNumber),
		fmt.Sprintf("Score  %d / %d", r.Score, r.RoundTarget),
		fmt.Sprintf("Level  %d", r.Level),
		fmt.Sprintf("Lines  %d", r.LinesCleared),
		fmt.Sprintf("Money  $%d", r.Money),
		"Next   " + snap.Next.Name(),
	}
	if snap.Upgrades.HoldEnabled {
		held := "-"
		if snap.Hold.Held {
			held = snap.Hold.Shape.Name()
		}
		lines = append(lines, "Hold   "+held)
	}
	for _, j := range snap.Jokers {
		lines = append(lines, "Joker  "+string(j))
	}
	for i, l := range lines {
		drawText(scr, hudX, originY+i, styleText, l)
	}
}

func renderShop(scr tcell.Screen, snap engine.Snapshot, ui uiState) {
	drawText(scr, originX, originY, styleTitle, fmt.Sprintf("SHOP  $%d", snap.Round.Money))
	for i, o := range shop.Catalog() {
		style := styleText
		if i == ui.shopCursor {
			style = styleCursor
		}
		price := fmt.Sprintf("$%d", o.Price)
		if shop.SnapshotOwned(snap, o) {
			price = "owned"
		}
		drawText(scr, originX, originY+2+i, style, fmt.Sprintf("%-22s %-6s %s", o.Name, price, o.Description))
	}
	drawText(scr, originX, originY+3+len(shop.Catalog()), styleText, "up/down select, Enter buy, n next round")
}

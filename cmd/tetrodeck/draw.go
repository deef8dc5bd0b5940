package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetrodeck/board"
	"github.com/plus3/tetrodeck/engine"
	"github.com/plus3/tetrodeck/shape"
	"github.com/plus3/tetrodeck/shop"
	"golang.org/x/image/font/basicfont"
)

const (
	boardOffsetX = 40
	boardOffsetY = 40
	lineHeight   = 18
)

var (
	background = color.RGBA{R: 18, G: 18, B: 28, A: 255}
	gridLine   = color.RGBA{R: 60, G: 60, B: 80, A: 255}
	ghostColor = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	bombColor  = color.RGBA{R: 255, G: 60, B: 40, A: 255}
	textColor  = color.White
	gold       = color.RGBA{R: 255, G: 215, B: 0, A: 255}
)

type viewState struct {
	cellSize   int
	shopCursor int
	notice     string
	flash      bool
}

func shapeRGBA(id shape.ID) color.RGBA {
	c := id.Color()
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

func drawSnapshot(screen *ebiten.Image, snap engine.Snapshot, v viewState) {
	screen.Fill(background)

	switch snap.Mode {
	case engine.ModeMenu:
		drawLines(screen, boardOffsetX, 80, gold, []string{
			"TETRODECK",
			"",
			"Enter to start",
			"Arrows move, Up rotates, Space drops, C holds",
		})
		return
	case engine.ModeShop:
		drawLines(screen, boardOffsetX, 60, textColor, shopLines(snap, v.shopCursor, v.notice))
		return
	case engine.ModePackOpening:
		drawLines(screen, boardOffsetX, 80, gold, packLines(snap.Pack))
		return
	}

	drawBoard(screen, snap, v)
	drawLines(screen, boardOffsetX+board.Width*v.cellSize+30, boardOffsetY+12, textColor, hudLines(snap))

	if snap.Mode == engine.ModeGameOver {
		drawLines(screen, boardOffsetX+10, boardOffsetY+board.Height*v.cellSize/2, bombColor, []string{
			"GAME OVER",
			v.notice,
			"R to restart",
		})
	}
}

func drawBoard(screen *ebiten.Image, snap engine.Snapshot, v viewState) {
	cs := float32(v.cellSize)
	ox, oy := float32(boardOffsetX), float32(boardOffsetY)
	w, h := float32(board.Width)*cs, float32(board.Height)*cs

	border := gridLine
	if v.flash {
		border = gold
	}
	vector.StrokeRect(screen, ox-2, oy-2, w+4, h+4, 2, border, false)

	cell := func(x, y int, c color.Color) {
		if y < 0 {
			return
		}
		vector.DrawFilledRect(screen, ox+float32(x)*cs, oy+float32(y)*cs, cs-1, cs-1, c, false)
	}

	for y, row := range snap.Board {
		for x, c := range row {
			if id, ok := c.Shape(); ok {
				cell(x, y, shapeRGBA(id))
			}
		}
	}
	if snap.Ghost != nil {
		for _, p := range snap.Ghost.Cells() {
			cell(p.X, p.Y, ghostColor)
		}
	}
	if snap.Piece != nil {
		c := shapeRGBA(snap.Piece.Shape)
		if snap.Piece.Special {
			c = bombColor
		}
		for _, p := range snap.Piece.Cells() {
			cell(p.X, p.Y, c)
		}
	}
}

func hudLines(snap engine.Snapshot) []string {
	r := snap.Round
	lines := []string{
		fmt.Sprintf("ROUND %d", r.RoundNumber),
		fmt.Sprintf("SCORE %d / %d", r.Score, r.RoundTarget),
		fmt.Sprintf("LEVEL %d", r.Level),
		fmt.Sprintf("LINES %d", r.LinesCleared),
		fmt.Sprintf("MONEY $%d", r.Money),
		"",
		"NEXT " + snap.Next.Name(),
	}
	if snap.Upgrades.HoldEnabled {
		held := "-"
		if snap.Hold.Held {
			held = snap.Hold.Shape.Name()
		}
		lines = append(lines, "HOLD "+held)
	}
	if snap.Upgrades.ScoreMultiplier != 1 {
		lines = append(lines, fmt.Sprintf("MULT x%.1f", snap.Upgrades.ScoreMultiplier))
	}
	if len(snap.Jokers) > 0 {
		lines = append(lines, "", "JOKERS")
		for _, j := range snap.Jokers {
			lines = append(lines, "  "+string(j))
		}
	}
	lines = append(lines, "", fmt.Sprintf("DECK %d cards", snap.DeckSize))
	for _, id := range shape.All() {
		lines = append(lines, fmt.Sprintf("  %c x%d", id.Letter(), snap.Deck[id]))
	}
	return lines
}

func shopLines(snap engine.Snapshot, cursor int, notice string) []string {
	lines := []string{
		fmt.Sprintf("SHOP   money $%d", snap.Round.Money),
		"",
	}
	for i, o := range shop.Catalog() {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		status := fmt.Sprintf("$%d", o.Price)
		if shop.SnapshotOwned(snap, o) {
			status = "OWNED"
		}
		lines = append(lines, fmt.Sprintf("%s%-22s %-6s %s", marker, o.Name, status, o.Description))
	}
	lines = append(lines, "", "Up/Down select, Enter buy, N next round")
	if notice != "" {
		lines = append(lines, "", notice)
	}
	return lines
}


func packLines(pack []shape.ID) []string {
	names := make([]string, len(pack))
	for i, id := range pack {
		names[i] = id.Name()
	}
	return []string{
		"PACK OPENED",
		"",
		strings.Join(names, ", "),
		"",
		"Enter to add to your deck",
	}
}

func drawLines(screen *ebiten.Image, x, y int, c color.Color, lines []string) {
	for i, l := range lines {
		text.Draw(screen, l, basicfont.Face7x13, x, y+i*lineHeight, c)
	}
}

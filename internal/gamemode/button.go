package gamemode

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	ColButton     = color.RGBA{0x50, 0x50, 0x60, 0xff}
	ColButtonEdge = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Button is a tappable rectangle with a centred label.
type Button struct {
	Label      string
	X, Y, W, H float64
}

func (b Button) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx < b.X+b.W && fy >= b.Y && fy < b.Y+b.H
}

func (b Button) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), ColButton, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, ColButtonEdge, false)

	tx := b.X + (b.W-float64(len(b.Label)*glyphW))/2
	ty := b.Y + (b.H-glyphH)/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(ty))
}

package gamemode

import (
	"image/color"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DebugPrint glyph cell.
const (
	glyphW = 6
	glyphH = 16
)

// Banner is a line of text shown across the playfield for a while.
type Banner struct {
	Text   string
	Start  time.Duration
	Length time.Duration

	// Flashes blinks the banner that many times over Length; 0 keeps it steady.
	Flashes int
	Scale   float64
	Color   color.Color
}

func (b Banner) Visible(now time.Duration) bool {
	el := now - b.Start
	if el < 0 || el >= b.Length {
		return false
	}
	if b.Flashes <= 0 {
		return true
	}
	period := b.Length / time.Duration(b.Flashes)
	if period <= 0 {
		return true
	}
	return el%period < period/2
}

// Banners stacks active banners top to bottom. Showing a banner with the same text as an
// active one restarts it.
type Banners struct {
	active []Banner
	glyphs map[string]*ebiten.Image
}

func (bs *Banners) Show(b Banner) {
	if b.Scale <= 0 {
		b.Scale = 3
	}
	bs.active = slices.DeleteFunc(bs.active, func(a Banner) bool { return a.Text == b.Text })
	bs.active = append(bs.active, b)
}

// Update drops banners that have run their course.
func (bs *Banners) Update(now time.Duration) {
	bs.active = slices.DeleteFunc(bs.active, func(b Banner) bool { return now-b.Start >= b.Length })
}

func (bs *Banners) Active() []Banner { return bs.active }

func (bs *Banners) Clear() { bs.active = bs.active[:0] }

// Draw centres each visible banner horizontally, starting at y.
func (bs *Banners) Draw(screen *ebiten.Image, now time.Duration, y float64) {
	width := float64(screen.Bounds().Dx())
	for _, b := range bs.active {
		if !b.Visible(now) {
			continue
		}
		img := bs.glyph(b.Text)
		w := float64(img.Bounds().Dx()) * b.Scale

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(b.Scale, b.Scale)
		op.GeoM.Translate((width-w)/2, y)
		if b.Color != nil {
			op.ColorScale.ScaleWithColor(b.Color)
		}
		screen.DrawImage(img, op)
		y += glyphH * b.Scale
	}
}

// glyph renders text once at 1x and keeps it for scaling.
func (bs *Banners) glyph(text string) *ebiten.Image {
	if img, ok := bs.glyphs[text]; ok {
		return img
	}
	if bs.glyphs == nil {
		bs.glyphs = make(map[string]*ebiten.Image)
	}
	img := ebiten.NewImage(max(len(text), 1)*glyphW, glyphH)
	ebitenutil.DebugPrint(img, text)
	bs.glyphs[text] = img
	return img
}

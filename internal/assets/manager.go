// Package assets builds the ebiten frontend's sprites and sound clips. Everything is drawn
// or synthesized at preload time; nothing is read from disk.
package assets

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nexusstrike/internal/entity"
	"nexusstrike/internal/sfx"
)

var (
	ColShip     = color.RGBA{0x4e, 0xcd, 0xc4, 0xff}
	ColCockpit  = color.RGBA{0xf7, 0xff, 0xf7, 0xff}
	ColBullet   = color.RGBA{0xff, 0xe6, 0x6d, 0xff}
	ColNormal   = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	ColFast     = color.RGBA{0xff, 0xa6, 0x2b, 0xff}
	ColTank     = color.RGBA{0x8e, 0x44, 0xad, 0xff}
	ColBoss     = color.RGBA{0xc0, 0x39, 0x2b, 0xff}
	ColRapid    = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	ColShield   = color.RGBA{0x34, 0x98, 0xdb, 0xff}
	ColMulti    = color.RGBA{0x2e, 0xcc, 0x71, 0xff}
	ColOutline  = color.RGBA{0x10, 0x10, 0x10, 0xff}
	ColHighlite = color.RGBA{0xff, 0xff, 0xff, 0x80}
)

// Pack is everything the frontend preloads.
type Pack struct {
	Ship     *ebiten.Image
	Bullet   *ebiten.Image
	enemies  [entity.BossKind + 1]*ebiten.Image
	powerUps [len(entity.PowerUpKinds)]*ebiten.Image

	Sounds map[sfx.Sound][]byte
}

// Load draws every sprite and renders every clip at sampleRate. It may run off the
// game goroutine.
func Load(sampleRate int) *Pack {
	p := &Pack{
		Ship:   drawShip(entity.PlayerSize),
		Bullet: drawBlock(entity.BulletSize, ColBullet),
		Sounds: make(map[sfx.Sound][]byte, len(sfx.All)),
	}
	p.enemies[entity.Normal] = drawEnemy(entity.Normal.Size(), ColNormal, 1)
	p.enemies[entity.Fast] = drawEnemy(entity.Fast.Size(), ColFast, 1)
	p.enemies[entity.Tank] = drawEnemy(entity.Tank.Size(), ColTank, 3)
	p.enemies[entity.BossKind] = drawEnemy(entity.BossKind.Size(), ColBoss, 4)

	for _, k := range entity.PowerUpKinds {
		p.powerUps[k] = drawPowerUp(entity.PowerUpSize, powerUpColor(k))
	}
	for _, s := range sfx.All {
		p.Sounds[s] = Render(s, sampleRate)
	}
	return p
}

func (p *Pack) Enemy(k entity.EnemyKind) *ebiten.Image {
	if k < 0 || int(k) >= len(p.enemies) {
		return p.enemies[entity.Normal]
	}
	return p.enemies[k]
}

func (p *Pack) PowerUp(k entity.PowerUpKind) *ebiten.Image {
	if k < 0 || int(k) >= len(p.powerUps) {
		return p.powerUps[entity.RapidFire]
	}
	return p.powerUps[k]
}

func powerUpColor(k entity.PowerUpKind) color.Color {
	switch k {
	case entity.Shield:
		return ColShield
	case entity.MultiShot:
		return ColMulti
	}
	return ColRapid
}

func newImage(sz entity.Size) (*ebiten.Image, float32, float32) {
	w, h := max(int(sz.W), 1), max(int(sz.H), 1)
	return ebiten.NewImage(w, h), float32(w), float32(h)
}

func drawBlock(sz entity.Size, clr color.Color) *ebiten.Image {
	img, _, _ := newImage(sz)
	img.Fill(clr)
	return img
}

func drawShip(sz entity.Size) *ebiten.Image {
	img, w, h := newImage(sz)
	cx := w / 2

	// Hull and wings
	vector.DrawFilledRect(img, cx-w/6, 0, w/3, h, ColShip, true)
	vector.DrawFilledRect(img, 0, h*0.55, w, h*0.25, ColShip, true)
	vector.StrokeLine(img, 0, h*0.8, cx, h*0.2, 2, ColShip, true)
	vector.StrokeLine(img, w, h*0.8, cx, h*0.2, 2, ColShip, true)

	vector.DrawFilledCircle(img, cx, h*0.35, w/8, ColCockpit, true)
	return img
}

// drawEnemy draws a square hull with one eye per point of armour.
func drawEnemy(sz entity.Size, clr color.Color, eyes int) *ebiten.Image {
	img, w, h := newImage(sz)
	vector.DrawFilledRect(img, 0, 0, w, h, clr, false)
	vector.StrokeRect(img, 1, 1, w-2, h-2, 2, ColOutline, false)

	r := min(w, h) / float32(4*eyes+2)
	gap := w / float32(eyes+1)
	for i := 1; i <= eyes; i++ {
		vector.DrawFilledCircle(img, gap*float32(i), h*0.4, r, ColOutline, true)
	}
	return img
}

func drawPowerUp(sz entity.Size, clr color.Color) *ebiten.Image {
	img, w, h := newImage(sz)
	vector.DrawFilledCircle(img, w/2, h/2, w/2, clr, true)
	vector.DrawFilledCircle(img, w*0.35, h*0.35, w/6, ColHighlite, true)
	return img
}

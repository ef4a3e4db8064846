package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"nexusstrike/internal/assets"
	"nexusstrike/internal/combat"
	"nexusstrike/internal/entity"
	"nexusstrike/internal/session"
)

// --- Colors ---
var (
	ColBg      = color.RGBA{0x0b, 0x0d, 0x1a, 0xff}
	ColShade   = color.RGBA{0x00, 0x00, 0x00, 0xa0}
	ColHeart   = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	ColEmpty   = color.RGBA{0x40, 0x40, 0x40, 0xff}
	ColBarBack = color.RGBA{0x30, 0x30, 0x30, 0xff}
	ColGreen   = color.RGBA{0x2e, 0xcc, 0x71, 0xff}
	ColYellow  = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
	ColRed     = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
)

const bannerY = 300

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)

	if g.Screen == ScreenMenu {
		g.drawMenu(screen)
		return
	}
	pack := g.pack.Load()
	if pack == nil || g.snap.State == session.Loading {
		ebitenutil.DebugPrintAt(screen, "LOADING...", int(g.cfg.Playfield.Width)/2-30, int(g.cfg.Playfield.Height)/2)
		return
	}

	g.world.Clear()
	g.drawWorld(g.world, pack)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(g.fx.Shake())
	screen.DrawImage(g.world, op)
	g.fx.DrawHitTint(screen)

	g.drawHUD(screen)
	g.fx.banners.Draw(screen, g.fx.now, bannerY)

	switch g.snap.State {
	case session.Paused:
		g.drawPaused(screen)
	case session.GameOver:
		g.drawGameOver(screen)
	}
}

func (g *Game) drawWorld(dst *ebiten.Image, pack *assets.Pack) {
	s := &g.snap
	for _, p := range s.PowerUps {
		drawSprite(dst, pack.PowerUp(p.Kind), p.Pos, false)
	}
	for _, e := range s.Enemies {
		drawSprite(dst, pack.Enemy(e.Kind), e.Pos, g.fx.Flashing(uint64(e.ID)))
	}
	for _, b := range s.Bullets {
		drawSprite(dst, pack.Bullet, b.Pos, false)
	}
	if s.Player.Alive {
		drawSprite(dst, pack.Ship, s.Player.Pos, false)
		if s.Player.Shields > 0 {
			r := float32(entity.PlayerSize.W)*0.8 + float32(s.Player.Shields)
			vector.StrokeCircle(dst, float32(s.Player.Pos.X), float32(s.Player.Pos.Y), r, 2, assets.ColShield, true)
		}
	}
	g.fx.DrawBursts(dst)
}

func drawSprite(dst, img *ebiten.Image, pos entity.Vec, flash bool) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(pos.X-float64(b.Dx())/2, pos.Y-float64(b.Dy())/2)
	if flash {
		op.ColorScale.ScaleAlpha(0.35)
	}
	dst.DrawImage(img, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := &g.snap
	msg := fmt.Sprintf("SCORE %d\nLEVEL %d\nDifficulty: %d%%", s.Score, s.Level, int(s.Difficulty*100))
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)

	// Hearts
	for i := range s.Player.MaxHealth {
		clr := ColEmpty
		if i < s.Player.Health {
			clr = ColHeart
		}
		vector.DrawFilledRect(screen, float32(10+i*18), 62, 14, 14, clr, false)
	}

	var power string
	if s.Player.Shields > 0 {
		power += fmt.Sprintf("SHIELD x%d ", s.Player.Shields)
	}
	if s.Player.MultiShot > 0 {
		power += fmt.Sprintf("MULTI x%d ", s.Player.MultiShot)
	}
	if s.RapidFire {
		power += "RAPID"
	}
	ebitenutil.DebugPrintAt(screen, power, 10, 82)

	if s.Boss != nil {
		g.drawBossBar(screen, s.Boss)
	}
	g.pauseBtn.Draw(screen)
}

func (g *Game) drawBossBar(screen *ebiten.Image, boss *session.BossView) {
	const w, h = 200, 12
	x := float32(g.cfg.Playfield.Width-w) / 2
	y := float32(110)

	clr := ColGreen
	switch boss.Band {
	case combat.Yellow:
		clr = ColYellow
	case combat.Red:
		clr = ColRed
	}
	vector.DrawFilledRect(screen, x, y, w, h, ColBarBack, false)
	vector.DrawFilledRect(screen, x, y, w*float32(boss.Fraction), h, clr, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BOSS %d%%", int(boss.Fraction*100)), int(x), int(y)+h+2)
}

func (g *Game) shade(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.cfg.Playfield.Width), float32(g.cfg.Playfield.Height), ColShade, false)
}

func (g *Game) centerText(screen *ebiten.Image, text string, y int) {
	x := (int(g.cfg.Playfield.Width) - len(text)*6) / 2
	ebitenutil.DebugPrintAt(screen, text, x, y)
}

func (g *Game) drawPaused(screen *ebiten.Image) {
	g.shade(screen)
	g.centerText(screen, "PAUSED", int(g.topBtn.Y)-60)
	g.topBtn.Draw(screen)
	g.menuBtn.Draw(screen)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	g.shade(screen)
	top := int(g.topBtn.Y) - 100
	g.centerText(screen, "GAME OVER", top)
	g.centerText(screen, fmt.Sprintf("SCORE %d", g.snap.Score), top+24)
	g.centerText(screen, fmt.Sprintf("BEST %d", max(g.snap.HighScore, g.best)), top+44)
	g.centerText(screen, "Tap to restart", top+84)
	g.menuBtn.Draw(screen)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	h := int(g.cfg.Playfield.Height)
	g.centerText(screen, "NEXUS STRIKE", h/3)
	g.centerText(screen, fmt.Sprintf("High Score: %d", g.best), h/3+30)
	g.startBtn.Draw(screen)
	if g.pack.Load() == nil {
		g.centerText(screen, "loading assets...", h-40)
	}
}

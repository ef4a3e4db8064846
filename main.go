package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"nexusstrike/internal/config"
	"nexusstrike/internal/store"
)

const WindowTitle = "Nexus Strike"

func main() {
	cfgPath := flag.String("config", "", "tuning file (YAML), defaults to $"+config.EnvPath)
	scores := flag.String("scores", store.DefaultFile, "high score file")
	scale := flag.Float64("scale", 1, "window scale")
	flag.Parse()

	cfg, err := config.Load(config.PathFromEnv(*cfgPath))
	if err != nil {
		log.Fatal(err)
	}

	// 1. Window Setup (portrait phone playfield)
	ebiten.SetWindowSize(int(cfg.Playfield.Width**scale), int(cfg.Playfield.Height**scale))
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 2. Initialize Game
	game := NewGame(cfg, store.NewFile(*scores))

	// 3. Run Loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

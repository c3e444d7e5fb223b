package main

import (
	"log"

	"ironmaze/internal/config"
	"ironmaze/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.MustLoadConfig("config.yaml")

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

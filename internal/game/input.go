package game

import (
	"ironmaze/internal/raycast"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler polls the keyboard once per frame and exposes the result
// as a movement intent for the engine.
type InputHandler struct {
	game     *Game
	movement raycast.Input
}

// NewInputHandler creates an input handler bound to the game.
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// Poll reads the current keyboard state. It returns ebiten.Termination
// when the player quits with Escape.
func (ih *InputHandler) Poll() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ih.movement = raycast.Input{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Back:        ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight),
	}

	// Overlay and renderer toggles, edge-triggered.
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ih.game.showMinimap = !ih.game.showMinimap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		ih.game.showDebug = !ih.game.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ih.game.parallel = !ih.game.parallel
	}
	return nil
}

// Movement returns the last polled movement intent.
func (ih *InputHandler) Movement() raycast.Input {
	return ih.movement
}

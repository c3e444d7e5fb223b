package game

import (
	"fmt"
	"time"

	"ironmaze/internal/config"
	"ironmaze/internal/raycast"
	"ironmaze/internal/threading"
	"ironmaze/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// Fixed simulation step. Rendering runs at display rate; physics always
// advances in tickDuration slices so movement speed is frame-rate
// independent.
const (
	tickDuration = 1.0 / 60.0
	maxFrameTime = 0.25
)

// Game is the ebiten frontend: it owns the loaded world, the raycasting
// engine, the per-session state and the renderer, and drives them from
// ebiten's update/draw callbacks.
type Game struct {
	cfg      *config.Config
	world    *world.Map
	engine   *raycast.Engine
	state    *raycast.State
	pool     *threading.WorkerPool
	renderer *Renderer
	input    *InputHandler

	lastUpdate  time.Time
	accumulator float64

	showDebug   bool
	showMinimap bool
	parallel    bool
}

// NewGame loads the map named by the config and assembles the engine,
// worker pool and renderer.
func NewGame(cfg *config.Config) (*Game, error) {
	m, spawn, err := world.LoadMap(cfg.Maps.TilesFile, cfg.Maps.InfoFile, cfg.Maps.SpritesFile)
	if err != nil {
		return nil, fmt.Errorf("loading map: %w", err)
	}

	width := cfg.GetScreenWidth()
	engine := raycast.NewEngine(m, cfg, width)

	pool := threading.NewWorkerPool(0)
	pool.Start()
	engine.SetWorkerPool(pool)

	g := &Game{
		cfg:      cfg,
		world:    m,
		engine:   engine,
		state:    raycast.NewState(width, spawn, cfg.GetCameraFOV()),
		pool:     pool,
		renderer: NewRenderer(cfg),
		parallel: true,
	}
	g.input = NewInputHandler(g)
	return g, nil
}

// Update runs the fixed-step simulation. Real elapsed time is clamped so
// a debugger pause or window drag cannot teleport the player through
// geometry when the loop catches up.
func (g *Game) Update() error {
	if err := g.input.Poll(); err != nil {
		g.pool.Stop()
		return err
	}

	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
	}
	frame := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	if frame > maxFrameTime {
		frame = maxFrameTime
	}

	if !g.state.GoalReached {
		g.accumulator += frame
		for g.accumulator >= tickDuration {
			g.engine.Update(g.state, g.input.Movement(), tickDuration)
			g.accumulator -= tickDuration
		}
	}

	if g.parallel {
		g.engine.CastParallel(g.state)
	} else {
		g.engine.Cast(g.state)
	}
	return nil
}

// Draw renders the current visibility solution plus overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.state)
	if g.showMinimap {
		g.renderer.DrawMinimap(screen, g.world, &g.state.Player)
	}
	if g.showDebug {
		g.renderer.DrawDebug(screen, g.state)
	}
	if g.state.GoalReached {
		g.renderer.DrawEndScreen(screen)
	}
}

// Layout reports the fixed internal resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

package raycast

import (
	"ironmaze/internal/config"
	"ironmaze/internal/threading"
	"ironmaze/internal/world"
)

// Engine advances the player each tick and computes the per-column
// visibility solution. It owns only reusable scratch (the sprite
// deduplication grid and per-column candidate lists); all per-session
// state lives in State.
type Engine struct {
	world  *world.Map
	width  int
	pool   *threading.WorkerPool

	moveSpeed float64
	rotSpeed  float64
	margin    float64

	// seen marks sprite cells already collected this frame. Sized to the
	// active map area and cleared (not reallocated) at the top of every
	// cast, so casting never heap-allocates.
	seen       []bool
	colSprites [][]spriteCell
}

type spriteCell struct {
	x, y int
}

// NewEngine builds an engine for the given map and screen width.
func NewEngine(m *world.Map, cfg *config.Config, width int) *Engine {
	e := &Engine{
		world:      m,
		width:      width,
		moveSpeed:  cfg.GetMoveSpeed(),
		rotSpeed:   cfg.GetRotSpeed(),
		margin:     cfg.GetCollisionMargin(),
		seen:       make([]bool, m.Width*m.Height),
		colSprites: make([][]spriteCell, width),
	}
	for i := range e.colSprites {
		e.colSprites[i] = make([]spriteCell, 0, 8)
	}
	return e
}

// SetWorkerPool attaches a worker pool for CastParallel. Without one,
// CastParallel falls back to the sequential path.
func (e *Engine) SetWorkerPool(pool *threading.WorkerPool) {
	e.pool = pool
}

// Update advances the player by dt seconds of the given input and checks
// the end-of-level trigger. dt must be positive and pre-clamped by the
// caller's frame loop.
func (e *Engine) Update(st *State, in Input, dt float64) {
	p := &st.Player

	// Rotation: one atomic transform of dir and plane keeps the FOV
	// constant. Left is a negative angle, right positive.
	rot := 0.0
	if in.TurnLeft {
		rot = -e.rotSpeed * dt
	}
	if in.TurnRight {
		rot = e.rotSpeed * dt
	}
	if rot != 0 {
		p.Rotate(rot)
	}

	// Translation: forward/back along dir, strafe along the clockwise
	// perpendicular of dir.
	var dx, dy float64
	step := e.moveSpeed * dt
	if in.Forward {
		dx += p.DirX * step
		dy += p.DirY * step
	}
	if in.Back {
		dx -= p.DirX * step
		dy -= p.DirY * step
	}
	if in.StrafeRight {
		dx += -p.DirY * step
		dy += p.DirX * step
	}
	if in.StrafeLeft {
		dx -= -p.DirY * step
		dy -= p.DirX * step
	}

	// Axis-independent collision with a margin in the direction of
	// travel. X commits first and the Y probe uses the updated X, which
	// gives wall sliding and prevents cutting through diagonal corners.
	if !e.solidAt(p.X+dx+travelMargin(dx, e.margin), p.Y) {
		p.X += dx
	}
	if !e.solidAt(p.X, p.Y+dy+travelMargin(dy, e.margin)) {
		p.Y += dy
	}

	// End-of-level trigger: the player's cell must carry the trigger
	// marker and the player must be within the collision margin of the
	// exact cell center, so clipping a corner of the cell does not end
	// the session.
	cx, cy := int(p.X), int(p.Y)
	if e.world.InfoAt(cx, cy) == world.InfoTriggerEnd {
		ex := p.X - (float64(cx) + 0.5)
		ey := p.Y - (float64(cy) + 0.5)
		if ex*ex+ey*ey <= e.margin*e.margin {
			st.GoalReached = true
		}
	}
}

// solidAt reports whether the continuous position lies in a solid cell.
func (e *Engine) solidAt(x, y float64) bool {
	if x < 0 || y < 0 {
		return true
	}
	return e.world.Solid(int(x), int(y))
}

func travelMargin(d, margin float64) float64 {
	if d > 0 {
		return margin
	}
	return -margin
}

package raycast

import "ironmaze/internal/world"

// MaxVisibleSprites bounds the per-frame visible sprite collection.
const MaxVisibleSprites = 64

// Side identifies which grid axis a ray crossed last before hitting.
type Side int

const (
	// SideX means the ray crossed an X boundary (a vertical wall face).
	SideX Side = iota
	// SideY means the ray crossed a Y boundary (a horizontal wall face).
	SideY
)

// Input is one tick's worth of discrete movement intents, produced by the
// frontend's input poller.
type Input struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
}

// Hit is the per-column ray result the renderer consumes.
type Hit struct {
	Dist  float64 // perpendicular distance to the obstruction
	WallX float64 // fractional hit position along the wall face [0,1)
	Side  Side    // which axis was struck (y-side hits render darker)
	Tex   uint16  // texture index of the obstruction
}

// VisibleSprite is one sprite instance collected during casting: its
// cell-center world position, camera-space perpendicular distance, and
// texture index.
type VisibleSprite struct {
	X, Y float64
	Dist float64
	Tex  uint16
}

// State is the per-session mutable game state, owned by the driver and
// passed to the engine each tick. Hits, Depth and Visible are fully
// overwritten by every Cast call.
type State struct {
	Player      Player
	Hits        []Hit
	Depth       []float64
	Visible     []VisibleSprite
	GoalReached bool
}

// NewState allocates the per-column buffers for the given screen width
// and places the player at the spawn.
func NewState(width int, spawn world.Spawn, fov float64) *State {
	return &State{
		Player:  NewPlayer(spawn, fov),
		Hits:    make([]Hit, width),
		Depth:   make([]float64, width),
		Visible: make([]VisibleSprite, 0, MaxVisibleSprites),
	}
}

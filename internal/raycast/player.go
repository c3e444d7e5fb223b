package raycast

import (
	"math"

	"ironmaze/internal/world"
)

// Player is the camera model: a continuous map-unit position, a unit
// facing vector, and the camera plane perpendicular to it. The plane
// length encodes the horizontal field of view (tan(fov/2)), so the two
// vectors must always be rotated together.
type Player struct {
	X, Y           float64
	DirX, DirY     float64
	PlaneX, PlaneY float64
}

// NewPlayer builds a player at the spawn with the given horizontal field
// of view in radians. The camera plane is the facing vector rotated 90°
// clockwise and scaled to tan(fov/2).
func NewPlayer(spawn world.Spawn, fov float64) Player {
	planeLen := math.Tan(fov / 2)
	return Player{
		X:      spawn.X,
		Y:      spawn.Y,
		DirX:   spawn.DirX,
		DirY:   spawn.DirY,
		PlaneX: -spawn.DirY * planeLen,
		PlaneY: spawn.DirX * planeLen,
	}
}

// Rotate turns the camera by the given angle in radians, applying one
// rotation matrix to both the direction and the plane so the field of
// view stays constant. Positive angles turn clockwise (rightwards on
// screen, since Y grows south).
func (p *Player) Rotate(angle float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	dx := p.DirX
	p.DirX = p.DirX*c - p.DirY*s
	p.DirY = dx*s + p.DirY*c
	px := p.PlaneX
	p.PlaneX = p.PlaneX*c - p.PlaneY*s
	p.PlaneY = px*s + p.PlaneY*c
}

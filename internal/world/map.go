package world

// Map dimension limits. The planes are statically sized to the maximum so
// a loaded map never allocates; the active area is Width×Height.
const (
	MaxWidth  = 64
	MaxHeight = 64
)

// Info plane codes.
const (
	InfoNone uint16 = iota
	InfoSpawnN
	InfoSpawnE
	InfoSpawnS
	InfoSpawnW
	InfoTriggerEnd
)

// Tile plane: 0 = walkable floor, >0 = wall with texture index code-1.
const TileFloor uint16 = 0

// SpriteEmpty marks a sprite-plane cell with no sprite.
const SpriteEmpty uint16 = 0

// Map holds the three parallel grid planes of a loaded level. All planes
// are row-major and logically immutable once loaded.
type Map struct {
	Tiles   [MaxHeight][MaxWidth]uint16
	Info    [MaxHeight][MaxWidth]uint16
	Sprites [MaxHeight][MaxWidth]uint16
	Width   int
	Height  int
}

// Spawn is the player start derived from the info plane: cell-center
// position and a unit facing vector.
type Spawn struct {
	X, Y       float64
	DirX, DirY float64
}

// InBounds reports whether the cell coordinate lies inside the active area.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Solid reports whether the cell blocks movement and rays. Everything
// outside the active area is solid.
func (m *Map) Solid(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Tiles[y][x] > TileFloor
}

// TileAt returns the tile code at the cell, 0 outside the active area.
func (m *Map) TileAt(x, y int) uint16 {
	if !m.InBounds(x, y) {
		return 0
	}
	return m.Tiles[y][x]
}

// InfoAt returns the info code at the cell, InfoNone outside the active area.
func (m *Map) InfoAt(x, y int) uint16 {
	if !m.InBounds(x, y) {
		return InfoNone
	}
	return m.Info[y][x]
}

// SpriteAt returns the sprite code at the cell, SpriteEmpty outside the
// active area.
func (m *Map) SpriteAt(x, y int) uint16 {
	if !m.InBounds(x, y) {
		return SpriteEmpty
	}
	return m.Sprites[y][x]
}

// facing maps a spawn info code to its unit direction vector. Y grows
// southwards, so north is (0,-1).
func facing(code uint16) (dx, dy float64) {
	switch code {
	case InfoSpawnN:
		return 0, -1
	case InfoSpawnE:
		return 1, 0
	case InfoSpawnS:
		return 0, 1
	default: // InfoSpawnW
		return -1, 0
	}
}

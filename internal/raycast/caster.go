package raycast

import (
	"math"
	"sort"

	"ironmaze/internal/mathutil"
	"ironmaze/internal/world"
)

// minWallDist is the floor applied to perpendicular wall distances so the
// renderer's projection height never divides by zero at point-blank range.
const minWallDist = 0.001

// Cast computes the full visibility solution for the current player pose:
// one wall hit per screen column, the matching depth buffer, and the
// deduplicated set of visible sprites sorted back to front. The call is
// idempotent, casting twice from the same pose produces identical output.
func (e *Engine) Cast(st *State) {
	e.beginCast(st)
	for x := 0; x < e.width; x++ {
		e.castColumn(st, x)
	}
	e.mergeSprites(st, 0, e.width)
	SortSprites(st.Visible)
}

// CastParallel is Cast with the per-column work spread over the attached
// worker pool. Columns are independent; sprite candidates are merged in
// column order afterwards, so the output is identical to Cast's.
func (e *Engine) CastParallel(st *State) {
	if e.pool == nil {
		e.Cast(st)
		return
	}
	e.beginCast(st)

	batch := mathutil.IntClamp(e.width/(e.pool.Workers()*4), 4, 32)
	for start := 0; start < e.width; start += batch {
		end := mathutil.IntMin(start+batch, e.width)
		s, en := start, end
		e.pool.Submit(func() {
			for x := s; x < en; x++ {
				e.castColumn(st, x)
			}
		})
	}
	e.pool.Wait()

	e.mergeSprites(st, 0, e.width)
	SortSprites(st.Visible)
}

// beginCast resets the per-frame scratch and collects the sprite in the
// player's own cell, which no column sweep would otherwise visit.
func (e *Engine) beginCast(st *State) {
	for i := range e.seen {
		e.seen[i] = false
	}
	for i := range e.colSprites {
		e.colSprites[i] = e.colSprites[i][:0]
	}
	st.Visible = st.Visible[:0]

	p := &st.Player
	cx, cy := int(p.X), int(p.Y)
	if e.world.SpriteAt(cx, cy) != world.SpriteEmpty {
		e.collectSprite(st, cx, cy)
	}
}

// castColumn runs the DDA for one screen column, filling st.Hits[x] and
// st.Depth[x] and recording every sprite cell the ray swept into the
// column's private candidate list.
func (e *Engine) castColumn(st *State, x int) {
	p := &st.Player

	// Map the column onto the camera plane: -1 at the left edge, +1 at
	// the right.
	camX := 2*float64(x)/float64(e.width) - 1
	rayDX := p.DirX + p.PlaneX*camX
	rayDY := p.DirY + p.PlaneY*camX

	mapX, mapY := int(p.X), int(p.Y)

	// Distance the ray travels between successive grid lines per axis. A
	// zero component never wins the side-distance race, the huge sentinel
	// keeps it out without branching in the loop.
	deltaDX := 1e30
	if rayDX != 0 {
		deltaDX = math.Abs(1 / rayDX)
	}
	deltaDY := 1e30
	if rayDY != 0 {
		deltaDY = math.Abs(1 / rayDY)
	}

	var stepX, stepY int
	var sideDX, sideDY float64
	if rayDX < 0 {
		stepX = -1
		sideDX = (p.X - float64(mapX)) * deltaDX
	} else {
		stepX = 1
		sideDX = (float64(mapX) + 1 - p.X) * deltaDX
	}
	if rayDY < 0 {
		stepY = -1
		sideDY = (p.Y - float64(mapY)) * deltaDY
	} else {
		stepY = 1
		sideDY = (float64(mapY) + 1 - p.Y) * deltaDY
	}

	// March cell to cell until a solid tile stops the ray. Solid covers
	// out-of-bounds cells too, so the walk always terminates.
	side := SideX
	for !e.world.Solid(mapX, mapY) {
		if e.world.Sprites[mapY][mapX] != world.SpriteEmpty {
			e.colSprites[x] = append(e.colSprites[x], spriteCell{mapX, mapY})
		}
		if sideDX < sideDY {
			sideDX += deltaDX
			mapX += stepX
			side = SideX
		} else {
			sideDY += deltaDY
			mapY += stepY
			side = SideY
		}
	}

	// Perpendicular distance to the wall plane, not euclidean, so walls
	// render without fisheye curvature.
	var dist, wallX float64
	if side == SideX {
		dist = (float64(mapX) - p.X + float64(1-stepX)/2) / rayDX
		wallX = p.Y + dist*rayDY
	} else {
		dist = (float64(mapY) - p.Y + float64(1-stepY)/2) / rayDY
		wallX = p.X + dist*rayDX
	}
	if dist < minWallDist {
		dist = minWallDist
	}
	wallX -= math.Floor(wallX)

	tile := e.world.TileAt(mapX, mapY)
	var tex uint16
	if tile > world.TileFloor {
		tex = tile - 1
	}

	st.Hits[x] = Hit{Dist: dist, WallX: wallX, Side: side, Tex: tex}
	st.Depth[x] = dist
}

// mergeSprites folds the per-column candidate lists into the visible set
// in column order, deduplicating through the seen grid. Running it after
// all columns finish makes the parallel path's output match the
// sequential one's exactly.
func (e *Engine) mergeSprites(st *State, from, to int) {
	for x := from; x < to; x++ {
		for _, c := range e.colSprites[x] {
			e.collectSprite(st, c.x, c.y)
		}
	}
}

// collectSprite admits the sprite cell once per frame. Cells behind the
// camera plane or beyond the capacity limit are still marked seen, so a
// later ray cannot re-admit them.
func (e *Engine) collectSprite(st *State, cx, cy int) {
	idx := cy*e.world.Width + cx
	if e.seen[idx] {
		return
	}
	e.seen[idx] = true

	p := &st.Player
	sx := float64(cx) + 0.5 - p.X
	sy := float64(cy) + 0.5 - p.Y

	// Camera-space depth via the inverse camera matrix. Only sprites in
	// front of the plane are drawable.
	invDet := 1 / (p.PlaneX*p.DirY - p.DirX*p.PlaneY)
	depth := invDet * (-p.PlaneY*sx + p.PlaneX*sy)
	if depth <= 0 || len(st.Visible) >= MaxVisibleSprites {
		return
	}

	st.Visible = append(st.Visible, VisibleSprite{
		X:    float64(cx) + 0.5,
		Y:    float64(cy) + 0.5,
		Dist: depth,
		Tex:  e.world.Sprites[cy][cx] - 1,
	})
}

// SortSprites orders the visible set back to front so the renderer can
// paint nearer sprites over farther ones. The sort is stable, sprites at
// equal depth keep their collection order.
func SortSprites(sprites []VisibleSprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Dist > sprites[j].Dist
	})
}

package game

import (
	"fmt"
	"image/color"
	"math"

	"ironmaze/internal/config"
	"ironmaze/internal/graphics"
	"ironmaze/internal/raycast"
	"ironmaze/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Renderer turns a visibility solution into pixels. The 3D view is drawn
// into a CPU-side RGBA framebuffer and uploaded with WritePixels once per
// frame; overlays draw on top with ebiten primitives.
type Renderer struct {
	width, height int
	frame         []byte

	walls   *graphics.Atlas
	sprites *graphics.Atlas

	ceiling color.RGBA
	floor   color.RGBA
}

// NewRenderer allocates the framebuffer and loads both texture atlases,
// falling back to procedural textures when the PNGs are absent.
func NewRenderer(cfg *config.Config) *Renderer {
	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()
	return &Renderer{
		width:   w,
		height:  h,
		frame:   make([]byte, w*h*4),
		walls:   graphics.LoadAtlas(cfg.Graphics.WallAtlas, graphics.ProceduralWalls),
		sprites: graphics.LoadAtlas(cfg.Graphics.SpriteAtlas, graphics.ProceduralSprites),
		ceiling: rgbFromConfig(cfg.Graphics.Colors.Ceiling),
		floor:   rgbFromConfig(cfg.Graphics.Colors.Floor),
	}
}

func rgbFromConfig(c [3]int) color.RGBA {
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
}

// Draw paints the full 3D view: flat ceiling and floor halves, textured
// wall strips, then sprites back to front clipped against the depth
// buffer.
func (r *Renderer) Draw(screen *ebiten.Image, st *raycast.State) {
	r.fillHalf(0, r.height/2, r.ceiling)
	r.fillHalf(r.height/2, r.height, r.floor)

	for x := 0; x < r.width; x++ {
		r.drawWallStrip(x, &st.Hits[x], &st.Player)
	}
	for i := range st.Visible {
		r.drawSprite(&st.Visible[i], &st.Player, st.Depth)
	}

	screen.WritePixels(r.frame)
}

func (r *Renderer) fillHalf(yFrom, yTo int, c color.RGBA) {
	for y := yFrom; y < yTo; y++ {
		row := y * r.width * 4
		for x := 0; x < r.width; x++ {
			i := row + x*4
			r.frame[i] = c.R
			r.frame[i+1] = c.G
			r.frame[i+2] = c.B
			r.frame[i+3] = 255
		}
	}
}

func (r *Renderer) drawWallStrip(x int, hit *raycast.Hit, p *raycast.Player) {
	lineH := int(float64(r.height) / hit.Dist)
	drawStart := -lineH/2 + r.height/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd := lineH/2 + r.height/2
	if drawEnd > r.height {
		drawEnd = r.height
	}

	texX := int(hit.WallX * graphics.TexSize)

	// Mirror the texture on faces seen from their far side so patterns
	// read continuously around a wall block.
	camX := 2*float64(x)/float64(r.width) - 1
	if (hit.Side == raycast.SideX && p.DirX+p.PlaneX*camX > 0) ||
		(hit.Side == raycast.SideY && p.DirY+p.PlaneY*camX < 0) {
		texX = graphics.TexSize - texX - 1
	}

	// Vertical texture coordinate advances in fixed point across the
	// strip; the initial offset accounts for strips taller than the
	// screen.
	step := float64(graphics.TexSize) / float64(lineH)
	texPos := (float64(drawStart) - float64(r.height)/2 + float64(lineH)/2) * step

	shade := hit.Side == raycast.SideY
	for y := drawStart; y < drawEnd; y++ {
		texY := int(texPos)
		texPos += step
		c := r.walls.At(hit.Tex, texX, texY)
		if shade {
			c.R = c.R / 3 * 2
			c.G = c.G / 3 * 2
			c.B = c.B / 3 * 2
		}
		i := (y*r.width + x) * 4
		r.frame[i] = c.R
		r.frame[i+1] = c.G
		r.frame[i+2] = c.B
		r.frame[i+3] = 255
	}
}

// drawSprite billboards one sprite: transform into camera space, project
// to a screen column span, and draw only the stripes that are nearer
// than the wall recorded in the depth buffer. Zero-alpha texels are
// transparent.
func (r *Renderer) drawSprite(sp *raycast.VisibleSprite, p *raycast.Player, depth []float64) {
	sx := sp.X - p.X
	sy := sp.Y - p.Y

	invDet := 1 / (p.PlaneX*p.DirY - p.DirX*p.PlaneY)
	transX := invDet * (p.DirY*sx - p.DirX*sy)
	transY := sp.Dist
	if transY <= 0 {
		return
	}

	screenX := int(float64(r.width) / 2 * (1 + transX/transY))
	size := int(math.Abs(float64(r.height) / transY))

	drawStartY := -size/2 + r.height/2
	if drawStartY < 0 {
		drawStartY = 0
	}
	drawEndY := size/2 + r.height/2
	if drawEndY > r.height {
		drawEndY = r.height
	}
	drawStartX := -size/2 + screenX
	if drawStartX < 0 {
		drawStartX = 0
	}
	drawEndX := size/2 + screenX
	if drawEndX > r.width {
		drawEndX = r.width
	}

	for stripe := drawStartX; stripe < drawEndX; stripe++ {
		if transY >= depth[stripe] {
			continue
		}
		texX := (stripe - (-size/2 + screenX)) * graphics.TexSize / size
		for y := drawStartY; y < drawEndY; y++ {
			d := y - r.height/2 + size/2
			texY := d * graphics.TexSize / size
			c := r.sprites.At(sp.Tex, texX, texY)
			if c.A == 0 {
				continue
			}
			i := (y*r.width + stripe) * 4
			r.frame[i] = c.R
			r.frame[i+1] = c.G
			r.frame[i+2] = c.B
			r.frame[i+3] = 255
		}
	}
}

// Minimap overlay geometry.
const (
	minimapCell   = 6
	minimapMargin = 12
)

// DrawMinimap draws a top-down cell grid with the player marker, using
// ebiten's vector primitives on top of the 3D view.
func (r *Renderer) DrawMinimap(screen *ebiten.Image, m *world.Map, p *raycast.Player) {
	originX := float32(r.width - m.Width*minimapCell - minimapMargin)
	originY := float32(minimapMargin)

	vector.DrawFilledRect(screen, originX-2, originY-2,
		float32(m.Width*minimapCell+4), float32(m.Height*minimapCell+4),
		color.RGBA{0, 0, 0, 160}, false)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			var c color.RGBA
			switch {
			case m.Solid(x, y):
				c = color.RGBA{200, 200, 200, 220}
			case m.InfoAt(x, y) == world.InfoTriggerEnd:
				c = color.RGBA{80, 200, 80, 220}
			case m.SpriteAt(x, y) != world.SpriteEmpty:
				c = color.RGBA{200, 160, 60, 220}
			default:
				continue
			}
			vector.DrawFilledRect(screen,
				originX+float32(x*minimapCell), originY+float32(y*minimapCell),
				minimapCell-1, minimapCell-1, c, false)
		}
	}

	px := originX + float32(p.X*minimapCell)
	py := originY + float32(p.Y*minimapCell)
	vector.DrawFilledCircle(screen, px, py, 3, color.RGBA{255, 80, 80, 255}, true)
	vector.StrokeLine(screen, px, py,
		px+float32(p.DirX*2*minimapCell), py+float32(p.DirY*2*minimapCell),
		2, color.RGBA{255, 80, 80, 255}, true)
}

// DrawDebug prints the player pose and renderer stats in the corner.
func (r *Renderer) DrawDebug(screen *ebiten.Image, st *raycast.State) {
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("pos %.2f, %.2f dir %.2f, %.2f", st.Player.X, st.Player.Y, st.Player.DirX, st.Player.DirY),
		8, 8)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("fps %.0f tps %.0f sprites %d", ebiten.ActualFPS(), ebiten.ActualTPS(), len(st.Visible)),
		8, 24)
}

// DrawEndScreen dims the view and announces the finish.
func (r *Renderer) DrawEndScreen(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.width), float32(r.height),
		color.RGBA{0, 0, 0, 150}, false)

	face := basicfont.Face7x13
	msg := "You found the exit!"
	sub := "Press Escape to quit"
	msgW := len(msg) * 7
	subW := len(sub) * 7
	ebitext.Draw(screen, msg, face, (r.width-msgW)/2, r.height/2-10, color.RGBA{240, 240, 240, 255})
	ebitext.Draw(screen, sub, face, (r.width-subW)/2, r.height/2+14, color.RGBA{180, 180, 180, 255})
}

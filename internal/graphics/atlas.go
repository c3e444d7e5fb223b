package graphics

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"log"
	"os"
)

// Atlas geometry: a horizontal strip of TexCount square textures.
const (
	TexCount = 10
	TexSize  = 64
)

// Atlas holds decoded texture pixels in a flat CPU-side buffer so the
// software renderer can sample them without GPU round-trips.
type Atlas struct {
	pixels []color.RGBA
}

// LoadAtlas reads a PNG strip of TexCount textures side by side. If the
// file is missing, too small, or undecodable it logs a notice and falls
// back to the given procedural generator, so a bare checkout still runs.
func LoadAtlas(path string, fallback func(*Atlas)) *Atlas {
	a := &Atlas{pixels: make([]color.RGBA, TexCount*TexSize*TexSize)}

	img, err := decodeImage(path)
	if err != nil {
		log.Printf("atlas %s: %v, using procedural textures", path, err)
		fallback(a)
		return a
	}

	bounds := img.Bounds()
	if bounds.Dx() < TexCount*TexSize || bounds.Dy() < TexSize {
		log.Printf("atlas %s: got %dx%d, need %dx%d, using procedural textures",
			path, bounds.Dx(), bounds.Dy(), TexCount*TexSize, TexSize)
		fallback(a)
		return a
	}

	rgba := image.NewRGBA(image.Rect(0, 0, TexCount*TexSize, TexSize))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	for t := 0; t < TexCount; t++ {
		for y := 0; y < TexSize; y++ {
			for x := 0; x < TexSize; x++ {
				a.pixels[t*TexSize*TexSize+y*TexSize+x] = rgba.RGBAAt(t*TexSize+x, y)
			}
		}
	}
	return a
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

// At samples one texel. Inputs are clamped rather than wrapped, matching
// the renderer's [0, TexSize) coordinates.
func (a *Atlas) At(tex uint16, x, y int) color.RGBA {
	t := int(tex)
	if t >= TexCount {
		t = TexCount - 1
	}
	if x < 0 {
		x = 0
	} else if x >= TexSize {
		x = TexSize - 1
	}
	if y < 0 {
		y = 0
	} else if y >= TexSize {
		y = TexSize - 1
	}
	return a.pixels[t*TexSize*TexSize+y*TexSize+x]
}

func (a *Atlas) set(tex, x, y int, c color.RGBA) {
	a.pixels[tex*TexSize*TexSize+y*TexSize+x] = c
}

// wallBaseColors are the per-texture base tints of the procedural wall
// set, indexed by texture number.
var wallBaseColors = [TexCount][3]uint8{
	{139, 69, 19},   // brown brick
	{128, 128, 128}, // grey stone
	{34, 139, 34},   // green moss
	{178, 34, 34},   // red brick
	{70, 130, 180},  // steel blue
	{210, 180, 140}, // tan sandstone
	{106, 90, 205},  // slate purple
	{218, 165, 32},  // goldenrod
	{47, 79, 79},    // dark teal
	{160, 82, 45},   // sienna
}

// ProceduralWalls fills the atlas with checkered brick patterns: an 8px
// checkerboard shaded to 75%, with mortar lines every 16px at 60%.
func ProceduralWalls(a *Atlas) {
	for t := 0; t < TexCount; t++ {
		base := wallBaseColors[t]
		for y := 0; y < TexSize; y++ {
			for x := 0; x < TexSize; x++ {
				shade := 1.0
				if ((x/8)+(y/8))&1 == 0 {
					shade = 0.75
				}
				if x%16 == 0 || y%16 == 0 {
					shade *= 0.6
				}
				a.set(t, x, y, color.RGBA{
					R: uint8(float64(base[0]) * shade),
					G: uint8(float64(base[1]) * shade),
					B: uint8(float64(base[2]) * shade),
					A: 255,
				})
			}
		}
	}
}

// ProceduralSprites fills the atlas with solid discs on a transparent
// background, one per texture tint. The zero alpha outside the disc is
// what the renderer keys transparency on.
func ProceduralSprites(a *Atlas) {
	const radius = TexSize/2 - 4
	for t := 0; t < TexCount; t++ {
		base := wallBaseColors[t]
		for y := 0; y < TexSize; y++ {
			for x := 0; x < TexSize; x++ {
				dx := x - TexSize/2
				dy := y - TexSize/2
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				shade := 1.0
				if dx*dx+dy*dy > (radius-3)*(radius-3) {
					shade = 0.6
				}
				a.set(t, x, y, color.RGBA{
					R: uint8(float64(base[0]) * shade),
					G: uint8(float64(base[1]) * shade),
					B: uint8(float64(base[2]) * shade),
					A: 255,
				})
			}
		}
	}
}

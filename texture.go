package trimesh

import (
	"fmt"
	"image"
	_ "image/jpeg" // Ensure decoders are present
	_ "image/png"
	"math"
	"os"
)

type Texture interface {
	Sample(u, v float64) Color
	BilinearSample(u, v float64) Color
}

type ImageTexture struct {
	Width  int
	Height int
	Image  image.Image
}

func NewImageTexture(im image.Image) Texture {
	return &ImageTexture{
		Width:  im.Bounds().Dx(),
		Height: im.Bounds().Dy(),
		Image:  im,
	}
}

// NewTextureFromRGBA wraps tightly packed, non-premultiplied RGBA rows.
func NewTextureFromRGBA(pix []uint8, width, height int) (Texture, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("texture %dx%d needs %d bytes, got %d", width, height, width*height*4, len(pix))
	}
	im := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(im.Pix, pix)
	return NewImageTexture(im), nil
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	return im, err
}

func LoadTexture(path string) (Texture, error) {
	im, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewImageTexture(im), nil
}

func (t *ImageTexture) at(x, y int) Color {
	b := t.Image.Bounds()
	return MakeColor(t.Image.At(b.Min.X+x, b.Min.Y+y))
}

func (t *ImageTexture) Sample(u, v float64) Color {
	// wrap, then flip V for standard UV coords
	u = u - math.Floor(u)
	v = 1 - (v - math.Floor(v))

	x := ClampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := ClampInt(int(v*float64(t.Height)), 0, t.Height-1)
	return t.at(x, y)
}

func (t *ImageTexture) BilinearSample(u, v float64) Color {
	u = u - math.Floor(u)
	v = 1 - (v - math.Floor(v))

	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix := int(x0)
	iy := int(y0)
	wrap := func(i, n int) int {
		return ((i % n) + n) % n
	}
	x1 := wrap(ix+1, t.Width)
	y1 := wrap(iy+1, t.Height)
	ix = wrap(ix, t.Width)
	iy = wrap(iy, t.Height)

	c00 := t.at(ix, iy)
	c10 := t.at(x1, iy)
	c01 := t.at(ix, y1)
	c11 := t.at(x1, y1)
	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

package render

import (
	"fmt"
	"image"
)

// Frame is a rendered image as a flat sample buffer, row by row from the top.
type Frame struct {
	Pix      []uint8
	Channels int
	Width    int
	Height   int
}

func frameFromImage(im *image.NRGBA) Frame {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		i := im.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], im.Pix[i:i+w*4])
	}
	return Frame{Pix: pix, Channels: 4, Width: w, Height: h}
}

// Check reports ErrFrameShape unless the buffer holds exactly
// Height*Width*Channels samples.
func (f Frame) Check() error {
	if f.Width <= 0 || f.Height <= 0 || f.Channels <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrFrameShape, f.Height, f.Width, f.Channels)
	}
	if want := f.Width * f.Height * f.Channels; len(f.Pix) != want {
		return fmt.Errorf("%w: %d samples for %dx%dx%d (want %d)",
			ErrFrameShape, len(f.Pix), f.Height, f.Width, f.Channels, want)
	}
	return nil
}

// Reshape views the buffer as a [Height][Width][Channels] grid. The grid shares
// memory with Pix.
func (f Frame) Reshape() ([][][]uint8, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	row := f.Width * f.Channels
	grid := make([][][]uint8, f.Height)
	for y := range grid {
		grid[y] = make([][]uint8, f.Width)
		for x := range grid[y] {
			i := y*row + x*f.Channels
			grid[y][x] = f.Pix[i : i+f.Channels : i+f.Channels]
		}
	}
	return grid, nil
}

// Image converts the frame to an image. One channel is gray, three is RGB and
// four is non-premultiplied RGBA.
func (f Frame) Image() (*image.NRGBA, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}
	im := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	n := f.Width * f.Height
	for i := 0; i < n; i++ {
		src := f.Pix[i*f.Channels : (i+1)*f.Channels]
		dst := im.Pix[i*4 : i*4+4]
		switch f.Channels {
		case 1:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
		case 3:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xff
		case 4:
			copy(dst, src)
		default:
			return nil, fmt.Errorf("%w: %d channels", ErrFrameShape, f.Channels)
		}
	}
	return im, nil
}

package render

import (
	"errors"
	"testing"
)

func TestReshape(t *testing.T) {
	const w, h, c = 3, 2, 4
	pix := make([]uint8, w*h*c)
	for i := range pix {
		pix[i] = uint8(i)
	}
	f := Frame{Pix: pix, Channels: c, Width: w, Height: h}
	grid, err := f.Reshape()
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != h || len(grid[0]) != w || len(grid[0][0]) != c {
		t.Fatalf("grid is %dx%dx%d, want %dx%dx%d", len(grid), len(grid[0]), len(grid[0][0]), h, w, c)
	}
	// row 1, column 2
	if got := grid[1][2][0]; got != uint8((1*w+2)*c) {
		t.Errorf("grid[1][2][0] = %d", got)
	}
	grid[0][0][0] = 200
	if pix[0] != 200 {
		t.Error("grid does not share memory with the frame")
	}
}

func TestReshapeShapeErrors(t *testing.T) {
	frames := map[string]Frame{
		"short buffer": {Pix: make([]uint8, 23), Channels: 4, Width: 3, Height: 2},
		"long buffer":  {Pix: make([]uint8, 25), Channels: 4, Width: 3, Height: 2},
		"zero width":   {Pix: nil, Channels: 4, Width: 0, Height: 2},
		"no channels":  {Pix: nil, Channels: 0, Width: 3, Height: 2},
	}
	for name, f := range frames {
		if _, err := f.Reshape(); !errors.Is(err, ErrFrameShape) {
			t.Errorf("%s: err = %v, want ErrFrameShape", name, err)
		}
	}
}

func TestFrameImage(t *testing.T) {
	f := Frame{Pix: []uint8{10, 20, 30, 40, 50, 60}, Channels: 3, Width: 2, Height: 1}
	im, err := f.Image()
	if err != nil {
		t.Fatal(err)
	}
	if c := im.NRGBAAt(1, 0); c.R != 40 || c.G != 50 || c.B != 60 || c.A != 255 {
		t.Errorf("pixel = %v", c)
	}
	f = Frame{Pix: make([]uint8, 4), Channels: 2, Width: 2, Height: 1}
	if _, err := f.Image(); !errors.Is(err, ErrFrameShape) {
		t.Errorf("2 channels: err = %v, want ErrFrameShape", err)
	}
}

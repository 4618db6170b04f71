package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			im.SetNRGBA(x, y, color.NRGBA{uint8(50 * x), uint8(100 * y), 80, 255})
		}
	}
	return im
}

func TestWrite(t *testing.T) {
	decoders := map[string]func(f *os.File) (image.Image, error){
		"frame.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"frame.JPG":  func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
		"frame.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"frame.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	dir := t.TempDir()
	src := testImage()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Write(path, src); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			got, err := decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if got.Bounds() != src.Bounds() {
				t.Errorf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
		})
	}
}

func TestWriteLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	src := testImage()
	if err := Write(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if c := color.NRGBAModel.Convert(got.At(4, 2)).(color.NRGBA); c != src.NRGBAAt(4, 2) {
		t.Errorf("pixel = %v, want %v", c, src.NRGBAAt(4, 2))
	}
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.xyz")
	if err := Write(path, testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created for an unknown format")
	}
}

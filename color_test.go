package trimesh

import (
	"image/color"
	"testing"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"0f0", color.NRGBA{0, 255, 0, 255}},
		{"0000ff80", color.NRGBA{0, 0, 255, 128}},
		{"cccc", color.NRGBA{204, 204, 204, 204}},
		{"nothex", color.NRGBA{0, 0, 0, 255}},
		{"", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := HexColor(tt.in).NRGBA(); got != tt.want {
			t.Errorf("HexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNRGBAClamps(t *testing.T) {
	got := Color{1.5, -0.2, 0.5, 1}.NRGBA()
	if want := (color.NRGBA{255, 0, 128, 255}); got != want {
		t.Errorf("NRGBA = %v, want %v", got, want)
	}
}

func TestTextureSampling(t *testing.T) {
	// 2x1: red on the left, blue on the right
	tex, err := NewTextureFromRGBA([]uint8{255, 0, 0, 255, 0, 0, 255, 255}, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c := tex.Sample(0.25, 0.5); c != (Color{1, 0, 0, 1}) {
		t.Errorf("Sample left = %v", c)
	}
	if c := tex.Sample(1.75, 0.5); c != (Color{0, 0, 1, 1}) {
		t.Errorf("Sample wrapped right = %v", c)
	}
	if c := tex.BilinearSample(0.5, 0.5); c.R < 0.49 || c.R > 0.51 || c.B < 0.49 || c.B > 0.51 {
		t.Errorf("BilinearSample middle = %v, want an even mix", c)
	}
	if _, err := NewTextureFromRGBA(make([]uint8, 7), 2, 1); err == nil {
		t.Error("short pixel buffer accepted")
	}
}

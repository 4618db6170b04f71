package camera

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var cube = []float64{
	0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
	0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
}

func TestPlacementUnitCube(t *testing.T) {
	eye, target, err := Placement(cube)
	if err != nil {
		t.Fatal(err)
	}
	if want := (mgl64.Vec4{0.5, 0.5, 0.5, 1}); !target.ApproxEqual(want) {
		t.Errorf("target = %v, want %v", target, want)
	}
	if want := (mgl64.Vec4{3, 1.5, 3, 1}); !eye.ApproxEqual(want) {
		t.Errorf("eye = %v, want %v", eye, want)
	}
}

func TestMax(t *testing.T) {
	m, err := Max([]float64{-1, 5, -3, -2, 4, -7})
	if err != nil {
		t.Fatal(err)
	}
	if want := (mgl64.Vec3{-1, 5, -3}); m != want {
		t.Errorf("Max = %v, want %v", m, want)
	}
}

func TestSingleVertex(t *testing.T) {
	eye, target, err := Placement([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !target.ApproxEqual(mgl64.Vec4{1, 2, 3, 1}) || !eye.ApproxEqual(mgl64.Vec4{3, 6, 9, 1}) {
		t.Errorf("eye %v target %v", eye, target)
	}
}

func TestInvalidPositions(t *testing.T) {
	if _, _, err := Placement(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty: err = %v, want ErrEmpty", err)
	}
	if _, err := Centroid([]float64{1, 2}); err == nil {
		t.Error("ragged positions: expected an error")
	}
}

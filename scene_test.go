package trimesh

import (
	"math"
	"testing"
)

func TestFitPerspectiveContainsBox(t *testing.T) {
	box := Box{V(-1, -1, -1), V(1, 1, 1)}
	view := LookAt(V(0, 0, 10), V(0, 0, 0), V(0, 1, 0))
	matrix := FitPerspective(view, box, 1, 0.1, 100).Mul(view)
	for _, corner := range box.Corners() {
		p := matrix.MulPositionW(corner)
		if p.Outside() {
			t.Errorf("corner %v projects outside the view volume: %v", corner, p)
		}
	}
	if FitPerspective(view, EmptyBox, 1, 0.1, 100) != Perspective(60, 1, 0.1, 100) {
		t.Error("empty box did not fall back to 60 degrees")
	}
}

func TestSceneSupersample(t *testing.T) {
	shader := NewSolidColorShader(Identity(), White)
	scene := NewScene(8, 6, 3, shader)
	scene.Context.ClearColor = Black
	scene.AddObject(NewObjectFromMesh(NewTriangleMesh([]*Triangle{
		NewTriangleForPoints(V(-1, -1, 0), V(1, -1, 0), V(1, 1, 0)),
		NewTriangleForPoints(V(-1, -1, 0), V(1, 1, 0), V(-1, 1, 0)),
	})))
	if scene.Context.Width != 24 || scene.Context.Height != 18 {
		t.Fatalf("context is %dx%d, want 24x18", scene.Context.Width, scene.Context.Height)
	}
	im := scene.Draw()
	if b := im.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("image is %dx%d, want 8x6", b.Dx(), b.Dy())
	}
	if c := im.NRGBAAt(4, 3); c.R != 255 || c.G != 255 {
		t.Errorf("covered pixel = %v, want white", c)
	}
}

func TestSceneOverlay(t *testing.T) {
	scene := NewScene(10, 10, 1, NewSolidColorShader(Identity(), White))
	scene.Context.ClearColor = Black
	scene.AddObject(NewObjectFromMesh(NewTriangleMesh([]*Triangle{
		NewTriangleForPoints(V(-1, -1, 0), V(1, -1, 0), V(1, 1, 0)),
		NewTriangleForPoints(V(-1, -1, 0), V(1, 1, 0), V(-1, 1, 0)),
	})))
	scene.Render()
	line := NewLineObject([]*Line{NewLineForPoints(V(-1, 0, 0), V(1, 0, 0))})
	scene.Overlay(NewSolidColorShader(Identity(), Color{1, 0, 0, 1}), line, 1e-3)

	if c := scene.Context.ColorBuffer.NRGBAAt(5, 5); c.R != 255 || c.G != 0 {
		t.Errorf("pixel under the line = %v, want red", c)
	}
	if c := scene.Context.ColorBuffer.NRGBAAt(5, 1); c.G != 255 {
		t.Errorf("pixel away from the line = %v, want white", c)
	}
	if scene.Context.DepthBias != 0 {
		t.Errorf("DepthBias = %g after overlay", scene.Context.DepthBias)
	}
	if math.IsNaN(scene.Context.DepthBuffer[0]) {
		t.Error("depth buffer corrupted")
	}
}

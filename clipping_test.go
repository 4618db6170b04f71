package trimesh

import (
	"math"
	"testing"
)

func clipVertex(x, y, z float64) Vertex {
	return Vertex{Position: V(x, y, z), Output: VectorW{x, y, z, 1}}
}

func inside(v VectorW) bool {
	const tol = 1e-9
	return math.Abs(v.X) <= v.W+tol && math.Abs(v.Y) <= v.W+tol && math.Abs(v.Z) <= v.W+tol
}

func TestClipTriangleInside(t *testing.T) {
	tri := &Triangle{clipVertex(0, 0, 0), clipVertex(0.5, 0, 0), clipVertex(0, 0.5, 0)}
	got := ClipTriangle(tri)
	if len(got) != 1 {
		t.Fatalf("got %d triangles, want 1", len(got))
	}
	if got[0].V2.Output != tri.V2.Output {
		t.Errorf("vertex moved to %v", got[0].V2.Output)
	}
}

func TestClipTrianglePartial(t *testing.T) {
	tri := &Triangle{clipVertex(0, 0, 0), clipVertex(2, 0, 0), clipVertex(0, 0.5, 0)}
	got := ClipTriangle(tri)
	if len(got) != 2 {
		t.Fatalf("got %d triangles, want 2", len(got))
	}
	for _, c := range got {
		for _, v := range []Vertex{c.V1, c.V2, c.V3} {
			if !inside(v.Output) {
				t.Errorf("vertex %v outside the view volume", v.Output)
			}
			// attributes follow the clipped position
			if v.Position.Distance(v.Output.Vector()) > 1e-9 {
				t.Errorf("position %v does not match output %v", v.Position, v.Output)
			}
		}
	}
}

func TestClipTriangleOutside(t *testing.T) {
	tri := &Triangle{clipVertex(2, 0, 0), clipVertex(3, 0, 0), clipVertex(2, 1, 0)}
	if got := ClipTriangle(tri); len(got) != 0 {
		t.Errorf("got %d triangles, want 0", len(got))
	}
}

func TestClipLine(t *testing.T) {
	l := ClipLine(NewLine(clipVertex(-2, 0, 0), clipVertex(2, 0, 0)))
	if l == nil {
		t.Fatal("line clipped away")
	}
	if math.Abs(l.V1.Output.X+1) > 1e-9 || math.Abs(l.V2.Output.X-1) > 1e-9 {
		t.Errorf("clipped to %v .. %v, want x from -1 to 1", l.V1.Output, l.V2.Output)
	}
	if ClipLine(NewLine(clipVertex(2, 0, 0), clipVertex(3, 0, 0))) != nil {
		t.Error("line outside the volume survived")
	}
}

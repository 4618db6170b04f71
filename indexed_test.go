package trimesh

import (
	"errors"
	"math"
	"testing"
)

// unitCube has outward facing counter-clockwise triangles.
func unitCube() *IndexedMesh {
	return NewIndexedMesh(
		[]float64{
			0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
			0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
		},
		[]uint32{
			0, 3, 2, 0, 2, 1, // z = 0
			4, 5, 6, 4, 6, 7, // z = 1
			0, 1, 5, 0, 5, 4, // y = 0
			1, 2, 6, 1, 6, 5, // x = 1
			2, 3, 7, 2, 7, 6, // y = 1
			3, 0, 4, 3, 4, 7, // x = 0
		})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mesh *IndexedMesh
		ok   bool
	}{
		{"cube", unitCube(), true},
		{"ragged positions", NewIndexedMesh([]float64{0, 0}, nil), false},
		{"ragged indices", NewIndexedMesh([]float64{0, 0, 0}, []uint32{0, 0}), false},
		{"index out of range", NewIndexedMesh([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 3}), false},
		{"uv count", &IndexedMesh{Positions: []float64{0, 0, 0}, UVs: []float64{0}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidMesh) {
				t.Fatalf("err = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestCentroidAndMax(t *testing.T) {
	m := unitCube()
	if c := m.Centroid(); c != V(0.5, 0.5, 0.5) {
		t.Errorf("Centroid = %v", c)
	}
	if mx := m.Max(); mx != V(1, 1, 1) {
		t.Errorf("Max = %v", mx)
	}
	if mn := m.Min(); mn != V(0, 0, 0) {
		t.Errorf("Min = %v", mn)
	}
}

func TestSmoothNormalsPointOutward(t *testing.T) {
	m := unitCube()
	c := m.Centroid()
	for i, n := range m.SmoothNormals() {
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Errorf("normal %d has length %g", i, n.Length())
		}
		if out := m.Position(i).Sub(c); n.Dot(out) <= 0 {
			t.Errorf("normal %d = %v points inward", i, n)
		}
	}
}

func TestUnreferencedVertexNormal(t *testing.T) {
	m := NewIndexedMesh([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 5, 5, 5}, []uint32{0, 1, 2})
	normals := m.SmoothNormals()
	if normals[3] != (Vector{}) {
		t.Errorf("unreferenced normal = %v, want zero", normals[3])
	}
	if normals[0].Distance(V(0, 0, 1)) > 1e-9 {
		t.Errorf("normal = %v, want +Z", normals[0])
	}
}

func TestToMeshSkipsDegenerate(t *testing.T) {
	m := NewIndexedMesh(
		[]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 2, 0, 0},
		[]uint32{0, 1, 2, 0, 1, 3})
	mesh, err := m.ToMesh()
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 1 {
		t.Errorf("got %d triangles, want 1", len(mesh.Triangles))
	}
}

func TestSetPositions(t *testing.T) {
	m := unitCube()
	moved := append([]float64(nil), m.Positions...)
	for i := range moved {
		moved[i] += 1
	}
	if err := m.SetPositions(moved); err != nil {
		t.Fatal(err)
	}
	if c := m.Centroid(); c != V(1.5, 1.5, 1.5) {
		t.Errorf("Centroid = %v after move", c)
	}
	if err := m.SetPositions(moved[:3]); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("short positions: err = %v", err)
	}
}

func TestSimplify(t *testing.T) {
	m := unitCube()
	out, err := Simplify(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Validate(); err != nil {
		t.Fatal(err)
	}
	if out.TriangleCount() == 0 || out.TriangleCount() > m.TriangleCount() {
		t.Errorf("simplified to %d triangles from %d", out.TriangleCount(), m.TriangleCount())
	}
	if _, err := Simplify(m, 0); err == nil {
		t.Error("factor 0 accepted")
	}
}

package trimesh

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeBinarySTL(t *testing.T, path string, triangles [][3]Vector) {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(len(triangles)))
	for _, tri := range triangles {
		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
		values := []float32{float32(n.X), float32(n.Y), float32(n.Z)}
		for _, v := range tri {
			values = append(values, float32(v.X), float32(v.Y), float32(v.Z))
		}
		binary.Write(&buf, binary.LittleEndian, values)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadIndexedSTLWelds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.stl")
	a, b, c, d := V(0, 0, 0), V(1, 0, 0), V(1, 1, 0), V(0, 1, 0)
	writeBinarySTL(t, path, [][3]Vector{{a, b, c}, {a, c, d}})

	m, err := LoadIndexed(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", m.TriangleCount())
	}
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4 after welding", m.VertexCount())
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}

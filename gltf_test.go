package trimesh

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// triangleBuffer holds three positions, three UVs and three uint16 indices.
func triangleBuffer(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	values := []any{
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[]float32{0, 0, 1, 0.25, 0.5, 1},
		[]uint16{0, 1, 2},
	}
	for _, v := range values {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

const gltfTemplate = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": %d, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 24},
    {"buffer": 0, "byteOffset": 60, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [{"primitives": [%s]}]
}`

func writeGLTF(t *testing.T, primitive string) string {
	t.Helper()
	data := triangleBuffer(t)
	doc := fmt.Sprintf(gltfTemplate, len(data), base64.StdEncoding.EncodeToString(data), primitive)
	path := filepath.Join(t.TempDir(), "triangle.gltf")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadIndexedGLTF(t *testing.T) {
	path := writeGLTF(t, `{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}, "indices": 2}`)
	m, err := LoadIndexed(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}; !equalFloats(m.Positions, want) {
		t.Errorf("Positions = %v, want %v", m.Positions, want)
	}
	if len(m.Indices) != 3 || m.Indices[0] != 0 || m.Indices[1] != 1 || m.Indices[2] != 2 {
		t.Errorf("Indices = %v, want [0 1 2]", m.Indices)
	}
	// V is flipped to a bottom-left origin
	if want := []float64{0, 1, 1, 0.75, 0.5, 0}; !equalFloats(m.UVs, want) {
		t.Errorf("UVs = %v, want %v", m.UVs, want)
	}
	if len(m.Normals) != 0 {
		t.Errorf("Normals = %v, want none", m.Normals)
	}
}

func TestLoadIndexedGLTFWithoutIndices(t *testing.T) {
	path := writeGLTF(t, `{"attributes": {"POSITION": 0}}`)
	m, err := LoadIndexedGLTF(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 1 || m.Indices[2] != 2 {
		t.Errorf("Indices = %v, want [0 1 2]", m.Indices)
	}
	if len(m.UVs) != 0 {
		t.Errorf("UVs = %v, want none", m.UVs)
	}
}

func TestLoadIndexedGLTFNoTriangles(t *testing.T) {
	path := writeGLTF(t, `{"attributes": {"NORMAL": 0}}`)
	if _, err := LoadIndexedGLTF(path); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("err = %v, want ErrInvalidMesh", err)
	}
}

func TestLoadGLTFMesh(t *testing.T) {
	path := writeGLTF(t, `{"attributes": {"POSITION": 0}, "indices": 2}`)
	mesh, err := LoadGLTF(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("got %d triangles, want 1", len(mesh.Triangles))
	}
	if n := mesh.Triangles[0].V1.Normal; n != V(0, 0, 1) {
		t.Errorf("normal = %v, want +Z", n)
	}
}

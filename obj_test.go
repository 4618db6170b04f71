package trimesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quadOBJ = `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestReadIndexedOBJ(t *testing.T) {
	m, err := ReadIndexedOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Fatalf("got %d vertices %d triangles, want 4 and 2", m.VertexCount(), m.TriangleCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("Indices = %v, want %v", m.Indices, want)
		}
	}
	if len(m.UVs) != 8 || m.UVs[4] != 1 || m.UVs[5] != 1 {
		t.Errorf("UVs = %v", m.UVs)
	}
}

func TestNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	m, err := ReadIndexedOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Indices) != 3 || m.Indices[0] != 0 || m.Indices[2] != 2 {
		t.Errorf("Indices = %v", m.Indices)
	}
}

func TestOBJErrors(t *testing.T) {
	tests := map[string]string{
		"index out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"zero index":         "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"short face":         "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadIndexedOBJ(strings.NewReader(src))
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("err = %v, want ErrInvalidMesh", err)
			}
		})
	}
	if _, err := ReadIndexedOBJ(strings.NewReader("v 0 zero 0\n")); err == nil {
		t.Error("bad float accepted")
	}
}

func TestLoadIndexedOBJMaterial(t *testing.T) {
	dir := t.TempDir()
	obj := "mtllib quad.mtl\nusemtl red\n" + quadOBJ
	mtl := "newmtl blue\nKd 0 0 1\nnewmtl red\nKd 1 0 0\nmap_Kd -s 1 1 1 red.png\n"
	if err := os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quad.mtl"), []byte(mtl), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadIndexed(filepath.Join(dir, "quad.obj"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Material == nil {
		t.Fatal("material not loaded")
	}
	if m.Material.Name != "red" || m.Material.Diffuse != (Color{1, 0, 0, 1}) {
		t.Errorf("material = %+v", m.Material)
	}
	if want := filepath.Join(dir, "red.png"); m.Material.Texture != want {
		t.Errorf("texture = %q, want %q", m.Material.Texture, want)
	}
}

func TestLoadIndexedOBJMissingMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte("mtllib gone.mtl\n"+quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadIndexedOBJ(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Material != nil {
		t.Errorf("material = %+v, want none", m.Material)
	}
}

func TestLoadIndexedUnsupported(t *testing.T) {
	if _, err := LoadIndexed("mesh.ply"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

package trimesh

import (
	"fmt"

	"github.com/fogleman/simplify"
)

// LoadIndexedSTL loads a binary STL file and welds coincident corners into
// shared vertices.
func LoadIndexedSTL(path string) (*IndexedMesh, error) {
	mesh, err := simplify.LoadBinarySTL(path)
	if err != nil {
		return nil, err
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("%s: %w: no triangles", path, ErrInvalidMesh)
	}
	return weld(mesh), nil
}

// Simplify decimates m to roughly factor times its triangle count using
// quadric error edge collapses. UVs and normals do not survive.
func Simplify(m *IndexedMesh, factor float64) (*IndexedMesh, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("simplify factor %g outside (0, 1]", factor)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	triangles := make([]*simplify.Triangle, 0, m.TriangleCount())
	for i := 0; i < len(m.Indices); i += 3 {
		triangles = append(triangles, simplify.NewTriangle(
			toSimplify(m.Position(int(m.Indices[i]))),
			toSimplify(m.Position(int(m.Indices[i+1]))),
			toSimplify(m.Position(int(m.Indices[i+2]))),
		))
	}
	out := weld(simplify.NewMesh(triangles).Simplify(factor))
	out.Material = m.Material
	return out, nil
}

func toSimplify(v Vector) simplify.Vector {
	return simplify.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func weld(mesh *simplify.Mesh) *IndexedMesh {
	out := &IndexedMesh{Indices: make([]uint32, 0, 3*len(mesh.Triangles))}
	lookup := make(map[simplify.Vector]uint32)
	index := func(v simplify.Vector) uint32 {
		if i, ok := lookup[v]; ok {
			return i
		}
		i := uint32(len(lookup))
		lookup[v] = i
		out.Positions = append(out.Positions, v.X, v.Y, v.Z)
		return i
	}
	for _, t := range mesh.Triangles {
		out.Indices = append(out.Indices, index(t.V1), index(t.V2), index(t.V3))
	}
	return out
}

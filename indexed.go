package trimesh

import (
	"errors"
	"fmt"
)

var ErrInvalidMesh = errors.New("invalid mesh")

// Material is the surface description carried along with a loaded mesh.
type Material struct {
	Name    string
	Diffuse Color
	// Texture is the resolved path of the diffuse map, if any.
	Texture string
}

// IndexedMesh is a mesh in flat array form: three floats per vertex position
// and three vertex indices per triangle.
type IndexedMesh struct {
	Positions []float64
	Indices   []uint32
	UVs       []float64 // empty, or two per vertex
	Normals   []float64 // empty, or three per vertex
	Material  *Material
}

func NewIndexedMesh(positions []float64, indices []uint32) *IndexedMesh {
	return &IndexedMesh{Positions: positions, Indices: indices}
}

// Validate checks that the arrays agree in length and that every index
// references an existing vertex.
func (m *IndexedMesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position values is not a multiple of 3", ErrInvalidMesh, len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	n := m.VertexCount()
	if len(m.UVs) != 0 && len(m.UVs) != 2*n {
		return fmt.Errorf("%w: %d uv values for %d vertices", ErrInvalidMesh, len(m.UVs), n)
	}
	if len(m.Normals) != 0 && len(m.Normals) != 3*n {
		return fmt.Errorf("%w: %d normal values for %d vertices", ErrInvalidMesh, len(m.Normals), n)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

func (m *IndexedMesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *IndexedMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *IndexedMesh) Position(i int) Vector {
	return Vector{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
}

func (m *IndexedMesh) uv(i int) Vector {
	if len(m.UVs) == 0 {
		return Vector{}
	}
	return Vector{m.UVs[2*i], m.UVs[2*i+1], 0}
}

// Centroid is the arithmetic mean of all vertex positions.
func (m *IndexedMesh) Centroid() Vector {
	n := m.VertexCount()
	if n == 0 {
		return Vector{}
	}
	var sum Vector
	for i := 0; i < n; i++ {
		sum = sum.Add(m.Position(i))
	}
	return sum.DivScalar(float64(n))
}

func (m *IndexedMesh) BoundingBox() Box {
	n := m.VertexCount()
	if n == 0 {
		return EmptyBox
	}
	box := Box{m.Position(0), m.Position(0)}
	for i := 1; i < n; i++ {
		p := m.Position(i)
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Min is the component-wise minimum of all positions.
func (m *IndexedMesh) Min() Vector {
	return m.BoundingBox().Min
}

// Max is the component-wise maximum of all positions.
func (m *IndexedMesh) Max() Vector {
	return m.BoundingBox().Max
}

// SmoothNormals accumulates the area-weighted face normals on each vertex.
// Vertices not referenced by any non-degenerate triangle get a zero normal.
func (m *IndexedMesh) SmoothNormals() []Vector {
	normals := make([]Vector, m.VertexCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := m.Position(int(i0))
		e1 := m.Position(int(i1)).Sub(p0)
		e2 := m.Position(int(i2)).Sub(p0)
		n := e1.Cross(e2)
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i, n := range normals {
		normals[i] = n.Normalize()
	}
	return normals
}

// UpdateNormals recomputes Normals from the current positions.
func (m *IndexedMesh) UpdateNormals() {
	normals := m.SmoothNormals()
	m.Normals = make([]float64, 0, 3*len(normals))
	for _, n := range normals {
		m.Normals = append(m.Normals, n.X, n.Y, n.Z)
	}
}

func (m *IndexedMesh) normal(i int) Vector {
	return Vector{m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]}
}

// SetPositions replaces the vertex positions; the vertex count must not change.
func (m *IndexedMesh) SetPositions(positions []float64) error {
	if len(positions) != len(m.Positions) {
		return fmt.Errorf("%w: %d position values, mesh has %d", ErrInvalidMesh, len(positions), len(m.Positions))
	}
	copy(m.Positions, positions)
	return nil
}

// Copy returns a deep copy of the arrays; the material is shared.
func (m *IndexedMesh) Copy() *IndexedMesh {
	return &IndexedMesh{
		Positions: append([]float64(nil), m.Positions...),
		Indices:   append([]uint32(nil), m.Indices...),
		UVs:       append([]float64(nil), m.UVs...),
		Normals:   append([]float64(nil), m.Normals...),
		Material:  m.Material,
	}
}

// ToMesh expands the index buffer into a triangle soup for the rasterizer.
// Normals come from m.Normals when present, else they are smoothed.
func (m *IndexedMesh) ToMesh() (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var normals []Vector
	if len(m.Normals) == 0 {
		normals = m.SmoothNormals()
	}
	vertex := func(i uint32) Vertex {
		v := Vertex{Position: m.Position(int(i)), Texture: m.uv(int(i)), Color: White}
		if normals != nil {
			v.Normal = normals[i]
		} else {
			v.Normal = m.normal(int(i))
		}
		return v
	}
	triangles := make([]*Triangle, 0, m.TriangleCount())
	for i := 0; i < len(m.Indices); i += 3 {
		t := &Triangle{vertex(m.Indices[i]), vertex(m.Indices[i+1]), vertex(m.Indices[i+2])}
		if t.IsDegenerate() {
			continue
		}
		t.FixNormals()
		triangles = append(triangles, t)
	}
	return NewTriangleMesh(triangles), nil
}

// Object builds a renderable object, applying the material color and texture.
func (m *IndexedMesh) Object() (*Object, error) {
	mesh, err := m.ToMesh()
	if err != nil {
		return nil, err
	}
	o := NewObjectFromMesh(mesh)
	if m.Material == nil {
		return o, nil
	}
	o.SetColor(m.Material.Diffuse)
	if m.Material.Texture != "" {
		tex, err := LoadTexture(m.Material.Texture)
		if err != nil {
			return nil, fmt.Errorf("load texture %s: %w", m.Material.Texture, err)
		}
		o.Texture = tex
	}
	return o, nil
}

package trimesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads a .gltf or .glb file as a triangle soup.
func LoadGLTF(path string) (*Mesh, error) {
	im, err := LoadIndexedGLTF(path)
	if err != nil {
		return nil, err
	}
	return im.ToMesh()
}

// LoadIndexedGLTF merges every triangle primitive of the document into one
// indexed mesh. Node transforms are not applied.
func LoadIndexedGLTF(path string) (*IndexedMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	out := &IndexedMesh{}
	hasNormals := true
	hasUVs := true

	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			// We only support Triangles (mode 4)
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posIdx, ok := primitive.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("%s: positions: %w", path, err)
			}

			var normals [][3]float32
			if normIdx, ok := primitive.Attributes[gltf.NORMAL]; ok {
				normals, _ = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			}
			if len(normals) != len(positions) {
				hasNormals = false
			}

			var texCoords [][2]float32
			if texIdx, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
				texCoords, _ = modeler.ReadTextureCoord(doc, doc.Accessors[texIdx], nil)
			}
			if len(texCoords) != len(positions) {
				hasUVs = false
			}

			var indices []uint32
			if primitive.Indices != nil {
				// ReadIndices converts uint8/uint16/uint32 to []uint32
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("%s: indices: %w", path, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for k := range indices {
					indices[k] = uint32(k)
				}
			}

			base := uint32(out.VertexCount())
			for i, p := range positions {
				out.Positions = append(out.Positions, float64(p[0]), float64(p[1]), float64(p[2]))
				if hasNormals {
					n := normals[i]
					out.Normals = append(out.Normals, float64(n[0]), float64(n[1]), float64(n[2]))
				}
				if hasUVs {
					t := texCoords[i]
					// glTF puts the UV origin top-left, textures here sample bottom-left
					out.UVs = append(out.UVs, float64(t[0]), 1-float64(t[1]))
				}
			}
			for i := 0; i+2 < len(indices); i += 3 {
				out.Indices = append(out.Indices, base+indices[i], base+indices[i+1], base+indices[i+2])
			}
		}
	}

	if len(out.Indices) == 0 {
		return nil, fmt.Errorf("%s: %w: no triangles found in gltf", path, ErrInvalidMesh)
	}
	if !hasNormals {
		out.Normals = nil
	}
	if !hasUVs {
		out.UVs = nil
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

package trimesh

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOBJ loads an OBJ file as a triangle soup.
func LoadOBJ(path string) (*Mesh, error) {
	im, err := LoadIndexedOBJ(path)
	if err != nil {
		return nil, err
	}
	return im.ToMesh()
}

func LoadOBJFromBytes(b []byte) (*Mesh, error) {
	im, err := ReadIndexedOBJ(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return im.ToMesh()
}

// LoadIndexedOBJ loads an OBJ file along with the first material of its
// mtllib, if any.
func LoadIndexedOBJ(path string) (*IndexedMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	p := newOBJParser()
	if err := p.parse(file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.mtllib != "" {
		dir := filepath.Dir(path)
		mat, err := LoadMTL(filepath.Join(dir, p.mtllib), p.usemtl)
		if err != nil {
			slog.Warn("ignoring material library", "obj", path, "mtllib", p.mtllib, "error", err)
		} else {
			p.mesh.Material = mat
		}
	}
	return p.mesh, nil
}

// ReadIndexedOBJ parses OBJ geometry from r. Material references are ignored.
func ReadIndexedOBJ(r io.Reader) (*IndexedMesh, error) {
	p := newOBJParser()
	if err := p.parse(r); err != nil {
		return nil, err
	}
	return p.mesh, nil
}

type objParser struct {
	mesh   *IndexedMesh
	uvs    []float64 // vt values in file order, two per entry
	vertUV []bool    // whether a vertex already got a uv
	mtllib string
	usemtl string
}

func newOBJParser() *objParser {
	return &objParser{mesh: &IndexedMesh{
		Positions: make([]float64, 0, 3*1024),
		Indices:   make([]uint32, 0, 3*1024),
	}}
}

func (p *objParser) parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.parseLine(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(p.uvs) > 0 {
		p.mesh.UVs = p.vertexUVs()
	}
	return nil
}

func (p *objParser) parseLine(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.mesh.Positions = append(p.mesh.Positions, v...)
		p.vertUV = append(p.vertUV, false)
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, v...)
	case "f":
		return p.parseFace(fields[1:])
	case "mtllib":
		if p.mtllib == "" && len(fields) > 1 {
			p.mtllib = strings.Join(fields[1:], " ")
		}
	case "usemtl":
		if p.usemtl == "" && len(fields) > 1 {
			p.usemtl = fields[1]
		}
	}
	return nil
}

// parseFace handles v, v/vt, v//vn and v/vt/vn references and fans polygons
// into triangles.
func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: face with %d vertices", ErrInvalidMesh, len(args))
	}
	nv := len(p.mesh.Positions) / 3
	nt := len(p.uvs) / 2
	fvs := make([]uint32, len(args))
	for i, arg := range args {
		vertex := strings.Split(arg+"//", "/")
		vi, err := fixIndex(vertex[0], nv)
		if err != nil {
			return err
		}
		fvs[i] = uint32(vi)
		if vertex[1] == "" {
			continue
		}
		ti, err := fixIndex(vertex[1], nt)
		if err != nil {
			return err
		}
		p.assignUV(vi, ti)
	}
	for i := 1; i < len(fvs)-1; i++ {
		p.mesh.Indices = append(p.mesh.Indices, fvs[0], fvs[i], fvs[i+1])
	}
	return nil
}

// assignUV records the texture coordinate of a position; OBJ allows a
// position to carry several, the first one wins.
func (p *objParser) assignUV(vi, ti int) {
	if p.vertUV[vi] {
		return
	}
	p.vertUV[vi] = true
	if p.mesh.UVs == nil {
		p.mesh.UVs = make([]float64, 2*len(p.vertUV))
	}
	for len(p.mesh.UVs) < 2*len(p.vertUV) {
		p.mesh.UVs = append(p.mesh.UVs, 0, 0)
	}
	p.mesh.UVs[2*vi] = p.uvs[2*ti]
	p.mesh.UVs[2*vi+1] = p.uvs[2*ti+1]
}

func (p *objParser) vertexUVs() []float64 {
	uvs := p.mesh.UVs
	for len(uvs) < 2*len(p.vertUV) {
		uvs = append(uvs, 0, 0)
	}
	return uvs
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// fixIndex converts a 1-based or negative (relative) OBJ index to 0-based.
func fixIndex(value string, length int) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	i := parsed - 1
	if parsed < 0 {
		i = length + parsed
	}
	if parsed == 0 || i < 0 || i >= length {
		return 0, fmt.Errorf("%w: index %d out of range for %d elements", ErrInvalidMesh, parsed, length)
	}
	return i, nil
}

// LoadMTL reads the material called name from an MTL file; an empty name
// selects the first material in the file.
func LoadMTL(path, name string) (*Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dir := filepath.Dir(path)
	var current *Material
	var found *Material
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if found != nil {
				return found, nil
			}
			current = &Material{Diffuse: White}
			if len(fields) > 1 {
				current.Name = fields[1]
			}
			if name == "" || current.Name == name {
				found = current
			}
		case "Kd":
			if current == nil {
				continue
			}
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s: Kd: %w", path, err)
			}
			current.Diffuse = Color{v[0], v[1], v[2], 1}
		case "map_Kd":
			if current != nil && len(fields) > 1 {
				// options such as -s may precede the file name
				current.Texture = filepath.Join(dir, fields[len(fields)-1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%s: material %q not found", path, name)
	}
	return found, nil
}

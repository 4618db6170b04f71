// Package render exposes the mesh renderer through the small call surface of
// a headless rendering library: initialize a system, create and set up
// models, configure projection and camera, render frames and shut down.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/netisu/trimesh"
	"github.com/netisu/trimesh/internal/config"
)

var (
	ErrInit       = errors.New("render: initialization failed")
	ErrShutdown   = errors.New("render: system is shut down")
	ErrNotSetup   = errors.New("render: model is not set up")
	ErrFrameShape = errors.New("render: frame shape mismatch")
	ErrProjection = errors.New("render: invalid projection")
	ErrCamera     = errors.New("render: invalid camera")
	ErrForeign    = errors.New("render: model belongs to another system")
	ErrNoUVs      = errors.New("render: model has no texture coordinates")
)

// Vec4 carries camera, target and light positions as (x, y, z, w).
type Vec4 = mgl64.Vec4

// Option configures a System at Init.
type Option func(*System)

// WithSupersample renders at n times the resolution and filters down.
func WithSupersample(n int) Option {
	return func(s *System) {
		if n >= 1 {
			s.scale = n
		}
	}
}

// WithProgress receives primitive counts while a frame is rasterized. The
// function is called from several goroutines.
func WithProgress(fn func(n int)) Option {
	return func(s *System) {
		s.progress = fn
	}
}

// WithWireframe draws the triangle edges over the shaded surface.
func WithWireframe(on bool) Option {
	return func(s *System) {
		s.wireframe = on
	}
}

// WithShading overrides the parameters read from the shader directory.
func WithShading(shading config.Shading) Option {
	return func(s *System) {
		s.shading = shading
		s.shadingSet = true
	}
}

// System is an initialized rendering context. It is not safe for concurrent use.
type System struct {
	width      int
	height     int
	scale      int
	shaderDir  string
	shading    config.Shading
	shadingSet bool
	clearColor trimesh.Color
	progress   func(n int)
	wireframe  bool
	models     []*Model
	closed     bool
}

// Init creates a rendering context producing width x height frames. shaderDir
// may be empty; otherwise it must be a directory and may hold shading
// parameters in config.ShadingFilename.
func Init(width, height int, shaderDir string, opts ...Option) (*System, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInit, width, height)
	}
	s := &System{
		width:      width,
		height:     height,
		scale:      1,
		shaderDir:  shaderDir,
		shading:    config.DefaultShading(),
		clearColor: trimesh.Color{R: 0.7, G: 0.88, B: 0.9, A: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	if shaderDir != "" {
		info, err := os.Stat(shaderDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInit, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrInit, shaderDir)
		}
	}
	if shaderDir != "" && !s.shadingSet {
		shading, err := config.LoadShading(shaderDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInit, err)
		}
		s.shading = shading
	}
	slog.Debug("render system initialized", "width", width, "height", height,
		"shaders", shaderDir, "model", s.shading.Model, "supersample", s.scale)
	return s, nil
}

// Shutdown releases every model. It is safe to call more than once.
func (s *System) Shutdown() error {
	if s.closed {
		return nil
	}
	for _, m := range s.models {
		m.release()
	}
	s.models = nil
	s.closed = true
	slog.Debug("render system shut down")
	return nil
}

func (s *System) Width() int  { return s.width }
func (s *System) Height() int { return s.height }

func (s *System) check() error {
	if s.closed {
		return ErrShutdown
	}
	return nil
}

func (s *System) own(m *Model) error {
	if err := s.check(); err != nil {
		return err
	}
	if m == nil || m.sys != s {
		return ErrForeign
	}
	return nil
}

// SetClearColor sets the background color, components in [0, 1].
func (s *System) SetClearColor(r, g, b, a float64) error {
	if err := s.check(); err != nil {
		return err
	}
	s.clearColor = trimesh.Color{R: r, G: g, B: b, A: a}
	return nil
}

// LoadMesh reads a mesh file into flat position and index arrays.
func (s *System) LoadMesh(path string) ([]float64, []uint32, error) {
	if err := s.check(); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	mesh, err := trimesh.LoadIndexed(path)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("mesh loaded", "path", path, "vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(), "elapsed", time.Since(start))
	return mesh.Positions, mesh.Indices, nil
}

// CreateModel copies positions and indices into a new model handle.
func (s *System) CreateModel(positions []float64, indices []uint32) (*Model, error) {
	return s.CreateUVModel(positions, indices, nil)
}

// CreateUVModel is CreateModel with two texture coordinates per vertex.
func (s *System) CreateUVModel(positions []float64, indices []uint32, uvs []float64) (*Model, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	mesh := &trimesh.IndexedMesh{
		Positions: append([]float64(nil), positions...),
		Indices:   append([]uint32(nil), indices...),
		UVs:       append([]float64(nil), uvs...),
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	m := newModel(s, mesh)
	s.models = append(s.models, m)
	return m, nil
}

// SetupModel prepares the model for rendering; it must be called again after
// the geometry changes through UpdateMeshPositions, which does so itself.
func (s *System) SetupModel(m *Model) error {
	if err := s.own(m); err != nil {
		return err
	}
	return m.setup()
}

// SetPerspectiveProjection uses a vertical field of view in degrees.
func (s *System) SetPerspectiveProjection(m *Model, aspect, fov, near, far float64) error {
	if err := s.own(m); err != nil {
		return err
	}
	switch {
	case aspect <= 0:
		return fmt.Errorf("%w: aspect ratio %g", ErrProjection, aspect)
	case fov <= 0 || fov >= 180:
		return fmt.Errorf("%w: field of view %g", ErrProjection, fov)
	case near <= 0 || far <= near:
		return fmt.Errorf("%w: near %g far %g", ErrProjection, near, far)
	}
	m.projection = trimesh.Perspective(fov, aspect, near, far)
	m.projectionSet = true
	return nil
}

func (s *System) SetOrthographicProjection(m *Model, left, right, top, bottom, near, far float64) error {
	if err := s.own(m); err != nil {
		return err
	}
	if left == right || top == bottom || near == far {
		return fmt.Errorf("%w: empty orthographic volume", ErrProjection)
	}
	m.projection = trimesh.Orthographic(left, right, bottom, top, near, far)
	m.projectionSet = true
	return nil
}

// SetProjectionMatrix sets the projection from its four columns.
func (s *System) SetProjectionMatrix(m *Model, col0, col1, col2, col3 Vec4) error {
	if err := s.own(m); err != nil {
		return err
	}
	m.projection = trimesh.MatrixFromColumns(vecW(col0), vecW(col1), vecW(col2), vecW(col3))
	m.projectionSet = true
	return nil
}

// FitProjection picks a perspective field of view that frames the whole model
// from the current camera.
func (s *System) FitProjection(m *Model, aspect, near, far float64) error {
	if err := s.own(m); err != nil {
		return err
	}
	if !m.viewSet {
		return fmt.Errorf("%w: camera must be placed before fitting", ErrProjection)
	}
	if aspect <= 0 || near <= 0 || far <= near {
		return fmt.Errorf("%w: aspect %g near %g far %g", ErrProjection, aspect, near, far)
	}
	m.projection = trimesh.FitPerspective(m.view, m.mesh.BoundingBox(), aspect, near, far)
	m.projectionSet = true
	return nil
}

// SetCameraLookAt places the camera at eye facing target with +Y up. The w
// components are ignored.
func (s *System) SetCameraLookAt(m *Model, eye, target Vec4) error {
	if err := s.own(m); err != nil {
		return err
	}
	e, t := vec3(eye), vec3(target)
	forward := t.Sub(e)
	if forward.Length() == 0 {
		return fmt.Errorf("%w: eye and target coincide at %v", ErrCamera, e)
	}
	up := trimesh.V(0, 1, 0)
	if forward.Normalize().Cross(up).Length() < 1e-9 {
		// looking straight up or down
		up = trimesh.V(0, 0, 1)
	}
	m.view = trimesh.LookAt(e, t, up)
	m.eye = e
	m.viewSet = true
	return nil
}

// SetModelViewMatrix sets the view transform from its four columns.
func (s *System) SetModelViewMatrix(m *Model, col0, col1, col2, col3 Vec4) error {
	if err := s.own(m); err != nil {
		return err
	}
	view := trimesh.MatrixFromColumns(vecW(col0), vecW(col1), vecW(col2), vecW(col3))
	if view.Determinant() == 0 {
		return fmt.Errorf("%w: singular view matrix", ErrCamera)
	}
	m.view = view
	m.eye = view.Inverse().MulPosition(trimesh.Vector{})
	m.viewSet = true
	return nil
}

// SetLightPos places the point light in world space. Until it is called the
// light sits at the camera.
func (s *System) SetLightPos(m *Model, pos Vec4) error {
	if err := s.own(m); err != nil {
		return err
	}
	light := vec3(pos)
	m.light = &light
	return nil
}

// SetTexture uploads an RGBA texture sampled with the model's UVs.
func (s *System) SetTexture(m *Model, pix []uint8, width, height, channels int) error {
	if err := s.own(m); err != nil {
		return err
	}
	if channels != 4 {
		return fmt.Errorf("render: texture should be RGBA, got %d channels", channels)
	}
	if len(m.mesh.UVs) == 0 {
		return ErrNoUVs
	}
	tex, err := trimesh.NewTextureFromRGBA(pix, width, height)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	m.texture = tex
	if m.object != nil {
		m.object.Texture = tex
	}
	return nil
}

// UpdateMeshPositions replaces the vertex positions of a model. With
// updateNormals false the previous normals are kept.
func (s *System) UpdateMeshPositions(m *Model, positions []float64, updateNormals bool) error {
	if err := s.own(m); err != nil {
		return err
	}
	if !updateNormals && len(m.mesh.Normals) == 0 {
		m.mesh.UpdateNormals()
	}
	if err := m.mesh.SetPositions(positions); err != nil {
		return err
	}
	if updateNormals {
		m.mesh.UpdateNormals()
	}
	if m.object == nil {
		return nil
	}
	return m.setup()
}

// RenderMesh renders one frame of the model.
func (s *System) RenderMesh(m *Model) (Frame, error) {
	if err := s.own(m); err != nil {
		return Frame{}, err
	}
	if m.object == nil {
		return Frame{}, ErrNotSetup
	}
	if !m.projectionSet {
		return Frame{}, fmt.Errorf("%w: no projection set", ErrProjection)
	}
	if !m.viewSet {
		return Frame{}, fmt.Errorf("%w: no camera set", ErrCamera)
	}

	start := time.Now()
	scene := s.newScene(m)
	scene.Render()
	if s.wireframe {
		overlay := trimesh.NewSolidColorShader(m.viewProjection(), trimesh.HexColor(s.shading.Wireframe))
		scene.Overlay(overlay, trimesh.NewLineObject(m.object.Mesh.Wireframe()), 1e-4)
	}
	frame := frameFromImage(scene.Image())
	slog.Debug("frame rendered", "width", frame.Width, "height", frame.Height,
		"triangles", len(m.object.Mesh.Triangles), "elapsed", time.Since(start))
	return frame, nil
}

// RenderMeshOnto renders the model and keeps dst wherever the frame shows
// the clear color. dst must have the frame's size and channel count.
func (s *System) RenderMeshOnto(m *Model, dst Frame) (Frame, error) {
	if err := dst.Check(); err != nil {
		return Frame{}, err
	}
	frame, err := s.RenderMesh(m)
	if err != nil {
		return Frame{}, err
	}
	if dst.Width != frame.Width || dst.Height != frame.Height || dst.Channels != frame.Channels {
		return Frame{}, fmt.Errorf("%w: destination %dx%dx%d, frame %dx%dx%d", ErrFrameShape,
			dst.Height, dst.Width, dst.Channels, frame.Height, frame.Width, frame.Channels)
	}
	key := s.clearColor.NRGBA()
	for i := 0; i < len(frame.Pix); i += frame.Channels {
		p := frame.Pix[i : i+3]
		if p[0] == key.R && p[1] == key.G && p[2] == key.B {
			copy(p, dst.Pix[i:i+3])
		}
	}
	return frame, nil
}

func vec3(v Vec4) trimesh.Vector {
	return trimesh.V(v.X(), v.Y(), v.Z())
}

func vecW(v Vec4) trimesh.VectorW {
	return trimesh.VectorW{X: v.X(), Y: v.Y(), Z: v.Z(), W: v.W()}
}

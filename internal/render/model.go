package render

import (
	"fmt"

	"github.com/netisu/trimesh"
)

// Model is a mesh owned by a System together with its camera, projection,
// light and texture state.
type Model struct {
	sys  *System
	mesh *trimesh.IndexedMesh

	// object is the drawable built by SetupModel; nil until then.
	object  *trimesh.Object
	texture trimesh.Texture

	projection    trimesh.Matrix
	projectionSet bool
	view          trimesh.Matrix
	viewSet       bool
	eye           trimesh.Vector
	light         *trimesh.Vector
}

func newModel(sys *System, mesh *trimesh.IndexedMesh) *Model {
	return &Model{
		sys:        sys,
		mesh:       mesh,
		projection: trimesh.Identity(),
		view:       trimesh.Identity(),
	}
}

// Mesh returns the model's geometry. Changes take effect at the next
// SetupModel.
func (m *Model) Mesh() *trimesh.IndexedMesh {
	return m.mesh
}

func (m *Model) setup() error {
	if len(m.mesh.Normals) != len(m.mesh.Positions) {
		m.mesh.UpdateNormals()
	}
	object, err := m.mesh.Object()
	if err != nil {
		return fmt.Errorf("render: setup model: %w", err)
	}
	if m.texture != nil {
		object.Texture = m.texture
	}
	m.object = object
	return nil
}

func (m *Model) release() {
	m.object = nil
	m.texture = nil
	m.sys = nil
}

func (m *Model) viewProjection() trimesh.Matrix {
	return m.projection.Mul(m.view)
}

func (m *Model) lightPosition() trimesh.Vector {
	if m.light != nil {
		return *m.light
	}
	return m.eye
}

// shader builds the lighting shader described by the system's shading
// parameters.
func (s *System) shader(m *Model) trimesh.Shader {
	matrix := m.viewProjection()
	light := m.lightPosition()
	sh := s.shading
	if sh.Model == "toon" {
		toon := trimesh.NewToonShader(matrix, light)
		if len(sh.Toon) > 0 {
			steps := make([]trimesh.ToonStep, len(sh.Toon))
			for i, step := range sh.Toon {
				steps[i] = trimesh.ToonStep{Threshold: step.Threshold, Color: trimesh.HexColor(step.Color)}
			}
			toon.SetSteps(steps)
		}
		return toon
	}
	phong := trimesh.NewPhongShader(matrix, light, m.eye,
		trimesh.HexColor(sh.Ambient), trimesh.HexColor(sh.Diffuse))
	phong.SpecularColor = trimesh.HexColor(sh.Specular)
	phong.SpecularPower = sh.SpecularPower
	phong.EnableOutline = sh.Outline
	phong.OutlineColor = trimesh.HexColor(sh.OutlineColor)
	phong.OutlineFactor = sh.OutlineFactor
	return phong
}

func (s *System) newScene(m *Model) *trimesh.Scene {
	scene := trimesh.NewScene(s.width, s.height, s.scale, s.shader(m))
	dc := scene.Context
	dc.ClearColor = s.clearColor
	dc.Cull = trimesh.CullBack
	dc.FrontFace = trimesh.FaceCCW
	dc.LineWidth = float64(s.scale)
	dc.Progress = s.progress
	scene.AddObject(m.object)
	return scene
}

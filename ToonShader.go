package trimesh

import (
	"math"
	"sort"
)

// ToonStep maps lighting intensities above Threshold to Color.
type ToonStep struct {
	Threshold float64
	Color     Color
}

// ToonShader implements cel shading.
type ToonShader struct {
	Matrix        Matrix
	LightPosition Vector
	Steps         []ToonStep // sorted by descending threshold
	model         Matrix
	normalMatrix  Matrix
}

func NewToonShader(matrix Matrix, lightPosition Vector) *ToonShader {
	return &ToonShader{
		Matrix:        matrix,
		LightPosition: lightPosition,
		Steps: []ToonStep{
			{0.8, Gray(1)},
			{0.5, Gray(0.75)},
			{0.2, Gray(0.45)},
			{0.0, Gray(0.2)},
		},
		model:        Identity(),
		normalMatrix: Identity(),
	}
}

// SetSteps replaces the lighting bands.
func (s *ToonShader) SetSteps(steps []ToonStep) {
	s.Steps = append([]ToonStep(nil), steps...)
	sort.Slice(s.Steps, func(i, j int) bool {
		return s.Steps[i].Threshold > s.Steps[j].Threshold
	})
}

func (s *ToonShader) Model() Matrix {
	return s.model
}

func (s *ToonShader) SetModel(m Matrix) {
	s.model = m
	s.normalMatrix = m.Inverse().Transpose()
}

func (s *ToonShader) Vertex(v Vertex) Vertex {
	v.Position = s.model.MulPosition(v.Position)
	v.Normal = s.normalMatrix.MulDirection(v.Normal)
	v.Output = s.Matrix.MulPositionW(v.Position)
	return v
}

func (s *ToonShader) Fragment(v Vertex, fromObject *Object) Color {
	lightDirection := s.LightPosition.Sub(v.Position).Normalize()
	intensity := math.Max(0, v.Normal.Dot(lightDirection))
	band := Black
	if n := len(s.Steps); n > 0 {
		band = s.Steps[n-1].Color
	}
	for _, step := range s.Steps {
		if intensity > step.Threshold {
			band = step.Color
			break
		}
	}

	if fromObject.Texture != nil {
		return fromObject.Texture.Sample(v.Texture.X, v.Texture.Y).Mul(band).Opaque()
	}
	return fromObject.Color.Mul(band).Alpha(fromObject.Color.A)
}

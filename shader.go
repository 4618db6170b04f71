package trimesh

import (
	"math"
)

// Shader shader interface
type Shader interface {
	Vertex(Vertex) Vertex
	Fragment(Vertex, *Object) Color
}

// ModelShader is a shader that applies a per-object model transform.
type ModelShader interface {
	Shader
	Model() Matrix
	SetModel(Matrix)
}

// PhongShader implements Phong shading from a point light with an optional texture.
// Matrix is the view-projection transform; lighting happens in world space.
type PhongShader struct {
	Matrix         Matrix
	LightPosition  Vector
	CameraPosition Vector
	AmbientColor   Color
	DiffuseColor   Color
	SpecularColor  Color
	SpecularPower  float64
	EnableOutline  bool
	OutlineColor   Color
	OutlineFactor  float64 // lower is thinner
	model          Matrix
	normalMatrix   Matrix
}

func NewPhongShader(matrix Matrix, lightPosition, cameraPosition Vector, ambient Color, diffuse Color) *PhongShader {
	return &PhongShader{
		Matrix:         matrix,
		LightPosition:  lightPosition,
		CameraPosition: cameraPosition,
		AmbientColor:   ambient,
		DiffuseColor:   diffuse,
		SpecularColor:  White,
		SpecularPower:  0,
		OutlineColor:   Black,
		OutlineFactor:  0.05,
		model:          Identity(),
		normalMatrix:   Identity(),
	}
}

func (shader *PhongShader) Model() Matrix {
	return shader.model
}

func (shader *PhongShader) SetModel(m Matrix) {
	shader.model = m
	shader.normalMatrix = m.Inverse().Transpose()
}

func (shader *PhongShader) Vertex(v Vertex) Vertex {
	v.Position = shader.model.MulPosition(v.Position)
	v.Normal = shader.normalMatrix.MulDirection(v.Normal)
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

func (shader *PhongShader) Fragment(v Vertex, fromObject *Object) Color {
	if shader.EnableOutline {
		view := shader.CameraPosition.Sub(v.Position).Normalize()
		// nearly perpendicular to the view direction: silhouette edge
		if math.Abs(view.Dot(v.Normal)) < shader.OutlineFactor {
			return shader.OutlineColor
		}
	}
	if fromObject.UseVertexColor {
		return v.Color
	}

	color := fromObject.Color
	if fromObject.Texture != nil {
		sample := fromObject.Texture.BilinearSample(v.Texture.X, v.Texture.Y)
		if sample.A > 0 {
			color = color.Mul(sample.DivScalar(sample.A).Opaque()).Alpha(color.A * sample.A)
		}
	}

	light := shader.AmbientColor
	lightDirection := shader.LightPosition.Sub(v.Position).Normalize()
	diffuse := math.Max(v.Normal.Dot(lightDirection), 0)
	light = light.Add(shader.DiffuseColor.MulScalar(diffuse))
	if diffuse > 0 && shader.SpecularPower > 0 {
		camera := shader.CameraPosition.Sub(v.Position).Normalize()
		reflected := lightDirection.Negate().Reflect(v.Normal)
		specular := math.Max(camera.Dot(reflected), 0)
		if specular > 0 {
			specular = math.Pow(specular, shader.SpecularPower)
			light = light.Add(shader.SpecularColor.MulScalar(specular))
		}
	}
	return color.Mul(light).Min(White).Alpha(color.A)
}

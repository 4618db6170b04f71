package trimesh

// SolidColorShader renders everything in one color. A positive Thickness
// pushes vertices out along their normals, which is used for outline hulls.
type SolidColorShader struct {
	Matrix    Matrix // view-projection
	Color     Color
	Thickness float64
	model     Matrix
}

func NewSolidColorShader(matrix Matrix, color Color) *SolidColorShader {
	return &SolidColorShader{Matrix: matrix, Color: color, model: Identity()}
}

func (s *SolidColorShader) Model() Matrix {
	return s.model
}

func (s *SolidColorShader) SetModel(m Matrix) {
	s.model = m
}

func (s *SolidColorShader) Vertex(v Vertex) Vertex {
	p := v.Position.Add(v.Normal.MulScalar(s.Thickness))
	v.Position = s.model.MulPosition(p)
	v.Output = s.Matrix.MulPositionW(v.Position)
	return v
}

func (s *SolidColorShader) Fragment(v Vertex, fromObject *Object) Color {
	return s.Color
}

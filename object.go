package trimesh

// Object struct for objects
// objects can be passed to the renderer to be rendered
type Object struct {
	Mesh           *Mesh
	Texture        Texture
	Color          Color
	Matrix         Matrix
	UseVertexColor bool
}

func NewObjectFromMesh(mesh *Mesh) *Object {
	return &Object{Mesh: mesh, Color: White, Matrix: Identity()}
}

func NewLineObject(lines []*Line) *Object {
	return NewObjectFromMesh(NewLineMesh(lines))
}

// LoadObject loads any supported mesh file into an object with the file's
// material applied.
func LoadObject(path string) (*Object, error) {
	im, err := LoadIndexed(path)
	if err != nil {
		return nil, err
	}
	return im.Object()
}

// SetColor sets the color of the object and of its mesh's vertices.
func (o *Object) SetColor(c Color) {
	o.Color = c
	if o.Mesh != nil {
		o.Mesh.SetColor(c)
	}
}

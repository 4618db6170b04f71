package trimesh

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/nfnt/resize"
)

// Scene owns a render context and the objects drawn into it. With Scale > 1
// the frame is rendered at Scale times the size and filtered down.
type Scene struct {
	Context *Context
	Objects []*Object
	Shader  Shader
	Width   int
	Height  int
	Scale   int
}

// NewScene returns a new scene
func NewScene(width, height, scale int, shader Shader) *Scene {
	if scale < 1 {
		scale = 1
	}
	context := NewContext(width*scale, height*scale, shader)
	return &Scene{context, nil, shader, width, height, scale}
}

// AddObject adds an object to the scene
func (s *Scene) AddObject(o *Object) {
	s.Objects = append(s.Objects, o)
}

// AddObjects is a convenience method to add multiple objects
func (s *Scene) AddObjects(objects []*Object) {
	for _, o := range objects {
		s.AddObject(o)
	}
}

// BoundingBox covers every object's mesh in world space.
func (s *Scene) BoundingBox() Box {
	var boxes []Box
	for _, o := range s.Objects {
		if o.Mesh != nil {
			boxes = append(boxes, o.Mesh.BoundingBox().Transform(o.Matrix))
		}
	}
	return BoxForBoxes(boxes)
}

// FitPerspective returns a perspective projection whose field of view just
// contains box as seen through view, padded by 5%. An empty box falls back
// to a 60 degree field of view.
func FitPerspective(view Matrix, box Box, aspect, near, far float64) Matrix {
	if box == EmptyBox {
		return Perspective(60, aspect, near, far)
	}

	var maxAngleX, maxAngleY float64
	for _, corner := range box.Corners() {
		p := view.MulPosition(corner)

		// the camera looks down -Z in view space
		absZ := math.Abs(p.Z)
		if absZ < 1e-6 {
			continue
		}
		angleX := math.Atan(math.Abs(p.X) / absZ)
		if angleX > maxAngleX {
			maxAngleX = angleX
		}
		angleY := math.Atan(math.Abs(p.Y) / absZ)
		if angleY > maxAngleY {
			maxAngleY = angleY
		}
	}

	fovyFromY := 2 * maxAngleY
	fovyFromX := 2 * math.Atan(math.Tan(maxAngleX)/aspect)
	fovy := Degrees(math.Max(fovyFromX, fovyFromY)) * 1.05
	if fovy <= 0 || fovy >= 179 {
		fovy = 60
	}
	return Perspective(fovy, aspect, near, far)
}

// Draw clears the buffers, draws every object and returns the frame at the
// scene's nominal size.
func (s *Scene) Draw() *image.NRGBA {
	s.Render()
	return s.Image()
}

// Render clears the buffers and draws every object with the scene shader.
func (s *Scene) Render() {
	s.Context.Shader = s.Shader
	s.Context.ClearColorBuffer()
	s.Context.ClearDepthBuffer()
	for _, o := range s.Objects {
		s.Context.DrawObject(o)
	}
}

// Overlay draws o with another shader on top of what was rendered, pulled
// towards the camera by bias in depth so coplanar lines win.
func (s *Scene) Overlay(shader Shader, o *Object, bias float64) {
	prevShader, prevBias := s.Context.Shader, s.Context.DepthBias
	s.Context.Shader = shader
	s.Context.DepthBias = -bias
	s.Context.DrawObject(o)
	s.Context.Shader, s.Context.DepthBias = prevShader, prevBias
}

// Image returns a copy of the color buffer, filtered down to the nominal size.
func (s *Scene) Image() *image.NRGBA {
	if s.Scale == 1 {
		return cloneNRGBA(s.Context.ColorBuffer)
	}
	im := resize.Resize(uint(s.Width), uint(s.Height), s.Context.ColorBuffer, resize.Bilinear)
	return cloneNRGBA(im)
}

// DrawToWriter draws the scene and encodes it as PNG.
func (s *Scene) DrawToWriter(w io.Writer) error {
	return png.Encode(w, s.Draw())
}

func cloneNRGBA(im image.Image) *image.NRGBA {
	b := im.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), im, b.Min, draw.Src)
	return dst
}

package trimesh

import (
	"image"
	"math"
	"runtime"
	"sync"
)

// Face selects which winding counts as front facing.
type Face int

const (
	_ Face = iota
	FaceCW
	FaceCCW
)

type Cull int

const (
	_ Cull = iota
	CullNone
	CullFront
	CullBack
)

// progressBatch is how many primitives a worker draws between Progress calls.
const progressBatch = 256

// lockStripes is the number of mutexes guarding color and depth writes.
const lockStripes = 256

// Context rasterizes primitives into a color buffer and a depth buffer.
type Context struct {
	Width       int
	Height      int
	Shader      Shader
	ColorBuffer *image.NRGBA
	DepthBuffer []float64
	ClearColor  Color
	ReadDepth   bool
	WriteDepth  bool
	WriteColor  bool
	AlphaBlend  bool
	Wireframe   bool
	FrontFace   Face
	Cull        Cull
	LineWidth   float64
	DepthBias   float64
	// Progress, when set, receives the number of primitives drawn since the
	// previous call. It is called from several goroutines at once.
	Progress func(n int)

	screen Matrix
	locks  []sync.Mutex
}

// NewContext returns a context with depth testing, alpha blending and back
// face culling enabled and a transparent clear color.
func NewContext(width, height int, shader Shader) *Context {
	dc := &Context{
		Width:       width,
		Height:      height,
		Shader:      shader,
		ColorBuffer: image.NewNRGBA(image.Rect(0, 0, width, height)),
		DepthBuffer: make([]float64, width*height),
		ClearColor:  Transparent,
		ReadDepth:   true,
		WriteDepth:  true,
		WriteColor:  true,
		AlphaBlend:  true,
		FrontFace:   FaceCCW,
		Cull:        CullBack,
		LineWidth:   2,
		screen:      Screen(width, height),
		locks:       make([]sync.Mutex, lockStripes),
	}
	dc.ClearDepthBuffer()
	return dc
}

func (dc *Context) Image() image.Image {
	return dc.ColorBuffer
}

// Pixels returns a copy of the color buffer as tightly packed RGBA rows.
func (dc *Context) Pixels() []uint8 {
	row := dc.Width * 4
	pix := make([]uint8, row*dc.Height)
	for y := 0; y < dc.Height; y++ {
		src := dc.ColorBuffer.Pix[y*dc.ColorBuffer.Stride:]
		copy(pix[y*row:(y+1)*row], src[:row])
	}
	return pix
}

// ClearColorBufferWith fills the color buffer with c.
func (dc *Context) ClearColorBufferWith(c Color) {
	nrgba := c.NRGBA()
	im := dc.ColorBuffer
	if dc.Width == 0 || dc.Height == 0 {
		return
	}
	first := im.Pix[:dc.Width*4]
	first[0], first[1], first[2], first[3] = nrgba.R, nrgba.G, nrgba.B, nrgba.A
	// double the filled prefix until the row is complete
	for n := 4; n < len(first); n *= 2 {
		copy(first[n:], first[:n])
	}
	for y := 1; y < dc.Height; y++ {
		copy(im.Pix[y*im.Stride:], first)
	}
}

func (dc *Context) ClearColorBuffer() {
	dc.ClearColorBufferWith(dc.ClearColor)
}

func (dc *Context) ClearDepthBuffer() {
	for i := range dc.DepthBuffer {
		dc.DepthBuffer[i] = math.MaxFloat64
	}
}

// toScreen divides by w and maps the result to pixel coordinates.
func (dc *Context) toScreen(v Vertex) (ndc, screen Vector) {
	ndc = v.Output.DivScalar(v.Output.W).Vector()
	return ndc, dc.screen.MulPosition(ndc)
}

// culled reports whether a triangle with the given normalized device
// coordinates faces away according to FrontFace and Cull.
func (dc *Context) culled(n0, n1, n2 Vector) bool {
	if dc.Cull == CullNone {
		return false
	}
	area := (n1.X-n0.X)*(n2.Y-n0.Y) - (n2.X-n0.X)*(n1.Y-n0.Y)
	if dc.FrontFace == FaceCW {
		area = -area
	}
	switch dc.Cull {
	case CullBack:
		return area <= 0
	case CullFront:
		return area >= 0
	}
	return false
}

func (dc *Context) drawClippedTriangle(v0, v1, v2 Vertex, fromObject *Object) {
	n0, s0 := dc.toScreen(v0)
	n1, s1 := dc.toScreen(v1)
	n2, s2 := dc.toScreen(v2)
	if dc.culled(n0, n1, n2) {
		return
	}
	if dc.Wireframe {
		dc.line(v0, v1, s0, s1, fromObject)
		dc.line(v1, v2, s1, s2, fromObject)
		dc.line(v2, v0, s2, s0, fromObject)
		return
	}
	dc.rasterize(v0, v1, v2, s0, s1, s2, fromObject)
}

func (dc *Context) drawClippedLine(v0, v1 Vertex, fromObject *Object) {
	_, s0 := dc.toScreen(v0)
	_, s1 := dc.toScreen(v1)
	dc.line(v0, v1, s0, s1, fromObject)
}

// DrawTriangle shades, clips and rasterizes one triangle.
func (dc *Context) DrawTriangle(t *Triangle, fromObject *Object) {
	v1 := dc.Shader.Vertex(t.V1)
	v2 := dc.Shader.Vertex(t.V2)
	v3 := dc.Shader.Vertex(t.V3)
	if !v1.Outside() && !v2.Outside() && !v3.Outside() {
		dc.drawClippedTriangle(v1, v2, v3, fromObject)
		return
	}
	for _, c := range ClipTriangle(&Triangle{v1, v2, v3}) {
		dc.drawClippedTriangle(c.V1, c.V2, c.V3, fromObject)
	}
}

func (dc *Context) DrawLine(l *Line, fromObject *Object) {
	v1 := dc.Shader.Vertex(l.V1)
	v2 := dc.Shader.Vertex(l.V2)
	if !v1.Outside() && !v2.Outside() {
		dc.drawClippedLine(v1, v2, fromObject)
		return
	}
	if c := ClipLine(NewLine(v1, v2)); c != nil {
		dc.drawClippedLine(c.V1, c.V2, fromObject)
	}
}

// DrawMesh splits the mesh's primitives across one worker per logical CPU.
// Worker i draws every primitive whose index is i modulo the worker count.
func (dc *Context) DrawMesh(mesh *Mesh, fromObject *Object) {
	workers := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(first int) {
			defer wg.Done()
			dc.drawStride(mesh, fromObject, first, workers)
		}(w)
	}
	wg.Wait()
}

func (dc *Context) drawStride(mesh *Mesh, fromObject *Object, first, stride int) {
	pending := 0
	tick := func() {
		pending++
		if pending == progressBatch && dc.Progress != nil {
			dc.Progress(pending)
			pending = 0
		}
	}
	for i := first; i < len(mesh.Triangles); i += stride {
		dc.DrawTriangle(mesh.Triangles[i], fromObject)
		tick()
	}
	for i := first; i < len(mesh.Lines); i += stride {
		dc.DrawLine(mesh.Lines[i], fromObject)
		tick()
	}
	if pending > 0 && dc.Progress != nil {
		dc.Progress(pending)
	}
}

// DrawObject draws o with its model matrix applied when the shader supports it.
func (dc *Context) DrawObject(o *Object) {
	if o.Mesh == nil {
		return
	}
	if s, ok := dc.Shader.(ModelShader); ok {
		prev := s.Model()
		s.SetModel(prev.Mul(o.Matrix))
		defer s.SetModel(prev)
	}
	dc.DrawMesh(o.Mesh, o)
}

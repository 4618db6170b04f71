package trimesh

import "math"

// edge is twice the signed area of the triangle (a, b, c) in screen space.
func edge(a, b, c Vector) float64 {
	return (b.X-c.X)*(a.Y-c.Y) - (b.Y-c.Y)*(a.X-c.X)
}

// pixelBounds is the screen rectangle covering a triangle, clamped to the
// buffer.
func (dc *Context) pixelBounds(s0, s1, s2 Vector) (x0, y0, x1, y1 int) {
	lo := s0.Min(s1.Min(s2)).Floor()
	hi := s0.Max(s1.Max(s2)).Ceil()
	x0 = ClampInt(int(lo.X), 0, dc.Width-1)
	x1 = ClampInt(int(hi.X), 0, dc.Width-1)
	y0 = ClampInt(int(lo.Y), 0, dc.Height-1)
	y1 = ClampInt(int(hi.Y), 0, dc.Height-1)
	return
}

// rasterize walks the pixel centers inside the triangle's bounds with
// incrementally updated edge functions. Either winding is accepted.
func (dc *Context) rasterize(v0, v1, v2 Vertex, s0, s1, s2 Vector, fromObject *Object) {
	area := edge(s0, s1, s2)
	if area == 0 || math.IsNaN(area) {
		return
	}
	x0, y0, x1, y1 := dc.pixelBounds(s0, s1, s2)

	// edge values at the first pixel center and their per-pixel steps
	origin := Vector{float64(x0) + 0.5, float64(y0) + 0.5, 0}
	row := [3]float64{edge(s1, s2, origin), edge(s2, s0, origin), edge(s0, s1, origin)}
	stepX := [3]float64{s2.Y - s1.Y, s0.Y - s2.Y, s1.Y - s0.Y}
	stepY := [3]float64{s1.X - s2.X, s2.X - s0.X, s0.X - s1.X}

	inv := 1 / area
	invW := [3]float64{1 / v0.Output.W, 1 / v1.Output.W, 1 / v2.Output.W}

	for y := y0; y <= y1; y++ {
		w := row
		for x := x0; x <= x1; x++ {
			b0, b1, b2 := w[0]*inv, w[1]*inv, w[2]*inv
			w[0] += stepX[0]
			w[1] += stepX[1]
			w[2] += stepX[2]
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			z := b0*s0.Z + b1*s1.Z + b2*s2.Z
			// unlocked pre-check; writeFragment repeats it under the lock
			if dc.ReadDepth && z+dc.DepthBias > dc.DepthBuffer[y*dc.Width+x] {
				continue
			}

			// perspective-correct weights
			b := VectorW{b0 * invW[0], b1 * invW[1], b2 * invW[2], 0}
			b.W = 1 / (b.X + b.Y + b.Z)
			c := dc.Shader.Fragment(InterpolateVertexes(v0, v1, v2, b), fromObject)
			if c.A <= 0 {
				continue
			}
			dc.writeFragment(x, y, z, c)
		}
		row[0] += stepY[0]
		row[1] += stepY[1]
		row[2] += stepY[2]
	}
}

// writeFragment depth tests and stores one shaded fragment. The test and the
// writes happen under the pixel's lock stripe.
func (dc *Context) writeFragment(x, y int, z float64, c Color) {
	i := y*dc.Width + x
	lock := &dc.locks[(x+y)%lockStripes]
	lock.Lock()
	defer lock.Unlock()
	if dc.ReadDepth && z+dc.DepthBias > dc.DepthBuffer[i] {
		return
	}
	if dc.WriteDepth {
		dc.DepthBuffer[i] = z
	}
	if dc.WriteColor {
		p := dc.ColorBuffer.Pix[i*4 : i*4+4 : i*4+4]
		if dc.AlphaBlend && c.A < 1 {
			blendOver(p, c)
		} else {
			n := c.NRGBA()
			p[0], p[1], p[2], p[3] = n.R, n.G, n.B, n.A
		}
	}
}

// blendOver composites c over the 8-bit pixel p.
func blendOver(p []uint8, c Color) {
	sr, sg, sb, sa := c.NRGBA().RGBA()
	keep := (0xffff - sa) * 0x101
	src := [4]uint32{sr, sg, sb, sa}
	for k := range p {
		p[k] = uint8((uint32(p[k])*keep/0xffff + src[k]) >> 8)
	}
}

// line rasterizes a segment as two triangles LineWidth pixels wide, extended
// by half the width past each end.
func (dc *Context) line(v0, v1 Vertex, s0, s1 Vector, fromObject *Object) {
	half := dc.LineWidth / 2
	side := s1.Sub(s0).Perpendicular().MulScalar(half)
	s0 = s0.Add(s0.Sub(s1).Normalize().MulScalar(half))
	s1 = s1.Add(s1.Sub(s0).Normalize().MulScalar(half))
	a0, b0 := s0.Add(side), s0.Sub(side)
	a1, b1 := s1.Add(side), s1.Sub(side)
	dc.rasterize(v1, v0, v0, b1, b0, a0, fromObject)
	dc.rasterize(v1, v1, v0, a1, b1, a0, fromObject)
}

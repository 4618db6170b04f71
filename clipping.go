package trimesh

type clipPlane struct {
	P, N VectorW
}

// clipPlanes bound the canonical view volume -w <= x, y, z <= w.
var clipPlanes = []clipPlane{
	{VectorW{1, 0, 0, 1}, VectorW{-1, 0, 0, 1}},
	{VectorW{-1, 0, 0, 1}, VectorW{1, 0, 0, 1}},
	{VectorW{0, 1, 0, 1}, VectorW{0, -1, 0, 1}},
	{VectorW{0, -1, 0, 1}, VectorW{0, 1, 0, 1}},
	{VectorW{0, 0, 1, 1}, VectorW{0, 0, -1, 1}},
	{VectorW{0, 0, -1, 1}, VectorW{0, 0, 1, 1}},
}

func (p clipPlane) pointInFront(v VectorW) bool {
	return v.Sub(p.P).Dot(p.N) > 0
}

// intersectSegment returns the parameter t at which v0 + t*(v1-v0) crosses the plane.
func (p clipPlane) intersectSegment(v0, v1 VectorW) float64 {
	u := v1.Sub(v0)
	w := v0.Sub(p.P)
	d := p.N.Dot(u)
	n := -p.N.Dot(w)
	return n / d
}

// clipPoint is a clip-space position together with its barycentric weights
// relative to the unclipped triangle.
type clipPoint struct {
	P VectorW
	B VectorW
}

func (a clipPoint) lerp(b clipPoint, t float64) clipPoint {
	return clipPoint{
		a.P.Add(b.P.Sub(a.P).MulScalar(t)),
		a.B.Add(b.B.Sub(a.B).MulScalar(t)),
	}
}

func sutherlandHodgman(points []clipPoint, planes []clipPlane) []clipPoint {
	output := points
	for _, plane := range planes {
		input := output
		output = nil
		if len(input) == 0 {
			return nil
		}
		s := input[len(input)-1]
		for _, e := range input {
			if plane.pointInFront(e.P) {
				if !plane.pointInFront(s.P) {
					output = append(output, s.lerp(e, plane.intersectSegment(s.P, e.P)))
				}
				output = append(output, e)
			} else if plane.pointInFront(s.P) {
				output = append(output, s.lerp(e, plane.intersectSegment(s.P, e.P)))
			}
			s = e
		}
	}
	return output
}

// ClipTriangle clips a triangle whose vertices carry clip-space Output positions
// and fans the remaining polygon back into triangles.
func ClipTriangle(t *Triangle) []*Triangle {
	points := []clipPoint{
		{t.V1.Output, VectorW{1, 0, 0, 1}},
		{t.V2.Output, VectorW{0, 1, 0, 1}},
		{t.V3.Output, VectorW{0, 0, 1, 1}},
	}
	clipped := sutherlandHodgman(points, clipPlanes)
	var result []*Triangle
	for i := 2; i < len(clipped); i++ {
		v1 := InterpolateVertexes(t.V1, t.V2, t.V3, clipped[0].B)
		v2 := InterpolateVertexes(t.V1, t.V2, t.V3, clipped[i-1].B)
		v3 := InterpolateVertexes(t.V1, t.V2, t.V3, clipped[i].B)
		v1.Output = clipped[0].P
		v2.Output = clipped[i-1].P
		v3.Output = clipped[i].P
		result = append(result, &Triangle{v1, v2, v3})
	}
	return result
}

// ClipLine clips a line segment to the view volume. It returns nil when the
// segment lies entirely outside.
func ClipLine(l *Line) *Line {
	t0, t1 := 0.0, 1.0
	w1 := l.V1.Output
	w2 := l.V2.Output
	for _, plane := range clipPlanes {
		f1 := plane.pointInFront(w1)
		f2 := plane.pointInFront(w2)
		switch {
		case f1 && f2:
			continue
		case !f1 && !f2:
			return nil
		}
		t := plane.intersectSegment(w1, w2)
		if f1 {
			if t < t1 {
				t1 = t
			}
		} else if t > t0 {
			t0 = t
		}
	}
	if t0 > t1 {
		return nil
	}
	v1 := lerpVertex(l.V1, l.V2, t0)
	v2 := lerpVertex(l.V1, l.V2, t1)
	return NewLine(v1, v2)
}

func lerpVertex(a, b Vertex, t float64) Vertex {
	w := VectorW{1 - t, t, 0, 1}
	v := InterpolateVertexes(a, b, b, w)
	v.Output = a.Output.Add(b.Output.Sub(a.Output).MulScalar(t))
	return v
}

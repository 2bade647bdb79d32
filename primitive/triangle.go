package primitive

import (
	"sort"

	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/shaders"
)

// TrianglePrimitive accumulates shaded vertices into triangles and
// implements the triangle-specific Clip/PerpDiv/Viewport/Cull/
// Rasterize/Interpolate stages. Grounded on RenderPrimitive.h's
// TrianglePrimitive and its .cpp implementation.
type TrianglePrimitive struct {
	mode     Kind
	onEmit   func(*TrianglePrimitive)
	vertices [3]Vertex

	cursor  int
	started bool

	fanFirst   Vertex
	hist0      Vertex
	hist1      Vertex
	even       bool

	invArea float32
}

func NewTrianglePrimitive(mode Kind, onEmit func(*TrianglePrimitive)) *TrianglePrimitive {
	assertKindInRange(KindTriangles, KindTriangleFan, mode, "triangle")
	return &TrianglePrimitive{mode: mode, onEmit: onEmit}
}

func (t *TrianglePrimitive) SetMode(mode Kind) {
	assertKindInRange(KindTriangles, KindTriangleFan, mode, "triangle")
	t.mode = mode
}

func (t *TrianglePrimitive) Reset() {
	*t = TrianglePrimitive{mode: t.mode, onEmit: t.onEmit}
}

func (t *TrianglePrimitive) recomputeInvArea() {
	a := fromVec4XY(t.vertices[0].Pos)
	b := fromVec4XY(t.vertices[1].Pos)
	c := fromVec4XY(t.vertices[2].Pos)
	ac := sub2(c, a)
	ab := sub2(b, a)
	area := ac.X*ab.Y - ac.Y*ab.X
	if area < 0 {
		area = -area
	}
	t.invArea = 1 / area
}

func (t *TrianglePrimitive) emit() {
	t.recomputeInvArea()
	t.onEmit(t)
}

// ProcessVertex accumulates pos/vars per §4.5.1: the first three
// vertices of any mode fill the triangle's slots directly; once a
// strip or fan has emitted its first triangle, subsequent vertices
// extend it per that mode's vertex-sharing convention.
func (t *TrianglePrimitive) ProcessVertex(pos gglm.Vec4, vars shaders.InOutVars) {
	v := Vertex{Pos: pos, Vars: cloneVars(vars)}

	if t.mode == KindTriangles || !t.started {
		t.vertices[t.cursor] = v
		t.cursor++
		if t.cursor == 3 {
			t.cursor = 0
			if t.mode != KindTriangles {
				t.started = true
				t.fanFirst = t.vertices[0]
				t.hist0 = t.vertices[1]
				t.hist1 = t.vertices[2]
				t.even = false
			}
			t.emit()
		}
		return
	}

	switch t.mode {
	case KindTriangleStrip:
		if t.even {
			t.vertices = [3]Vertex{t.hist0, t.hist1, v}
		} else {
			t.vertices = [3]Vertex{t.hist1, t.hist0, v}
		}
		t.even = !t.even
		t.hist0, t.hist1 = t.hist1, v
	case KindTriangleFan:
		t.vertices = [3]Vertex{t.fanFirst, t.hist1, v}
		t.hist1 = v
	}
	t.emit()
}

func isCCW(v [3]Vertex) bool {
	ab := sub2(fromVec4XY(v[1].Pos), fromVec4XY(v[0].Pos))
	ac := sub2(fromVec4XY(v[2].Pos), fromVec4XY(v[0].Pos))
	return ac.X*ab.Y-ac.Y*ab.X <= 0
}

// cutEdgeTriangle splits edge a-b against the near plane z = -w per
// §4.5.1's edge-cut formula, copying integer attributes from a and
// lerping float attributes.
func cutEdgeTriangle(a, b Vertex) Vertex {
	denom := (a.Pos.Z() + a.Pos.W()) - (b.Pos.Z() + b.Pos.W())
	t := (a.Pos.Z() + a.Pos.W()) / denom
	return Vertex{Pos: lerpVec4(a.Pos, b.Pos, t), Vars: lerpVars(a.Vars, b.Vars, t)}
}

// Clip implements the near-plane clipping situations of §4.5.1. Unlike
// the reference implementation — which computes a stable sort by z but
// then (apparently inadvertently) classifies the three situation bits
// against the unsorted vertex array — this sorts the vertices by z
// first and classifies against the sorted order, then generalizes the
// two explicitly-coded situations (one vertex in front / two vertices
// in front) to "how many of the three sorted vertices are in front",
// so every reachable case is handled instead of only the two the
// source bothered to write out.
func (t *TrianglePrimitive) Clip(emit func(RenderPrimitive)) {
	order := [3]int{0, 1, 2}
	sort.SliceStable(order[:], func(i, j int) bool {
		return t.vertices[order[i]].Pos.Z() < t.vertices[order[j]].Pos.Z()
	})

	var inFront [3]bool
	validCount := 0
	for i, idx := range order {
		v := t.vertices[idx]
		inFront[i] = v.Pos.Z() >= -v.Pos.W()
		if inFront[i] {
			validCount++
		}
	}

	if validCount == 3 {
		emit(t)
		return
	}
	if validCount == 0 {
		return
	}

	sorted := [3]Vertex{t.vertices[order[0]], t.vertices[order[1]], t.vertices[order[2]]}

	if validCount == 2 {
		var invalid Vertex
		var valid [2]Vertex
		vi := 0
		for i, ok := range inFront {
			if ok {
				valid[vi] = sorted[i]
				vi++
			} else {
				invalid = sorted[i]
			}
		}

		i1 := cutEdgeTriangle(valid[0], invalid)
		i2 := cutEdgeTriangle(valid[1], invalid)

		p1 := &TrianglePrimitive{mode: t.mode, vertices: [3]Vertex{valid[0], i1, i2}}
		p2 := &TrianglePrimitive{mode: t.mode, vertices: [3]Vertex{valid[0], i2, valid[1]}}
		if isCCW(t.vertices) != isCCW(p1.vertices) {
			p1.vertices[1], p1.vertices[2] = p1.vertices[2], p1.vertices[1]
			p2.vertices[1], p2.vertices[2] = p2.vertices[2], p2.vertices[1]
		}
		p1.recomputeInvArea()
		p2.recomputeInvArea()
		emit(p1)
		emit(p2)
		return
	}

	// validCount == 1
	var valid Vertex
	var invalid [2]Vertex
	ii := 0
	for i, ok := range inFront {
		if ok {
			valid = sorted[i]
		} else {
			invalid[ii] = sorted[i]
			ii++
		}
	}

	i1 := cutEdgeTriangle(valid, invalid[1])
	i2 := cutEdgeTriangle(valid, invalid[0])

	p1 := &TrianglePrimitive{mode: t.mode, vertices: [3]Vertex{i1, i2, valid}}
	if isCCW(t.vertices) != isCCW(p1.vertices) {
		p1.vertices[1], p1.vertices[2] = p1.vertices[2], p1.vertices[1]
	}
	p1.recomputeInvArea()
	emit(p1)
}

func (t *TrianglePrimitive) PerpDiv() {
	for i := range t.vertices {
		p := &t.vertices[i].Pos
		w := p.W()
		*p = gglm.Vec4{Data: [4]float32{p.X() / w, p.Y() / w, p.Z() / w, w}}
	}
}

func (t *TrianglePrimitive) Viewport(width, height uint32) {
	for i := range t.vertices {
		p := &t.vertices[i].Pos
		*p = gglm.Vec4{Data: [4]float32{
			(p.X() + 1) * float32(width) * 0.5,
			(p.Y() + 1) * float32(height) * 0.5,
			p.Z(), p.W(),
		}}
	}
}

func (t *TrianglePrimitive) Cull(mode CullFace) bool {
	switch mode {
	case CullNone:
		return false
	case CullCCW:
		return isCCW(t.vertices)
	default: // CullCW
		return !isCCW(t.vertices)
	}
}

// Rasterize dispatches to the solid Pineda scan or the wireframe
// Bresenham edge draw per §4.5.1.
func (t *TrianglePrimitive) Rasterize(wireframe bool, width, height uint32, emit func(gglm.Vec4)) {
	if wireframe {
		t.wireframe(width, height, emit)
		return
	}
	t.solid(width, height, emit)
}

func (t *TrianglePrimitive) solid(width, height uint32, emit func(gglm.Vec4)) {
	v := [3]vec2{
		fromVec4XY(t.vertices[0].Pos),
		fromVec4XY(t.vertices[1].Pos),
		fromVec4XY(t.vertices[2].Pos),
	}

	ab := sub2(v[1], v[0])
	ac := sub2(v[2], v[0])
	if ac.X*ab.Y-ac.Y*ab.X >= 0 {
		v[1], v[2] = v[2], v[1]
	}

	bminX := floor32(minOf3(v[0].X, v[1].X, v[2].X))
	bminY := floor32(minOf3(v[0].Y, v[1].Y, v[2].Y))
	bmaxX := ceil32(maxOf3(v[0].X, v[1].X, v[2].X))
	bmaxY := ceil32(maxOf3(v[0].Y, v[1].Y, v[2].Y))

	if bminX < 0 {
		bminX = 0
	}
	if bminY < 0 {
		bminY = 0
	}
	if bmaxX > float32(width) {
		bmaxX = float32(width)
	}
	if bmaxY > float32(height) {
		bmaxY = float32(height)
	}

	d1 := sub2(v[1], v[0])
	d2 := sub2(v[2], v[1])
	d3 := sub2(v[0], v[2])

	e1 := (bminY-v[0].Y+0.5)*d1.X - (bminX-v[0].X+0.5)*d1.Y
	e2 := (bminY-v[1].Y+0.5)*d2.X - (bminX-v[1].X+0.5)*d2.Y
	e3 := (bminY-v[2].Y+0.5)*d3.X - (bminX-v[2].X+0.5)*d3.Y

	for y := int(bminY); y < int(bmaxY); y++ {
		t1, t2, t3 := e1, e2, e3
		for x := int(bminX); x < int(bmaxX); x++ {
			if t1 >= 0 && t2 >= 0 && t3 >= 0 {
				emit(gglm.Vec4{Data: [4]float32{float32(x) + 0.5, float32(y) + 0.5, 0, 1}})
			}
			t1 -= d1.Y
			t2 -= d2.Y
			t3 -= d3.Y
		}
		e1 += d1.X
		e2 += d2.X
		e3 += d3.X
	}
}

func (t *TrianglePrimitive) wireframe(width, height uint32, emit func(gglm.Vec4)) {
	edges := [3][2]vec2{
		{fromVec4XY(t.vertices[0].Pos), fromVec4XY(t.vertices[1].Pos)},
		{fromVec4XY(t.vertices[1].Pos), fromVec4XY(t.vertices[2].Pos)},
		{fromVec4XY(t.vertices[2].Pos), fromVec4XY(t.vertices[0].Pos)},
	}
	min := vec2{0, 0}
	max := vec2{float32(width) - 1, float32(height) - 1}

	for _, e := range edges {
		a, b, ok := lineClip2D(e[0], e[1], min, max)
		if !ok {
			continue
		}
		bresenhamLine([2]int{int(a.X), int(a.Y)}, [2]int{int(b.X), int(b.Y)}, emit)
	}
}

// Interpolate implements §4.5.1's perspective-correct barycentric
// interpolation: the absolute-value cross-product lambdas, the
// corrected `la/a.w + lb/b.w + lc/c.w` weight sum (spec.md §9 flags a
// buggy `la/a.w + lb/a.w + lc/a.w` variant; this uses the corrected
// form), and component-wise attribute blending.
func (t *TrianglePrimitive) Interpolate(pos *gglm.Vec4, vars shaders.InOutVars) {
	a, b, c := t.vertices[0].Pos, t.vertices[1].Pos, t.vertices[2].Pos
	p := fromVec4XY(*pos)

	fa := sub2(fromVec4XY(a), p)
	fb := sub2(fromVec4XY(b), p)
	fc := sub2(fromVec4XY(c), p)

	la := volume2(fb, fc) * t.invArea
	lb := volume2(fa, fc) * t.invArea
	lc := volume2(fb, fa) * t.invArea

	s := la/a.W() + lb/b.W() + lc/c.W()
	pclX := la / (a.W() * s)
	pclY := lb / (b.W() * s)
	pclZ := lc / (c.W() * s)

	av, bv, cv := t.vertices[0].Vars, t.vertices[1].Vars, t.vertices[2].Vars
	for k, a0 := range av {
		if a0.Integer {
			vars[k] = a0
			continue
		}
		b0, bok := bv[k]
		c0, cok := cv[k]
		if !bok || !cok {
			vars[k] = a0
			continue
		}
		af, bf, cf := a0.AsVec4(), b0.AsVec4(), c0.AsVec4()
		res := a0
		res.SetFromVec4(gglm.Vec4{Data: [4]float32{
			pclX*af.X() + pclY*bf.X() + pclZ*cf.X(),
			pclX*af.Y() + pclY*bf.Y() + pclZ*cf.Y(),
			pclX*af.Z() + pclY*bf.Z() + pclZ*cf.Z(),
			pclX*af.W() + pclY*bf.W() + pclZ*cf.W(),
		}})
		vars[k] = res
	}

	pos.Data[2] = pclX*a.Z() + pclY*b.Z() + pclZ*c.Z()
}

func volume2(u, v vec2) float32 {
	x := u.X*v.Y - u.Y*v.X
	if x < 0 {
		return -x
	}
	return x
}

func floor32(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func ceil32(v float32) float32 {
	i := float32(int32(v))
	if v > 0 && i != v {
		i++
	}
	return i
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

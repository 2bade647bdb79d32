package primitive

import (
	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/shaders"
)

// LinePrimitive accumulates shaded vertices into 2-vertex segments and
// implements the line-specific Clip/PerpDiv/Viewport/Cull/Rasterize/
// Interpolate stages. Grounded on RenderPrimitive.h/.cpp's
// LinePrimitive.
type LinePrimitive struct {
	mode     Kind
	onEmit   func(*LinePrimitive)
	vertices [2]Vertex

	cursor   int
	started  bool
	loopLast Vertex
	loopStop Vertex
}

func NewLinePrimitive(mode Kind, onEmit func(*LinePrimitive)) *LinePrimitive {
	assertKindInRange(KindLines, KindLineLoop, mode, "line")
	return &LinePrimitive{mode: mode, onEmit: onEmit}
}

func (l *LinePrimitive) SetMode(mode Kind) {
	assertKindInRange(KindLines, KindLineLoop, mode, "line")
	l.mode = mode
}

func (l *LinePrimitive) Reset() {
	*l = LinePrimitive{mode: l.mode, onEmit: l.onEmit}
}

func (l *LinePrimitive) emit() { l.onEmit(l) }

// ProcessVertex accumulates per §4.5.2: Lines pairs vertices two at a
// time; LineStrip shares each new vertex's predecessor with the next
// segment; LineLoop behaves as LineStrip but also closes from the last
// vertex back to the first once ended (see Close).
func (l *LinePrimitive) ProcessVertex(pos gglm.Vec4, vars shaders.InOutVars) {
	v := Vertex{Pos: pos, Vars: cloneVars(vars)}

	if l.mode == KindLines || !l.started {
		l.vertices[l.cursor] = v
		l.cursor++
		if l.cursor == 2 {
			l.cursor = 0
			if l.mode != KindLines {
				l.started = true
				l.loopStop = l.vertices[0]
				l.loopLast = l.vertices[1]
			}
			l.emit()
		}
		return
	}

	l.vertices = [2]Vertex{l.loopLast, v}
	l.loopLast = v
	l.emit()
}

// Close emits the final closing segment of a LineLoop, from the last
// accumulated vertex back to the first. A no-op for Lines/LineStrip or
// a loop that never started.
func (l *LinePrimitive) Close() {
	if l.mode != KindLineLoop || !l.started {
		return
	}
	l.vertices = [2]Vertex{l.loopLast, l.loopStop}
	l.emit()
}

// Clip implements §4.5.2's 2-bit near-plane classification: both
// endpoints in front discards, both behind emits unchanged, one of
// each moves the in-front endpoint to the near plane along the
// connecting line in clip space.
func (l *LinePrimitive) Clip(emit func(RenderPrimitive)) {
	aInFront := l.vertices[0].Pos.Z() < -l.vertices[0].Pos.W()
	bInFront := l.vertices[1].Pos.Z() < -l.vertices[1].Pos.W()

	if aInFront && bInFront {
		return
	}
	if !aInFront && !bInFront {
		emit(l)
		return
	}

	pa, pb := 0, 1
	if !aInFront {
		pa, pb = pb, pa
	}

	a, b := l.vertices[pa], l.vertices[pb]

	aw, bw := a.Pos.W(), b.Pos.W()
	ux := b.Pos.X()/bw - a.Pos.X()/aw
	uy := b.Pos.Y()/bw - a.Pos.Y()/aw
	uz := b.Pos.Z()/bw - a.Pos.Z()/aw

	t := (-aw - a.Pos.Z()) / uz

	newA := Vertex{
		Pos:  gglm.Vec4{Data: [4]float32{a.Pos.X() + ux*t, a.Pos.Y() + uy*t, -aw, aw}},
		Vars: lerpVars(a.Vars, b.Vars, t),
	}

	out := &LinePrimitive{mode: l.mode}
	out.vertices[pa], out.vertices[pb] = newA, b
	emit(out)
}

func (l *LinePrimitive) PerpDiv() {
	for i := range l.vertices {
		p := &l.vertices[i].Pos
		w := p.W()
		*p = gglm.Vec4{Data: [4]float32{p.X() / w, p.Y() / w, p.Z() / w, w}}
	}
}

func (l *LinePrimitive) Viewport(width, height uint32) {
	for i := range l.vertices {
		p := &l.vertices[i].Pos
		*p = gglm.Vec4{Data: [4]float32{
			(p.X() + 1) * float32(width) * 0.5,
			(p.Y() + 1) * float32(height) * 0.5,
			p.Z(), p.W(),
		}}
	}
}

func (l *LinePrimitive) Cull(CullFace) bool { return false }

// Rasterize clips the 2D segment to the framebuffer rect with
// Liang-Barsky then Bresenhams it; wireframe mode is identical.
func (l *LinePrimitive) Rasterize(_ bool, width, height uint32, emit func(gglm.Vec4)) {
	min := vec2{0, 0}
	max := vec2{float32(width) - 1, float32(height) - 1}

	a, b, ok := lineClip2D(fromVec4XY(l.vertices[0].Pos), fromVec4XY(l.vertices[1].Pos), min, max)
	if !ok {
		return
	}
	bresenhamLine([2]int{int(round32(a.X)), int(round32(a.Y))}, [2]int{int(round32(b.X)), int(round32(b.Y))}, emit)
}

func round32(v float32) float32 {
	if v >= 0 {
		return floor32(v + 0.5)
	}
	return ceil32(v - 0.5)
}

// Interpolate implements §4.5.2's 1D projection of p onto ab, then the
// same perspective-correction pattern as the triangle case.
func (l *LinePrimitive) Interpolate(pos *gglm.Vec4, vars shaders.InOutVars) {
	a, b := l.vertices[0].Pos, l.vertices[1].Pos
	abx, aby := b.X()-a.X(), b.Y()-a.Y()

	lb := (-aby*(pos.Y()-a.Y()) - abx*(pos.X()-a.X())) / -(abx*abx + aby*aby)
	la := 1 - lb

	k := la/a.W() + lb/b.W()
	pclX := la / (a.W() * k)
	pclY := lb / (b.W() * k)

	av, bv := l.vertices[0].Vars, l.vertices[1].Vars
	for key, a0 := range av {
		if a0.Integer {
			vars[key] = a0
			continue
		}
		b0, ok := bv[key]
		if !ok {
			vars[key] = a0
			continue
		}
		af, bf := a0.AsVec4(), b0.AsVec4()
		res := a0
		res.SetFromVec4(gglm.Vec4{Data: [4]float32{
			af.X()*pclX + bf.X()*pclY,
			af.Y()*pclX + bf.Y()*pclY,
			af.Z()*pclX + bf.Z()*pclY,
			af.W()*pclX + bf.W()*pclY,
		}})
		vars[key] = res
	}

	pos.Data[2] = pclX*a.Z() + pclY*b.Z()
}

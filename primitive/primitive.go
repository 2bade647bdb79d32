// Package primitive implements the stateful vertex accumulators that
// turn a stream of shaded vertices into rasterizable fragments: near
// -plane clipping, perspective divide, viewport transform, face
// culling, rasterization (Pineda scan or Bresenham wireframe), and
// perspective-correct attribute interpolation. Grounded on
// include/swrast/render/RenderPrimitive.h and
// src/swrast/render/RenderPrimitive.cpp.
package primitive

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/assert"

	"github.com/bloeys/swrast/shaders"
)

// Kind mirrors the reference Primitive enum: the draw mode a command
// requests, shared across triangle and line accumulators so a single
// SetMode(Kind) validates against the right sub-range. Hex values match
// the source 1:1 for grounding fidelity, though nothing here depends on
// their numeric value beyond range checks.
type Kind uint8

const (
	KindPoints Kind = 0x10

	KindLines     Kind = 0x20
	KindLineStrip Kind = 0x21
	KindLineLoop  Kind = 0x22

	KindPolygon Kind = 0x30

	KindTriangles     Kind = 0x40
	KindTriangleStrip Kind = 0x41
	KindTriangleFan   Kind = 0x42
)

// CullFace selects which winding direction Cull() drops.
type CullFace uint8

const (
	CullNone CullFace = iota
	CullCW
	CullCCW
)

// Vertex is a clip-space position plus a snapshot of the vertex
// shader's out-vars at the time it was produced, matching
// RenderPrimitive.h's Vertex.
type Vertex struct {
	Pos  gglm.Vec4
	Vars shaders.InOutVars
}

func cloneVars(v shaders.InOutVars) shaders.InOutVars {
	out := make(shaders.InOutVars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// RenderPrimitive is the capability set spec.md §4.5 names: accumulate
// vertices, clip near-plane sub-primitives, perspective-divide, map to
// viewport, cull, rasterize, and interpolate attributes for a given
// fragment position.
type RenderPrimitive interface {
	ProcessVertex(pos gglm.Vec4, vars shaders.InOutVars)
	Clip(emit func(RenderPrimitive))
	PerpDiv()
	Viewport(width, height uint32)
	Cull(mode CullFace) bool
	Rasterize(wireframe bool, width, height uint32, emit func(gglm.Vec4))
	Interpolate(pos *gglm.Vec4, vars shaders.InOutVars)
	Reset()
}

// vec2 is a plain local 2D float pair used for the pipeline's internal
// arithmetic (edge functions, lerps, clipping). The corpus does confirm
// gglm arithmetic methods (Vec3.Clone/.Add, Mat4.Mul in main.go), but
// every corpus use of gglm.Vec2 itself — uniform-buffer writes, mesh UV
// fields — treats it as a plain data-transport struct, never through an
// arithmetic method; mirroring that same usage here instead of
// presuming Vec2 carries the same method set as Vec3.
type vec2 struct{ X, Y float32 }

func sub2(a, b vec2) vec2 { return vec2{a.X - b.X, a.Y - b.Y} }

func fromVec4XY(v gglm.Vec4) vec2 { return vec2{v.X(), v.Y()} }

// lerp interpolates floats at parameter t.
func lerp(a, b, t float32) float32 { return (1-t)*a + t*b }

// lerpVec4 component-wise interpolates two vec4s at parameter t.
func lerpVec4(a, b gglm.Vec4, t float32) gglm.Vec4 {
	return gglm.Vec4{Data: [4]float32{
		lerp(a.X(), b.X(), t),
		lerp(a.Y(), b.Y(), t),
		lerp(a.Z(), b.Z(), t),
		lerp(a.W(), b.W(), t),
	}}
}

// lerpVars interpolates every float-kind entry of a against b at
// parameter t, copying integer-kind entries from a unchanged, matching
// the Clip/Interpolate stages' "integer variants are copied, float
// variants are lerped" rule.
func lerpVars(a, b shaders.InOutVars, t float32) shaders.InOutVars {
	out := make(shaders.InOutVars, len(a))
	for k, av := range a {
		if av.Integer {
			out[k] = av
			continue
		}
		bv, ok := b[k]
		if !ok {
			out[k] = av
			continue
		}
		res := av
		res.SetFromVec4(lerpVec4(av.AsVec4(), bv.AsVec4(), t))
		out[k] = res
	}
	return out
}

// bresenhamLine draws an integer segment a→b, calling emit for each
// pixel center (x+0.5, y+0.5, 0, 1). Grounded 1:1 on bresenham_line.
func bresenhamLine(a, b [2]int, emit func(gglm.Vec4)) {
	ux, uy := b[0]-a[0], b[1]-a[1]
	flipX, flipY := false, false

	if ux < 0 {
		ux = -ux
		a[0] = -a[0]
		b[0] = -b[0]
		flipX = true
	}
	if uy < 0 {
		uy = -uy
		a[1] = -a[1]
		b[1] = -b[1]
		flipY = true
	}

	x, y := a[0], a[1]
	e := 0.5 * float32(ux-uy)

	for x <= b[0] && y <= b[1] {
		px, py := x, y
		if flipX {
			px = -px
		}
		if flipY {
			py = -py
		}
		emit(gglm.Vec4{Data: [4]float32{float32(px) + 0.5, float32(py) + 0.5, 0, 1}})

		if e < 0 {
			y++
			e += float32(ux)
		} else {
			x++
			e -= float32(uy)
		}
	}
}

// lineClip2D clips segment a-b against the axis-aligned rectangle
// [min,max] using Liang-Barsky; returns the clipped endpoints and
// whether any part of the segment survives. Grounded 1:1 on line_clip.
func lineClip2D(a, b, min, max vec2) (vec2, vec2, bool) {
	p1 := -(b.X - a.X)
	p2 := -p1
	p3 := -(b.Y - a.Y)
	p4 := -p3

	q1 := a.X - min.X
	q2 := max.X - a.X
	q3 := a.Y - min.Y
	q4 := max.Y - a.Y

	var posarr, negarr [5]float32
	posind, negind := 1, 1
	posarr[0] = 1
	negarr[0] = 0

	if (p1 == 0 && q1 < 0) || (p2 == 0 && q2 < 0) || (p3 == 0 && q3 < 0) || (p4 == 0 && q4 < 0) {
		return a, b, false
	}
	if p1 != 0 {
		r1 := q1 / p1
		r2 := q2 / p2
		if p1 < 0 {
			negarr[negind] = r1
			negind++
			posarr[posind] = r2
			posind++
		} else {
			negarr[negind] = r2
			negind++
			posarr[posind] = r1
			posind++
		}
	}
	if p3 != 0 {
		r3 := q3 / p3
		r4 := q4 / p4
		if p3 < 0 {
			negarr[negind] = r3
			negind++
			posarr[posind] = r4
			posind++
		} else {
			negarr[negind] = r4
			negind++
			posarr[posind] = r3
			posind++
		}
	}

	rn1 := maxOf(negarr[:negind])
	rn2 := minOf(posarr[:posind])
	if rn1 > rn2 {
		return a, b, false
	}

	outB := vec2{a.X + p2*rn2, a.Y + p4*rn2}
	outA := vec2{a.X + p2*rn1, a.Y + p4*rn1}
	return outA, outB, true
}

func maxOf(arr []float32) float32 {
	m := float32(0)
	for _, v := range arr {
		if m < v {
			m = v
		}
	}
	return m
}

func minOf(arr []float32) float32 {
	m := float32(1)
	for _, v := range arr {
		if m > v {
			m = v
		}
	}
	return m
}

func assertKindInRange(lo, hi, v Kind, what string) {
	assert.T(v >= lo && v <= hi, "primitive: %s mode out of range: 0x%X", what, v)
}

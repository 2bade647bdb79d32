package primitive

import (
	"testing"

	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/shaders"
	"github.com/bloeys/swrast/strid"
)

func triVars(k float32) shaders.InOutVars {
	key := strid.Hash("vColor")
	return shaders.InOutVars{key: shaders.NewF32(k)}
}

func feedTriangle(t *TrianglePrimitive, positions [3]gglm.Vec4) {
	for _, p := range positions {
		t.ProcessVertex(p, triVars(1))
	}
}

func TestCullingSymmetry(t *testing.T) {
	// Screen-space CCW triangle per isCCW's sign convention.
	a := gglm.Vec4{Data: [4]float32{0, 0, 0, 1}}
	b := gglm.Vec4{Data: [4]float32{1, 0, 0, 1}}
	c := gglm.Vec4{Data: [4]float32{0, 1, 0, 1}}

	var emitted *TrianglePrimitive
	tri := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted = p })
	feedTriangle(tri, [3]gglm.Vec4{a, b, c})

	if emitted.Cull(CullCCW) == emitted.Cull(CullCW) {
		t.Fatalf("expected opposite cull decisions for a CCW-classified triangle under CullCCW vs CullCW")
	}

	var emitted2 *TrianglePrimitive
	tri2 := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted2 = p })
	feedTriangle(tri2, [3]gglm.Vec4{a, c, b})

	if emitted.Cull(CullCCW) == emitted2.Cull(CullCCW) {
		t.Errorf("swapping b/c should flip the CullCCW decision")
	}
}

func TestPerspectiveCorrectInterpolationConstantValue(t *testing.T) {
	var emitted *TrianglePrimitive
	tri := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted = p })

	key := strid.Hash("k")
	vars := func(w float32) shaders.InOutVars {
		return shaders.InOutVars{key: shaders.NewF32(5)}
	}
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{0, 0, 0, 1}}, vars(1))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{4, 0, 0, 2}}, vars(2))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{0, 4, 0, 0.5}}, vars(0.5))

	pos := gglm.Vec4{Data: [4]float32{1, 1, 0, 1}}
	out := shaders.InOutVars{}
	emitted.Interpolate(&pos, out)

	got := out[key].F32
	if got < 4.999 || got > 5.001 {
		t.Errorf("expected interpolated constant value ~5, got %v", got)
	}
}

func TestIntegerAttributeNotInterpolated(t *testing.T) {
	var emitted *TrianglePrimitive
	tri := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted = p })

	key := strid.Hash("vId")
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{0, 0, 0, 1}}, shaders.InOutVars{key: shaders.NewI32(7)})
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{4, 0, 0, 1}}, shaders.InOutVars{key: shaders.NewI32(9)})
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{0, 4, 0, 1}}, shaders.InOutVars{key: shaders.NewI32(11)})

	pos := gglm.Vec4{Data: [4]float32{1, 1, 0, 1}}
	out := shaders.InOutVars{}
	emitted.Interpolate(&pos, out)

	if out[key].I32 != 7 {
		t.Errorf("expected vertex a's integer value (7) at every fragment, got %d", out[key].I32)
	}
}

func TestNearPlaneClipProducesNoFragmentBehindNearPlane(t *testing.T) {
	var emitted *TrianglePrimitive
	tri := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted = p })

	// First vertex behind the near plane (z < -w), others in front.
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{0, 1, -2, 1}}, triVars(1))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{-1, -1, 0.5, 1}}, triVars(1))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{1, -1, 0.5, 1}}, triVars(1))

	var subs []RenderPrimitive
	emitted.Clip(func(p RenderPrimitive) { subs = append(subs, p) })

	if len(subs) == 0 {
		t.Fatalf("expected at least one sub-triangle after clipping")
	}
	for _, sp := range subs {
		tp := sp.(*TrianglePrimitive)
		for _, v := range tp.vertices {
			if v.Pos.Z() < -v.Pos.W()-1e-4 {
				t.Errorf("clipped vertex has z=%v < -w=%v", v.Pos.Z(), -v.Pos.W())
			}
		}
	}
}

func TestWireframeIdempotenceOnRepeatedDraw(t *testing.T) {
	var emitted *TrianglePrimitive
	tri := NewTrianglePrimitive(KindTriangles, func(p *TrianglePrimitive) { emitted = p })

	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{1, 1, 0, 1}}, triVars(1))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{6, 1, 0, 1}}, triVars(1))
	tri.ProcessVertex(gglm.Vec4{Data: [4]float32{1, 6, 0, 1}}, triVars(1))

	pixelSet := func() map[[2]int]bool {
		set := map[[2]int]bool{}
		emitted.Rasterize(true, 8, 8, func(v gglm.Vec4) {
			set[[2]int{int(v.X()), int(v.Y())}] = true
		})
		return set
	}

	first := pixelSet()
	second := pixelSet()

	if len(first) != len(second) {
		t.Fatalf("expected same pixel count across repeated wireframe draws, got %d vs %d", len(first), len(second))
	}
	for k := range first {
		if !second[k] {
			t.Errorf("pixel %v present in first draw but not second", k)
		}
	}
}

func TestLineClip2DRejectsSegmentFullyOutside(t *testing.T) {
	_, _, ok := lineClip2D(vec2{-10, -10}, vec2{-5, -5}, vec2{0, 0}, vec2{3, 3})
	if ok {
		t.Errorf("expected a fully-outside segment to be rejected")
	}
}

func TestLineClip2DClipsPartiallyInsideSegment(t *testing.T) {
	a, b, ok := lineClip2D(vec2{-5, 1}, vec2{5, 1}, vec2{0, 0}, vec2{3, 3})
	if !ok {
		t.Fatalf("expected a partially-inside segment to clip successfully")
	}
	if a.X < -0.001 || b.X > 3.001 {
		t.Errorf("expected clipped endpoints within [0,3], got a=%v b=%v", a, b)
	}
}

// Clip must move the in-front endpoint to the near plane regardless of
// which vertex index (0 or 1) it occupies; the kept, behind endpoint
// must pass through unchanged.
func TestLineClipMovesTheInFrontEndpointNotTheKeptOne(t *testing.T) {
	behind := Vertex{Pos: gglm.Vec4{Data: [4]float32{0, 0, 0, 1}}}
	front := Vertex{Pos: gglm.Vec4{Data: [4]float32{0, 0, -2, 1}}}

	l := &LinePrimitive{mode: KindLines, vertices: [2]Vertex{front, behind}}
	var out *LinePrimitive
	l.Clip(func(p RenderPrimitive) { out = p.(*LinePrimitive) })
	if out == nil {
		t.Fatalf("expected Clip to emit a sub-segment")
	}
	if out.vertices[1].Pos != behind.Pos {
		t.Errorf("expected the behind vertex (index 1) to pass through unchanged, got %v", out.vertices[1].Pos)
	}
	if out.vertices[0].Pos.Z() < -out.vertices[0].Pos.W()-1e-4 || out.vertices[0].Pos.Z() > -out.vertices[0].Pos.W()+1e-4 {
		t.Errorf("expected the in-front vertex (index 0) moved to z=-w, got z=%v w=%v", out.vertices[0].Pos.Z(), out.vertices[0].Pos.W())
	}

	l2 := &LinePrimitive{mode: KindLines, vertices: [2]Vertex{behind, front}}
	var out2 *LinePrimitive
	l2.Clip(func(p RenderPrimitive) { out2 = p.(*LinePrimitive) })
	if out2 == nil {
		t.Fatalf("expected Clip to emit a sub-segment")
	}
	if out2.vertices[0].Pos != behind.Pos {
		t.Errorf("expected the behind vertex (index 0) to pass through unchanged, got %v", out2.vertices[0].Pos)
	}
	if out2.vertices[1].Pos.Z() < -out2.vertices[1].Pos.W()-1e-4 || out2.vertices[1].Pos.Z() > -out2.vertices[1].Pos.W()+1e-4 {
		t.Errorf("expected the in-front vertex (index 1) moved to z=-w, got z=%v w=%v", out2.vertices[1].Pos.Z(), out2.vertices[1].Pos.W())
	}
}

// Close emits exactly one additional segment, from the last
// accumulated vertex back to the loop's first vertex.
func TestLineLoopCloseEmitsSegmentBackToFirstVertex(t *testing.T) {
	var emitted []*LinePrimitive
	l := NewLinePrimitive(KindLineLoop, func(p *LinePrimitive) {
		dup := *p
		emitted = append(emitted, &dup)
	})

	v0 := gglm.Vec4{Data: [4]float32{0, 0, 0, 1}}
	v1 := gglm.Vec4{Data: [4]float32{1, 0, 0, 1}}
	v2 := gglm.Vec4{Data: [4]float32{0, 1, 0, 1}}
	l.ProcessVertex(v0, shaders.InOutVars{})
	l.ProcessVertex(v1, shaders.InOutVars{})
	l.ProcessVertex(v2, shaders.InOutVars{})

	if len(emitted) != 2 {
		t.Fatalf("expected 2 segments from ProcessVertex before Close, got %d", len(emitted))
	}

	l.Close()
	if len(emitted) != 3 {
		t.Fatalf("expected Close to emit exactly one more segment, got %d total", len(emitted))
	}
	closing := emitted[2]
	if closing.vertices[0].Pos != v2 || closing.vertices[1].Pos != v0 {
		t.Errorf("expected the closing segment to run from the last vertex to the first, got %v -> %v", closing.vertices[0].Pos, closing.vertices[1].Pos)
	}
}

func TestBresenhamLineCoversEndpoints(t *testing.T) {
	var pts []gglm.Vec4
	bresenhamLine([2]int{0, 0}, [2]int{3, 0}, func(v gglm.Vec4) { pts = append(pts, v) })
	if len(pts) != 4 {
		t.Errorf("expected 4 points for a horizontal 3-step line, got %d", len(pts))
	}
}

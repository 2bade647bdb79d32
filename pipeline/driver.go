package pipeline

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/logging"

	"github.com/bloeys/swrast/buffers"
	"github.com/bloeys/swrast/errs"
	"github.com/bloeys/swrast/primitive"
	"github.com/bloeys/swrast/shaders"
	"github.com/bloeys/swrast/texture"
)

// Driver runs Draw: it owns no state of its own beyond what a
// RenderContext already resolves, matching spec.md §9's redesign away
// from a process-wide singleton — the pipeline takes its context as a
// parameter so it stays testable outside of any global State.
type Driver struct{}

// Draw implements §4.6's pipeline: assemble attributes, run the vertex
// shader, accumulate into a primitive, clip/divide/viewport/cull it,
// rasterize, and for every fragment interpolate/shade/depth-test/write.
func (d Driver) Draw(ctx RenderContext) error {
	if !ctx.Program.Valid() {
		err := errs.ObjectNotFoundf(uint32(ctx.Program.ID))
		logging.ErrLog.Println(err)
		return err
	}
	if !ctx.VertexArray.Valid() {
		err := errs.ObjectNotFoundf(uint32(ctx.VertexArray.ID))
		logging.ErrLog.Println(err)
		return err
	}
	if !ctx.Framebuffer.Valid() {
		err := errs.ObjectNotFoundf(uint32(ctx.Framebuffer.ID))
		logging.ErrLog.Println(err)
		return err
	}

	prog := ctx.Program.Get()
	vs := prog.Vert.Get()
	fs := prog.Frag.Get()
	vao := ctx.VertexArray.Get()
	fb := ctx.Framebuffer.Get()

	if cap(vs.Attributes) < len(vao.Attributes) {
		vs.Attributes = make([]shaders.UniformValue, len(vao.Attributes))
	} else {
		vs.Attributes = vs.Attributes[:len(vao.Attributes)]
	}
	fs.InVars.Clear()

	prim, err := newPrimitive(ctx.Cmd.DrawPrimitive, ctx, fb.Width, fb.Height)
	if err != nil {
		logging.ErrLog.Println(err)
		return err
	}

	// Check every attribute fetch before any vertex is shaded, so an
	// InvalidArgument failure leaves the framebuffer untouched.
	var fetchErr error
	forEachVertexID(ctx.Cmd, vao, func(vertexID uint32) {
		for _, attr := range vao.Attributes {
			if fetchErr == nil {
				_, fetchErr = floatsForAttribute(attr, vertexID)
			}
		}
	})
	if fetchErr != nil {
		logging.ErrLog.Println(fetchErr)
		return fetchErr
	}

	var assembleErr error
	forEachVertexID(ctx.Cmd, vao, func(vertexID uint32) {
		if assembleErr != nil {
			return
		}
		if err := assembleVertexAttributes(vao, vertexID, vs); err != nil {
			assembleErr = err
			return
		}
		vs.Run(vertexID, len(vao.Attributes))
		prim.ProcessVertex(vs.Position, vs.OutVars)
	})
	if assembleErr != nil {
		logging.ErrLog.Println(assembleErr)
		return assembleErr
	}

	if c, ok := prim.(closer); ok {
		c.Close()
	}

	return nil
}

// closer is satisfied by LinePrimitive: LineLoop needs one extra
// segment emitted after the last vertex, back to the first, which
// isn't part of RenderPrimitive since only line loops need it.
type closer interface {
	Close()
}

// forEachVertexID yields vertex ids from the vao's index buffer
// (entries cmd.Offset up to cmd.Offset+cmd.Count, capped at its length)
// when the vao has one, and otherwise as the contiguous range
// [cmd.Offset, cmd.Offset+cmd.Count), matching §4.6 step 5's iteration
// rule. The choice depends on the vao alone; cmd.IsIndexed is not read.
func forEachVertexID(cmd RenderCommand, vao *buffers.VertexArray, fn func(uint32)) {
	if vao.HasIndexBuffer() {
		data := vao.IndexBuffer.Get().Data
		start := cmd.Offset
		end := start + cmd.Count
		if end > uint32(len(data)) {
			end = uint32(len(data))
		}
		for _, id := range data[start:end] {
			fn(id)
		}
		return
	}
	for i := uint32(0); i < cmd.Count; i++ {
		fn(cmd.Offset + i)
	}
}

// assembleVertexAttributes fetches, for every vao attribute in location
// order, ByteSize(type) bytes at vbo[offset + stride*vertexId] and
// decodes them as the declared AttributeType, matching render.cpp's
// assemble_vertex_attributes/any_from_attributetype. Offsets and
// strides are expressed in bytes per §3 but every AttributeType's byte
// size is a multiple of 4, so the fetch walks the backing []float32
// directly instead of re-encoding through a byte view.
func assembleVertexAttributes(vao *buffers.VertexArray, vertexID uint32, vs *shaders.VertexShader) error {
	for location, attr := range vao.Attributes {
		floats, err := floatsForAttribute(attr, vertexID)
		if err != nil {
			return err
		}
		vs.Attributes[location] = decodeAttribute(attr.Type, floats)
	}
	return nil
}

// floatsForAttribute fetches the ByteSize(attr.Type)/4 floats backing
// one attribute at vertexID, returning InvalidArgument (§7) rather than
// panicking when the descriptor's stride/offset/type don't fit the
// source buffer.
func floatsForAttribute(attr buffers.VertexAttribute, vertexID uint32) ([]float32, error) {
	data := attr.Vbo.Get().Data
	floatOffset := attr.Offset/4 + (attr.Stride/4)*int(vertexID)
	n := attr.Type.ByteSize() / 4
	if floatOffset < 0 || floatOffset+n > len(data) {
		return nil, errs.InvalidArgumentf("pipeline: attribute type=%s at vertex=%d (offset=%d, stride=%d) does not fit in its source buffer of %d floats", attr.Type, vertexID, attr.Offset, attr.Stride, len(data))
	}
	return data[floatOffset : floatOffset+n], nil
}

func decodeAttribute(t buffers.AttributeType, f []float32) shaders.UniformValue {
	switch t {
	case buffers.AttributeI32:
		return shaders.UniformValue{Kind: shaders.KindI32, I32: int32(f[0])}
	case buffers.AttributeF32:
		return shaders.UniformValue{Kind: shaders.KindF32, F32: f[0]}
	case buffers.AttributeVec2:
		return shaders.UniformValue{Kind: shaders.KindVec2, Vec2: gglm.Vec2{Data: [2]float32{f[0], f[1]}}}
	case buffers.AttributeIVec2:
		return shaders.UniformValue{Kind: shaders.KindIVec2, IVec2: shaders.IVec2{X: int32(f[0]), Y: int32(f[1])}}
	case buffers.AttributeVec3:
		return shaders.UniformValue{Kind: shaders.KindVec3, Vec3: gglm.Vec3{Data: [3]float32{f[0], f[1], f[2]}}}
	case buffers.AttributeIVec3:
		return shaders.UniformValue{Kind: shaders.KindIVec3, IVec3: shaders.IVec3{X: int32(f[0]), Y: int32(f[1]), Z: int32(f[2])}}
	case buffers.AttributeVec4:
		return shaders.UniformValue{Kind: shaders.KindVec4, Vec4: gglm.Vec4{Data: [4]float32{f[0], f[1], f[2], f[3]}}}
	case buffers.AttributeIVec4:
		return shaders.UniformValue{Kind: shaders.KindIVec4, IVec4: shaders.IVec4{X: int32(f[0]), Y: int32(f[1]), Z: int32(f[2]), W: int32(f[3])}}
	case buffers.AttributeMat3:
		var m gglm.Mat3
		for i := 0; i < 9; i++ {
			m.Data[i/3][i%3] = f[i]
		}
		return shaders.UniformValue{Kind: shaders.KindMat3, Mat3: m}
	case buffers.AttributeMat4:
		var m gglm.Mat4
		for i := 0; i < 16; i++ {
			m.Data[i/4][i%4] = f[i]
		}
		return shaders.UniformValue{Kind: shaders.KindMat4, Mat4: m}
	default:
		return shaders.UniformValue{}
	}
}

// newPrimitive builds the stateful accumulator matching
// cmd.DrawPrimitive, wiring its onEmit callback to processPrimitive.
// Grounded on render.cpp's new_primitive: Points and Polygon are named
// by the reference Primitive enum but never implemented, so both still
// fail with NotImplemented; every other kind in range is implemented
// here (the reference only implements Triangles, but §4.5.1/§4.5.2 name
// Lines/LineStrip/LineLoop/TriangleStrip/TriangleFan too).
func newPrimitive(kind primitive.Kind, ctx RenderContext, fbW, fbH uint32) (primitive.RenderPrimitive, error) {
	switch kind {
	case primitive.KindTriangles, primitive.KindTriangleStrip, primitive.KindTriangleFan:
		return primitive.NewTrianglePrimitive(kind, func(t *primitive.TrianglePrimitive) {
			processPrimitive(ctx, fbW, fbH, t)
		}), nil
	case primitive.KindLines, primitive.KindLineStrip, primitive.KindLineLoop:
		return primitive.NewLinePrimitive(kind, func(l *primitive.LinePrimitive) {
			processPrimitive(ctx, fbW, fbH, l)
		}), nil
	case primitive.KindPoints:
		return nil, errs.NotImplementedf("pipeline: draw_primitive=Points is not implemented")
	case primitive.KindPolygon:
		return nil, errs.NotImplementedf("pipeline: draw_primitive=Polygon is not implemented")
	default:
		return nil, errs.InvalidArgumentf("pipeline: unrecognized draw_primitive=0x%X", uint8(kind))
	}
}

// processPrimitive implements the per-primitive callback §4.6
// describes: Clip emits sub-primitives, each of which is divided,
// viewport-mapped, culled, then rasterized into fragments that flow
// into processPixel.
func processPrimitive(ctx RenderContext, fbW, fbH uint32, prim primitive.RenderPrimitive) {
	prim.Clip(func(sub primitive.RenderPrimitive) {
		sub.PerpDiv()
		sub.Viewport(fbW, fbH)
		if sub.Cull(ctx.Cull) {
			return
		}
		sub.Rasterize(ctx.Wireframe, fbW, fbH, func(pixPos gglm.Vec4) {
			processPixel(ctx, sub, pixPos)
		})
	})
}

// processPixel interpolates attributes/depth for pixPos, executes the
// fragment shader, and — unless the fragment was discarded — runs the
// fragment output stage (depth test/write, color write).
func processPixel(ctx RenderContext, prim primitive.RenderPrimitive, pixPos gglm.Vec4) {
	fs := ctx.Program.Get().Frag.Get()

	prim.Interpolate(&pixPos, fs.InVars)
	fs.FragCoord = pixPos
	if fs.Run() {
		return
	}

	fragmentOutput(ctx, pixPos, fs.FragColor)
}

// fragmentOutput implements §4.6's fragment output stage: depth test
// (if enabled and a depth attachment exists) then an 8-bit truncated
// color write to attachment 0.
func fragmentOutput(ctx RenderContext, pos gglm.Vec4, color gglm.Vec4) {
	fb := ctx.Framebuffer.Get()
	x, y := uint32(pos.X()), uint32(pos.Y())

	if ctx.DepthTest {
		if depthHandle, ok := fb.GetDepthBuffer(); ok {
			depthTex := depthHandle.Get()
			stored, ok := depthTex.DepthAt(x, y)
			if ok {
				if pos.Z() >= stored {
					return
				}
				depthTex.SetDepthAt(x, y, pos.Z())
			}
		}
	}

	if colorHandle, ok := fb.GetColorAttach(0); ok {
		writePixelColor(colorHandle.Get(), x, y, color)
	}
}

func writePixelColor(tex *texture.Texture, x, y uint32, c gglm.Vec4) {
	px, ok := tex.GetPixel(x, y)
	if !ok {
		return
	}
	channels := tex.IntFormat.ChannelCount()
	r, g, b, a := uint8(c.X()*255), uint8(c.Y()*255), uint8(c.Z()*255), uint8(c.W()*255)
	if channels == 1 {
		px[0] = r
		return
	}
	px[0], px[1], px[2] = r, g, b
	if channels == 4 {
		px[3] = a
	}
}

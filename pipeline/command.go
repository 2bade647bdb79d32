// Package pipeline implements the driver: vertex iteration, attribute
// assembly, vertex shader execution, primitive emission, fragment
// interpolation/shading, depth test and color write. Grounded on
// include/swrast/render/render.h and src/swrast/render/render.cpp.
package pipeline

import (
	"github.com/bloeys/swrast/buffers"
	"github.com/bloeys/swrast/framebuffer"
	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/primitive"
	"github.com/bloeys/swrast/shaders"
)

// RenderCommand describes one draw call, matching render.h's
// RenderCommand.
type RenderCommand struct {
	DrawPrimitive primitive.Kind
	IsIndexed     bool
	Count         uint32
	Offset        uint32
}

// RenderContext is the per-draw snapshot of resolved handles and
// render state spec.md §3 names. Construction (see Driver.Draw)
// resolves handles; a missing one aborts the draw with ObjectNotFound.
type RenderContext struct {
	Cmd         RenderCommand
	Program     objstore.Handle[shaders.Program]
	VertexArray objstore.Handle[buffers.VertexArray]
	Framebuffer objstore.Handle[framebuffer.Framebuffer]
	Cull        primitive.CullFace
	DepthTest   bool
	Wireframe   bool
}

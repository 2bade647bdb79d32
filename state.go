package swrast

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/logging"

	"github.com/bloeys/swrast/buffers"
	"github.com/bloeys/swrast/errs"
	"github.com/bloeys/swrast/framebuffer"
	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/pipeline"
	"github.com/bloeys/swrast/primitive"
	"github.com/bloeys/swrast/shaders"
	"github.com/bloeys/swrast/texture"
)

// State is the top-level facade: one typed Store per owned object kind
// plus the active framebuffer/program/vertex array and the per-draw
// render toggles (depth test, cull face, wireframe). Grounded on
// state/State.{h,cpp}; unlike the source's five-plus static maps behind
// a class of static methods, this is an ordinary heap value so a
// process can run more than one rasterizer instance.
//
// The source's single CreateObject<T>/GetObject<T> pair dispatches by
// template parameter over one shared ObjectId space; Go methods cannot
// add their own type parameters, so this exposes one Store[T] field per
// kind instead (objstore.Store[T] already provides Create/Get/Delete)
// rather than reintroducing generics through a reflection-based
// dispatcher.
type State struct {
	VertexBuffers   *objstore.Store[buffers.VertexBuffer]
	IndexBuffers    *objstore.Store[buffers.IndexBuffer]
	VertexArrays    *objstore.Store[buffers.VertexArray]
	Textures        *objstore.Store[texture.Texture]
	Framebuffers    *objstore.Store[framebuffer.Framebuffer]
	VertexShaders   *objstore.Store[shaders.VertexShader]
	FragmentShaders *objstore.Store[shaders.FragmentShader]
	Programs        *objstore.Store[shaders.Program]

	defaultFb     objstore.Handle[framebuffer.Framebuffer]
	activeFb      objstore.Handle[framebuffer.Framebuffer]
	activeProgram objstore.Handle[shaders.Program]
	activeVao     objstore.Handle[buffers.VertexArray]

	DepthTest bool
	Cull      primitive.CullFace
	Wireframe bool
}

// Init allocates every store and a default framebuffer of the given
// size (one rgba color attachment, one depth attachment), matching
// State::Init.
func Init(width, height uint32) (*State, error) {
	s := &State{
		VertexBuffers:   objstore.NewStore[buffers.VertexBuffer](),
		IndexBuffers:    objstore.NewStore[buffers.IndexBuffer](),
		VertexArrays:    objstore.NewStore[buffers.VertexArray](),
		Textures:        objstore.NewStore[texture.Texture](),
		Framebuffers:    objstore.NewStore[framebuffer.Framebuffer](),
		VertexShaders:   objstore.NewStore[shaders.VertexShader](),
		FragmentShaders: objstore.NewStore[shaders.FragmentShader](),
		Programs:        objstore.NewStore[shaders.Program](),
	}

	fb, err := framebuffer.CreateBasic(s.Textures, width, height)
	if err != nil {
		logging.ErrLog.Println("swrast: Init failed to create the default framebuffer:", err)
		return nil, err
	}
	s.defaultFb = s.Framebuffers.Create(fb)
	s.activeFb = s.defaultFb

	return s, nil
}

// Destroy tears down every store, matching State::Destroy.
func (s *State) Destroy() {
	s.VertexBuffers.Clear()
	s.IndexBuffers.Clear()
	s.VertexArrays.Clear()
	s.Textures.Clear()
	s.Framebuffers.Clear()
	s.VertexShaders.Clear()
	s.FragmentShaders.Clear()
	s.Programs.Clear()

	s.defaultFb = objstore.Handle[framebuffer.Framebuffer]{}
	s.activeFb = objstore.Handle[framebuffer.Framebuffer]{}
	s.activeProgram = objstore.Handle[shaders.Program]{}
	s.activeVao = objstore.Handle[buffers.VertexArray]{}
}

// SetActiveFramebuffer switches the render target. A nil id restores
// the default framebuffer, matching State::SetActiveFramebuffer's
// Opt<ObjectId>{} case.
func (s *State) SetActiveFramebuffer(id *objstore.Id) error {
	if id == nil {
		s.activeFb = s.defaultFb
		return nil
	}
	h, ok := s.Framebuffers.Get(*id)
	if !ok {
		err := errs.ObjectNotFoundf(uint32(*id))
		logging.ErrLog.Println(err)
		return err
	}
	s.activeFb = h
	return nil
}

// SetActiveProgram selects the program DrawArrays/DrawIndexed will run.
func (s *State) SetActiveProgram(id objstore.Id) error {
	h, ok := s.Programs.Get(id)
	if !ok {
		err := errs.ObjectNotFoundf(uint32(id))
		logging.ErrLog.Println(err)
		return err
	}
	s.activeProgram = h
	return nil
}

// SetActiveVertexArray selects the vertex array a draw call reads from.
// A nil id clears it, matching State::SetActiveVertexArray's
// Opt<ObjectId>{} case.
func (s *State) SetActiveVertexArray(id *objstore.Id) error {
	if id == nil {
		s.activeVao = objstore.Handle[buffers.VertexArray]{}
		return nil
	}
	h, ok := s.VertexArrays.Get(*id)
	if !ok {
		err := errs.ObjectNotFoundf(uint32(*id))
		logging.ErrLog.Println(err)
		return err
	}
	s.activeVao = h
	return nil
}

func (s *State) SetDepthTest(v bool)             { s.DepthTest = v }
func (s *State) SetCullFace(mode primitive.CullFace) { s.Cull = mode }
func (s *State) SetWireframe(v bool)             { s.Wireframe = v }

// Clear fills the active framebuffer, matching State::Clear.
func (s *State) Clear(color *gglm.Vec4, depth bool) {
	s.activeFb.Get().Clear(color, depth)
}

// GetActiveFramebuffer returns a handle to the current render target.
func (s *State) GetActiveFramebuffer() objstore.Handle[framebuffer.Framebuffer] {
	return s.activeFb
}

// DrawArrays issues a draw call over [offset, offset+count) vertex ids
// of the active vertex array, using the active program and framebuffer.
// If that vertex array has an index buffer, the ids are read from its
// entries offset up to offset+count instead.
func (s *State) DrawArrays(kind primitive.Kind, offset, count uint32) error {
	return s.draw(pipeline.RenderCommand{DrawPrimitive: kind, IsIndexed: false, Offset: offset, Count: count})
}

// DrawIndexed issues an indexed draw call over the first count entries
// of the active vertex array's index buffer. If that vertex array has
// no index buffer, the ids 0..count-1 are used directly.
func (s *State) DrawIndexed(kind primitive.Kind, count uint32) error {
	return s.draw(pipeline.RenderCommand{DrawPrimitive: kind, IsIndexed: true, Count: count})
}

func (s *State) draw(cmd pipeline.RenderCommand) error {
	if !s.activeProgram.Valid() {
		err := errs.ObjectNotFoundf(uint32(s.activeProgram.ID))
		logging.ErrLog.Println("swrast: draw called with no active program:", err)
		return err
	}
	if !s.activeVao.Valid() {
		err := errs.ObjectNotFoundf(uint32(s.activeVao.ID))
		logging.ErrLog.Println("swrast: draw called with no active vertex array:", err)
		return err
	}

	ctx := pipeline.RenderContext{
		Cmd:         cmd,
		Program:     s.activeProgram,
		VertexArray: s.activeVao,
		Framebuffer: s.activeFb,
		Cull:        s.Cull,
		DepthTest:   s.DepthTest,
		Wireframe:   s.Wireframe,
	}
	return (pipeline.Driver{}).Draw(ctx)
}

package shaders

import (
	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/strid"
)

// Program bundles one VertexShader and one FragmentShader, referenced
// by typed handle rather than raw pointer (spec.md §9's "two typed
// stores, one per kind; let Program reference its shaders by typed
// handle" — removing the need for the source's polymorphic shared-
// pointer ownership and dynamic downcasts), plus the UniformGroup they
// share. On construction both shaders' uniform pointers are redirected
// to the program's group — the only way uniforms become visible to
// shaders, matching spec.md §4.4 and Program.cpp's constructor.
type Program struct {
	Vert     objstore.Handle[VertexShader]
	Frag     objstore.Handle[FragmentShader]
	Uniforms *UniformGroup
}

func NewProgram(vert objstore.Handle[VertexShader], frag objstore.Handle[FragmentShader]) Program {
	p := Program{Vert: vert, Frag: frag, Uniforms: NewUniformGroup()}
	vert.Get().Uniforms = p.Uniforms
	frag.Get().Uniforms = p.Uniforms
	return p
}

// SetUniform upserts key's value in the program's shared UniformGroup.
func (p *Program) SetUniform(key strid.Id, v UniformValue) {
	p.Uniforms.Set(key, v)
}

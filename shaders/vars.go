package shaders

import "github.com/bloeys/swrast/strid"

// InOutVars maps a shader-local name hash to its InOutVar, matching
// spec.md §3's InOutVars. Collisions between distinct names that hash
// to the same Id are the caller's responsibility (see strid.Hash).
type InOutVars map[strid.Id]InOutVar

// Get looks up key, creating (and storing) a zero-valued InOutVar of
// kind if absent — matching Program.h's In<T>/Out<T> accessors, which
// look up or create on first access rather than requiring a prior
// declaration. Since Go map values aren't addressable, mutation happens
// by reading with Get then writing the modified value back with Set.
func (vars InOutVars) Get(key strid.Id, kind VarKind, integer bool) InOutVar {
	v, ok := vars[key]
	if !ok {
		v = InOutVar{Kind: kind, Integer: integer}
		vars[key] = v
	}
	return v
}

// Set upserts vars[key] = v, the write half of In<T>/Out<T>'s
// look-up-or-create-then-mutate contract.
func (vars InOutVars) Set(key strid.Id, v InOutVar) {
	vars[key] = v
}

// Clear empties vars in place, matching §4.6 step 3's "clear the
// fragment shader's in-vars table" before each draw.
func (vars InOutVars) Clear() {
	for k := range vars {
		delete(vars, k)
	}
}

// UniformGroup is the mapping from StrId to a dynamically-typed value a
// Program owns and its bound shaders read through, matching spec.md
// §3's Uniform/UniformGroup.
type UniformGroup struct {
	values map[strid.Id]UniformValue
}

func NewUniformGroup() *UniformGroup {
	return &UniformGroup{values: make(map[strid.Id]UniformValue)}
}

// Set upserts key's value, matching Program.SetUniform.
func (g *UniformGroup) Set(key strid.Id, v UniformValue) {
	g.values[key] = v
}

// Get returns key's value and whether it was present.
func (g *UniformGroup) Get(key strid.Id) (UniformValue, bool) {
	v, ok := g.values[key]
	return v, ok
}

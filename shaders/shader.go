package shaders

import (
	"github.com/bloeys/gglm/gglm"
)

// VertexFunc is the callable body of a VertexShader: given read access
// to vs's attribute/uniform state, it must set vs.Position.
type VertexFunc func(vs *VertexShader)

// FragmentFunc is the callable body of a FragmentShader: given read
// access to fs's FragCoord/FrontFacing/PointCoord/in-vars, it must set
// fs.FragColor (or call fs.Discard()).
type FragmentFunc func(fs *FragmentShader)

// VertexShader is a callable vertex routine together with its in/out
// var tables, a weak reference to the owning Program's uniforms, and
// the vertex-stage-specific slots spec.md §3 names: VertexId, an
// ordered Attributes slice indexed by location, and the output
// Position. Grounded on Program.h's VertexShader.
type VertexShader struct {
	InVars  InOutVars
	OutVars InOutVars
	Uniforms *UniformGroup

	VertexId uint32
	// Attributes holds one dynamically-typed slot per vao attribute
	// location. This is UniformValue rather than InOutVar because
	// AttributeType's shape set includes Mat3/Mat4, which InOutVar's
	// shape set (spec.md §3) does not.
	Attributes []UniformValue
	Position   gglm.Vec4

	fn VertexFunc
}

func NewVertexShader(fn VertexFunc) *VertexShader {
	return &VertexShader{InVars: InOutVars{}, OutVars: InOutVars{}, fn: fn}
}

// Run resizes Attributes to attrCount (per §4.6 step 2), executes fn,
// and returns the resulting clip-space Position.
func (vs *VertexShader) Run(vertexId uint32, attrCount int) gglm.Vec4 {
	if cap(vs.Attributes) < attrCount {
		vs.Attributes = make([]UniformValue, attrCount)
	} else {
		vs.Attributes = vs.Attributes[:attrCount]
	}
	vs.VertexId = vertexId
	vs.fn(vs)
	return vs.Position
}

// FragmentShader is a callable fragment routine paired with its in/out
// var tables, a uniform reference, and the fragment-stage-specific
// slots spec.md §3 names: FragCoord, FrontFacing, PointCoord and the
// output FragColor. Grounded on Program.h's FragmentShader.
type FragmentShader struct {
	InVars   InOutVars
	OutVars  InOutVars
	Uniforms *UniformGroup

	FragCoord   gglm.Vec4
	FrontFacing bool
	PointCoord  gglm.Vec2
	FragColor   gglm.Vec4

	discarded bool
	fn        FragmentFunc
}

func NewFragmentShader(fn FragmentFunc) *FragmentShader {
	return &FragmentShader{InVars: InOutVars{}, OutVars: InOutVars{}, fn: fn}
}

// Discard marks the current fragment to skip the fragment output stage
// (depth test and color write). Source's FragmentShader.Discard raises
// NotImplemented; per spec.md §9 this is implemented as the named
// alternative, "skip fragment-output stage", with an observable
// contract: Run's return value reports whether that call discarded its
// fragment.
func (fs *FragmentShader) Discard() {
	fs.discarded = true
}

// Run clears the discard flag, executes fn, and returns whether the
// fragment was discarded.
func (fs *FragmentShader) Run() (discarded bool) {
	fs.discarded = false
	fs.fn(fs)
	return fs.discarded
}

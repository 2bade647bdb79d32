package shaders

import (
	"testing"

	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/strid"
)

func TestProgramRebindsUniformsOnConstruction(t *testing.T) {
	verts := objstore.NewStore[VertexShader]()
	frags := objstore.NewStore[FragmentShader]()

	vertHandle := verts.Create(*NewVertexShader(func(vs *VertexShader) {}))
	fragHandle := frags.Create(*NewFragmentShader(func(fs *FragmentShader) {}))

	prog := NewProgram(vertHandle, fragHandle)
	key := strid.Hash("uColor")
	prog.SetUniform(key, UniformValue{Kind: KindVec4, Vec4: gglm.Vec4{Data: [4]float32{1, 0, 0, 1}}})

	got, ok := vertHandle.Get().Uniforms.Get(key)
	if !ok || got.Vec4.X() != 1 {
		t.Errorf("expected vertex shader's Uniforms to see the program's value, got %v ok=%v", got, ok)
	}
	got, ok = fragHandle.Get().Uniforms.Get(key)
	if !ok || got.Vec4.X() != 1 {
		t.Errorf("expected fragment shader's Uniforms to see the program's value, got %v ok=%v", got, ok)
	}
}

func TestVertexShaderRunResizesAttributesAndSetsVertexId(t *testing.T) {
	vs := NewVertexShader(func(vs *VertexShader) {
		a := vs.Attributes[0]
		vs.Position = gglm.Vec4{Data: [4]float32{a.F32, 0, 0, 1}}
	})
	vs.Attributes = []UniformValue{{Kind: KindF32, F32: 7}}

	pos := vs.Run(42, 1)
	if vs.VertexId != 42 {
		t.Errorf("expected VertexId=42, got %d", vs.VertexId)
	}
	if pos.X() != 7 {
		t.Errorf("expected Position.X=7, got %v", pos.X())
	}
}

func TestFragmentShaderDiscardIsObservablePerRun(t *testing.T) {
	fs := NewFragmentShader(func(fs *FragmentShader) {
		fs.Discard()
	})
	if discarded := fs.Run(); !discarded {
		t.Errorf("expected Run to report discarded=true")
	}

	fs2 := NewFragmentShader(func(fs *FragmentShader) {
		fs.FragColor = gglm.Vec4{Data: [4]float32{0, 1, 0, 1}}
	})
	if discarded := fs2.Run(); discarded {
		t.Errorf("expected Run to report discarded=false when Discard was not called")
	}
}

func TestInOutVarsIntegerFlagSurvivesGetSet(t *testing.T) {
	vars := InOutVars{}
	key := strid.Hash("vId")
	vars.Set(key, NewI32(3))

	got := vars.Get(key, KindI32, true)
	if !got.Integer || got.I32 != 3 {
		t.Errorf("expected Integer=true, I32=3, got %+v", got)
	}
}

// Package shaders implements the callable vertex/fragment routines with
// their typed in/out variable tables and the shared uniform dictionary a
// Program binds them to. Grounded on include/swrast/state/Program.h and
// src/swrast/state/Program.cpp, with the source's type-erased std::any
// replaced by explicit tagged unions per spec.md §9 ("Dynamically-typed
// uniforms / attributes").
package shaders

import "github.com/bloeys/gglm/gglm"

// IVec2, IVec3 and IVec4 hold integer vector attributes. gglm only
// exposes float vector types in the pack this is grounded on, so these
// are plain local types rather than a guessed gglm API.
type IVec2 struct{ X, Y int32 }
type IVec3 struct{ X, Y, Z int32 }
type IVec4 struct{ X, Y, Z, W int32 }

// VarKind tags which field of an InOutVar or UniformValue is live.
type VarKind uint8

const (
	KindI32 VarKind = iota
	KindF32
	KindVec2
	KindIVec2
	KindVec3
	KindIVec3
	KindVec4
	KindIVec4
	KindMat3
	KindMat4
)

// InOutVar is a tagged variant over the scalar/vector shapes a shader's
// in/out table can hold, plus the Integer flag spec.md §3 calls out:
// integer variants are never interpolated by Primitive.Interpolate.
type InOutVar struct {
	Kind    VarKind
	Integer bool

	I32   int32
	F32   float32
	Vec2  gglm.Vec2
	IVec2 IVec2
	Vec3  gglm.Vec3
	IVec3 IVec3
	Vec4  gglm.Vec4
	IVec4 IVec4
}

func NewI32(v int32) InOutVar     { return InOutVar{Kind: KindI32, Integer: true, I32: v} }
func NewF32(v float32) InOutVar   { return InOutVar{Kind: KindF32, F32: v} }
func NewVec2(v gglm.Vec2) InOutVar { return InOutVar{Kind: KindVec2, Vec2: v} }
func NewIVec2(v IVec2) InOutVar   { return InOutVar{Kind: KindIVec2, Integer: true, IVec2: v} }
func NewVec3(v gglm.Vec3) InOutVar { return InOutVar{Kind: KindVec3, Vec3: v} }
func NewIVec3(v IVec3) InOutVar   { return InOutVar{Kind: KindIVec3, Integer: true, IVec3: v} }
func NewVec4(v gglm.Vec4) InOutVar { return InOutVar{Kind: KindVec4, Vec4: v} }
func NewIVec4(v IVec4) InOutVar   { return InOutVar{Kind: KindIVec4, Integer: true, IVec4: v} }

// AsVec4 widens any float-kind variant to a vec4 view (zero-padded),
// used by Primitive.Interpolate's component-wise lerp. Calling this on
// an Integer variant is a programmer error.
func (v *InOutVar) AsVec4() gglm.Vec4 {
	switch v.Kind {
	case KindF32:
		return gglm.Vec4{Data: [4]float32{v.F32, 0, 0, 0}}
	case KindVec2:
		return gglm.Vec4{Data: [4]float32{v.Vec2.X(), v.Vec2.Y(), 0, 0}}
	case KindVec3:
		return gglm.Vec4{Data: [4]float32{v.Vec3.X(), v.Vec3.Y(), v.Vec3.Z(), 0}}
	case KindVec4:
		return v.Vec4
	default:
		return gglm.Vec4{}
	}
}

// SetFromVec4 writes back a component-wise lerp result computed via
// AsVec4, narrowing to v's own kind. v's Kind and Integer flag are left
// unchanged; calling this on an Integer variant is a programmer error.
func (v *InOutVar) SetFromVec4(x gglm.Vec4) {
	switch v.Kind {
	case KindF32:
		v.F32 = x.X()
	case KindVec2:
		v.Vec2 = gglm.Vec2{Data: [2]float32{x.X(), x.Y()}}
	case KindVec3:
		v.Vec3 = gglm.Vec3{Data: [3]float32{x.X(), x.Y(), x.Z()}}
	case KindVec4:
		v.Vec4 = x
	}
}

// UniformValue is a tagged union over the shapes a uniform may hold,
// adding Mat3/Mat4 to InOutVar's shape set per spec.md §9.
type UniformValue struct {
	Kind VarKind

	I32   int32
	F32   float32
	Vec2  gglm.Vec2
	IVec2 IVec2
	Vec3  gglm.Vec3
	IVec3 IVec3
	Vec4  gglm.Vec4
	IVec4 IVec4
	Mat3  gglm.Mat3
	Mat4  gglm.Mat4
}

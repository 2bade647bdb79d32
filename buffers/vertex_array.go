package buffers

import (
	"github.com/bloeys/nmage/assert"

	"github.com/bloeys/swrast/objstore"
)

// AttributeType enumerates the scalar/vector/matrix shapes a vertex
// attribute can hold, matching §3's AttributeType. Index order is
// significant: it lines up with byteSizes below.
type AttributeType uint8

const (
	AttributeI32 AttributeType = iota
	AttributeF32
	AttributeVec2
	AttributeIVec2
	AttributeVec3
	AttributeIVec3
	AttributeVec4
	AttributeIVec4
	AttributeMat3
	AttributeMat4
)

var byteSizes = [...]int{4, 4, 8, 8, 12, 12, 16, 16, 36, 64}

// ByteSize returns the fixed byte size of t, per §3's byte size table.
func (t AttributeType) ByteSize() int {
	assert.T(int(t) < len(byteSizes), "buffers: unknown AttributeType value '%d'", t)
	return byteSizes[t]
}

func (t AttributeType) String() string {
	switch t {
	case AttributeI32:
		return "i32"
	case AttributeF32:
		return "f32"
	case AttributeVec2:
		return "vec2"
	case AttributeIVec2:
		return "ivec2"
	case AttributeVec3:
		return "vec3"
	case AttributeIVec3:
		return "ivec3"
	case AttributeVec4:
		return "vec4"
	case AttributeIVec4:
		return "ivec4"
	case AttributeMat3:
		return "mat3"
	case AttributeMat4:
		return "mat4"
	default:
		return "unknown"
	}
}

// VertexAttribute describes one attribute fetched out of a VertexBuffer:
// a handle to its source buffer, its shape, and its stride/offset in
// bytes. Location is the attribute's index in the VertexArray's ordered
// Attributes list, matching §3's "(source VertexBuffer handle,
// AttributeType, stride, offset)".
type VertexAttribute struct {
	Vbo    objstore.Handle[VertexBuffer]
	Type   AttributeType
	Stride int
	Offset int
}

// VertexArray is an ordered list of VertexAttribute plus an optional
// IndexBuffer handle, matching §3's VertexArray verbatim ("ordered list
// of VertexAttribute plus an optional IndexBuffer handle"). Grounded on
// the teacher's buffers/vertex_array.go for the same "descriptor list +
// optional index buffer" shape, with the GL attribute-pointer binding
// replaced by the pipeline's own attribute-fetch memcpy (see pipeline's
// assembleVertexAttributes) and VBOs referenced by objstore handle
// rather than held inline, so the same VertexBuffer can back more than
// one VertexArray's attributes.
type VertexArray struct {
	Attributes  []VertexAttribute
	IndexBuffer objstore.Handle[IndexBuffer]
}

func NewVertexArray() VertexArray {
	return VertexArray{}
}

// AddAttribute appends an attribute descriptor to the array's ordered
// list; its location is its resulting index.
func (va *VertexArray) AddAttribute(attr VertexAttribute) {
	va.Attributes = append(va.Attributes, attr)
}

func (va *VertexArray) SetIndexBuffer(ib objstore.Handle[IndexBuffer]) {
	va.IndexBuffer = ib
}

// HasIndexBuffer reports whether DrawIndexed can source vertex ids from
// va directly, per §4.6's iteration rule.
func (va *VertexArray) HasIndexBuffer() bool {
	return va.IndexBuffer.Valid()
}

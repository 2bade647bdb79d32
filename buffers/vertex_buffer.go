// Package buffers implements the raw vertex/index payloads and the
// VertexArray attribute descriptor list the pipeline fetches attributes
// through. Grounded on the teacher's buffers/vertex_buffer.go,
// buffers/index_buffer.go and buffers/vertex_array.go — the same field
// names and constructor shape, with the GL backing swapped for a
// plain CPU-owned byte/float slice.
package buffers

import (
	"encoding/binary"
	"math"
)

// VertexBuffer is an immutable (for the duration of a draw) ordered
// sequence of 32-bit floats, matching §3's VertexBuffer.
type VertexBuffer struct {
	Data []float32
}

func NewVertexBuffer(data []float32) VertexBuffer {
	return VertexBuffer{Data: append([]float32(nil), data...)}
}

// Bytes reinterprets Data as its little-endian byte representation. The
// pipeline's attribute fetch does not use it: assembleVertexAttributes
// reads Data's floats directly.
func (vb *VertexBuffer) Bytes() []byte {
	out := make([]byte, len(vb.Data)*4)
	for i, f := range vb.Data {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], math.Float32bits(f))
	}
	return out
}

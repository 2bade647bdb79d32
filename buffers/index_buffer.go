package buffers

// IndexBuffer is an immutable ordered sequence of 32-bit unsigned
// integers, matching §3's IndexBuffer.
type IndexBuffer struct {
	Data []uint32
}

func NewIndexBuffer(data []uint32) IndexBuffer {
	return IndexBuffer{Data: append([]uint32(nil), data...)}
}

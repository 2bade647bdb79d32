// Package swrast is the facade over the rasterizer's object stores and
// per-draw state: Init/Destroy, the active framebuffer/program/vertex
// array setters, Clear, DrawArrays/DrawIndexed, and one exported object
// store per kind (each with Create/Get/Delete). Grounded on
// state/State.{h,cpp}.
package swrast

import (
	"github.com/bloeys/gglm/gglm"
)

// Colors is a small named-color convenience palette, restored from the
// reference's swrast_private.h Colors struct (a demo-app convenience
// the distillation dropped, useful to any caller of Clear/SetUniform).
var Colors = struct {
	Red, Green, Blue, Yellow, Magenta, Cyan, White, Gray gglm.Vec4
}{
	Red:     gglm.Vec4{Data: [4]float32{1, 0, 0, 1}},
	Green:   gglm.Vec4{Data: [4]float32{0, 1, 0, 1}},
	Blue:    gglm.Vec4{Data: [4]float32{0, 0, 1, 1}},
	Yellow:  gglm.Vec4{Data: [4]float32{1, 1, 0, 1}},
	Magenta: gglm.Vec4{Data: [4]float32{1, 0, 1, 1}},
	Cyan:    gglm.Vec4{Data: [4]float32{0, 1, 1, 1}},
	White:   gglm.Vec4{Data: [4]float32{1, 1, 1, 1}},
	Gray:    gglm.Vec4{Data: [4]float32{0.1, 0.1, 0.1, 1}},
}

// PackRGBA truncates color's channels to 8 bits (×255) and packs them
// into a single 0xRRGGBBAA uint32, matching utils.cpp's to_rgba(Color).
func PackRGBA(color gglm.Vec4) uint32 {
	return ColorToRGBA(uint8(color.X()*255), uint8(color.Y()*255), uint8(color.Z()*255), uint8(color.W()*255))
}

// ColorToRGBA packs four 8-bit channels into 0xRRGGBBAA, matching
// utils.cpp's to_rgba(r,g,b,a).
func ColorToRGBA(r, g, b, a uint8) uint32 {
	var c uint32
	c |= uint32(r) << (3 * 8)
	c |= uint32(g) << (2 * 8)
	c |= uint32(b) << (1 * 8)
	c |= uint32(a) << (0 * 8)
	return c
}

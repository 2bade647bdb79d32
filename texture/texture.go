// Package texture implements the 2D image object: a flat byte payload with
// a configurable internal format, magnification/minification filters and
// wrap modes. Grounded on state/Texture.{h,cpp} from the reference
// implementation, with channel/format naming matching the teacher's
// FramebufferAttachmentDataFormat style (buffers/framebuffer.go).
package texture

import (
	"encoding/binary"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nmage/assert"
	"github.com/bloeys/nmage/logging"

	"github.com/bloeys/swrast/errs"
)

// Format is the internal pixel format of a Texture.
type Format uint8

const (
	FormatUndefined Format = iota
	FormatR
	FormatRGB
	FormatRGBA
)

// ChannelCount returns the number of bytes-per-pixel for f.
func (f Format) ChannelCount() int {
	switch f {
	case FormatUndefined:
		return 0
	case FormatR:
		return 1
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	}
	assert.T(false, "texture: unknown Format value '%d'", f)
	return 0
}

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case FormatR:
		return "r"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// ScaleMethod selects the filter used when a texture is sampled at a
// non-integer coordinate. The pipeline itself never samples (see
// SPEC_FULL.md Non-goals); this only records the setting for a fragment
// shader that chooses to.
type ScaleMethod uint8

const (
	ScaleLinear ScaleMethod = iota
	ScaleNearest
)

// WrapMethod selects the out-of-bounds addressing behavior.
type WrapMethod uint8

const (
	WrapRepeat WrapMethod = iota
	WrapRepeatMirror
	WrapClampToEdge
)

// Spec configures a new Texture. Use DefaultSpec for the filter/wrap
// defaults the reference TextureSpec carries (Linear mag, Nearest min,
// Repeat/Repeat wrap).
type Spec struct {
	IntFormat Format
	MagFilter ScaleMethod
	MinFilter ScaleMethod
	WrapS     WrapMethod
	WrapT     WrapMethod
}

// DefaultSpec returns the zero-configuration texture spec: internal format
// deduced from the data format, linear magnification, nearest
// minification, repeat wrapping on both axes.
func DefaultSpec() Spec {
	return Spec{
		IntFormat: FormatUndefined,
		MagFilter: ScaleLinear,
		MinFilter: ScaleNearest,
		WrapS:     WrapRepeat,
		WrapT:     WrapRepeat,
	}
}

// Texture is a 2D image: size, internal format, filters/wrap modes and a
// flat row-major byte payload of length Width*Height*channels.
type Texture struct {
	Width, Height uint32
	IntFormat     Format
	MagFilter     ScaleMethod
	MinFilter     ScaleMethod
	WrapS         WrapMethod
	WrapT         WrapMethod

	data []byte
}

// New constructs a Texture. If data is nil a zero-initialized payload of
// the right size is allocated. Programmer-error preconditions (non-zero
// size, a defined data format, a data payload of the right length) are
// checked by assertion, matching the reference constructor's use of
// `assert()` for the same three conditions. Attempting to store data in a
// format different than the resolved internal format fails with
// NotImplemented (format conversion is not implemented), matching the
// reference's `RAISEn(NotImplementedException)` for that case.
func New(data []byte, width, height uint32, dataFormat Format, spec Spec) (Texture, error) {
	assert.T(width != 0 && height != 0, "texture size must be non-zero, got %dx%d", width, height)
	assert.T(dataFormat != FormatUndefined, "texture data format must be defined")
	if data != nil {
		assert.T(
			len(data) == int(width)*int(height)*dataFormat.ChannelCount(),
			"texture data length=%d does not match width*height*channels=%d",
			len(data), int(width)*int(height)*dataFormat.ChannelCount(),
		)
	}

	intFormat := spec.IntFormat
	if intFormat == FormatUndefined {
		intFormat = dataFormat
	}
	if dataFormat != intFormat {
		err := errs.NotImplementedf("texture: converting data_format=%s to a different internal_format=%s is not implemented", dataFormat, intFormat)
		logging.ErrLog.Println(err)
		return Texture{}, err
	}

	t := Texture{
		Width:     width,
		Height:    height,
		IntFormat: intFormat,
		MagFilter: spec.MagFilter,
		MinFilter: spec.MinFilter,
		WrapS:     spec.WrapS,
		WrapT:     spec.WrapT,
	}

	if data != nil {
		t.data = append([]byte(nil), data...)
	} else {
		t.data = make([]byte, int(width)*int(height)*intFormat.ChannelCount())
	}

	return t, nil
}

func (t *Texture) SetMagFilter(m ScaleMethod) { t.MagFilter = m }
func (t *Texture) SetMinFilter(m ScaleMethod) { t.MinFilter = m }
func (t *Texture) SetWrapS(w WrapMethod)      { t.WrapS = w }
func (t *Texture) SetWrapT(w WrapMethod)      { t.WrapT = w }

// PixelOffset returns the byte offset of pixel (x,y) within the payload,
// per the row-major layout offset = (y*width + x)*channels.
func (t *Texture) PixelOffset(x, y uint32) (int, bool) {
	if x >= t.Width || y >= t.Height {
		return 0, false
	}
	return int(y*t.Width+x) * t.IntFormat.ChannelCount(), true
}

// GetPixel returns the byte slice for pixel (x,y), aliasing the texture's
// backing array so writes through it mutate the texture. Returns nil, false
// if (x,y) is out of bounds.
func (t *Texture) GetPixel(x, y uint32) ([]byte, bool) {
	off, ok := t.PixelOffset(x, y)
	if !ok {
		return nil, false
	}
	n := t.IntFormat.ChannelCount()
	return t.data[off : off+n], true
}

// Fill converts c to 8-bit channels by multiplying by 255 and truncating,
// then writes that color into every pixel: the r channel alone for
// single-channel textures, r/g/b[/a] per pixel otherwise.
func (t *Texture) Fill(c gglm.Vec4) {
	channels := t.IntFormat.ChannelCount()
	assert.T(channels == 1 || channels == 3 || channels == 4, "texture: Fill called on a texture with unexpected channel count=%d", channels)

	r := uint8(c.X() * 255)
	g := uint8(c.Y() * 255)
	b := uint8(c.Z() * 255)
	a := uint8(c.W() * 255)

	if channels == 1 {
		for i := range t.data {
			t.data[i] = r
		}
		return
	}

	for i := 0; i+channels <= len(t.data); i += channels {
		t.data[i] = r
		t.data[i+1] = g
		t.data[i+2] = b
		if channels == 4 {
			t.data[i+3] = a
		}
	}
}

// FillDepth writes the raw float32 bits of v into every pixel of the
// payload, reinterpreting the storage as a flat array of f32 rather than
// 8-bit color channels. This is how the pipeline treats a framebuffer's
// depth attachment (see framebuffer.Framebuffer.Clear and pipeline's
// fragment output stage), and matches the depth-format fix described in
// DESIGN.md's framebuffer section: the depth attachment holds 4
// bytes/pixel regardless of its nominal color Format.
func (t *Texture) FillDepth(v float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	for i := 0; i+4 <= len(t.data); i += 4 {
		copy(t.data[i:i+4], buf[:])
	}
}

// DepthAt reads the float32 at pixel (x,y), treating the payload as a flat
// f32 array (see FillDepth).
func (t *Texture) DepthAt(x, y uint32) (float32, bool) {
	off, ok := t.PixelOffset(x, y)
	if !ok || off+4 > len(t.data) {
		return 0, false
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(t.data[off : off+4])), true
}

// SetDepthAt writes v as raw float32 bits at pixel (x,y) (see FillDepth).
func (t *Texture) SetDepthAt(x, y uint32, v float32) bool {
	off, ok := t.PixelOffset(x, y)
	if !ok || off+4 > len(t.data) {
		return false
	}
	binary.LittleEndian.PutUint32(t.data[off:off+4], math.Float32bits(v))
	return true
}

// Data returns the texture's raw byte payload (read-only use expected;
// mutate through Fill/GetPixel/SetDepthAt instead).
func (t *Texture) Data() []byte {
	return t.data
}

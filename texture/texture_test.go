package texture

import (
	"math"
	"testing"

	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/errs"
)

func TestNewZeroInitializesWithoutData(t *testing.T) {
	tex, err := New(nil, 2, 2, FormatRGBA, DefaultSpec())
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if len(tex.Data()) != 2*2*4 {
		t.Errorf("expected payload length=%d, got %d", 2*2*4, len(tex.Data()))
	}
	for i, b := range tex.Data() {
		if b != 0 {
			t.Errorf("expected zero-initialized payload, byte %d = %d", i, b)
		}
	}
}

func TestNewFormatMismatchIsNotImplemented(t *testing.T) {
	spec := DefaultSpec()
	spec.IntFormat = FormatRGB
	data := make([]byte, 2*2*4)

	_, err := New(data, 2, 2, FormatRGBA, spec)
	if !errs.Is(err, errs.NotImplemented) {
		t.Fatalf("expected NotImplemented for data_format != internal_format, got %v", err)
	}
}

func TestFillTruncatesTo8Bit(t *testing.T) {
	tex, err := New(nil, 4, 4, FormatRGBA, DefaultSpec())
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}

	tex.Fill(gglm.Vec4{Data: [4]float32{1, 0, 0, 1}})

	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			px, ok := tex.GetPixel(x, y)
			if !ok {
				t.Fatalf("GetPixel(%d,%d): expected ok=true", x, y)
			}
			if px[0] != 255 || px[1] != 0 || px[2] != 0 || px[3] != 255 {
				t.Errorf("pixel (%d,%d): expected (255,0,0,255), got %v", x, y, px)
			}
		}
	}
}

func TestGetPixelOutOfBounds(t *testing.T) {
	tex, _ := New(nil, 2, 2, FormatRGBA, DefaultSpec())
	if _, ok := tex.GetPixel(2, 0); ok {
		t.Errorf("GetPixel(2,0): expected ok=false for a 2x2 texture")
	}
}

func TestFillDepthWritesIEEE754One(t *testing.T) {
	tex, _ := New(nil, 2, 2, FormatRGBA, DefaultSpec())
	tex.FillDepth(1.0)

	data := tex.Data()
	bits := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	if bits != 0x3F800000 {
		t.Errorf("expected first float bytes to encode 0x3F800000, got 0x%X", bits)
	}

	v, ok := tex.DepthAt(1, 1)
	if !ok || v != 1.0 {
		t.Errorf("DepthAt(1,1): expected (1.0, true), got (%v, %v)", v, ok)
	}
}

func TestSetDepthAtRoundTrip(t *testing.T) {
	tex, _ := New(nil, 2, 2, FormatRGBA, DefaultSpec())
	if !tex.SetDepthAt(0, 0, 0.25) {
		t.Fatalf("SetDepthAt(0,0): expected ok=true")
	}
	v, ok := tex.DepthAt(0, 0)
	if !ok || math.Abs(float64(v-0.25)) > 1e-6 {
		t.Errorf("DepthAt(0,0): expected ~0.25, got %v ok=%v", v, ok)
	}
}

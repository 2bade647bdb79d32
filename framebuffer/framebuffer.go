// Package framebuffer implements the render target object: a tuple of
// color attachments plus an optional depth attachment, with the size
// invariants the reference Framebuffer constructor checks. Grounded on
// state/Framebuffer.{h,cpp}.
package framebuffer

import (
	"github.com/bloeys/gglm/gglm"

	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/texture"
)

// Status mirrors FramebufferState from the reference implementation.
type Status uint8

const (
	StatusComplete Status = iota
	StatusMissingColor
	StatusSizeMismatch
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "Complete"
	case StatusMissingColor:
		return "missing color attachment"
	case StatusSizeMismatch:
		return "an attachment's size does not match the framebuffer's size"
	default:
		return "unknown"
	}
}

// Spec describes the attachments a new Framebuffer is built from.
type Spec struct {
	DepthBuffer     *objstore.Handle[texture.Texture]
	ColorAttachments []objstore.Handle[texture.Texture]
}

// Framebuffer is a render target: size, optional depth attachment, ordered
// color attachments and the derived Status.
type Framebuffer struct {
	Width, Height uint32
	Status        Status

	DepthBuffer      *objstore.Handle[texture.Texture]
	ColorAttachments []objstore.Handle[texture.Texture]
}

// New validates attachment sizes and non-emptiness per §3's Framebuffer
// invariants and returns the resulting Framebuffer with its Status set
// accordingly. A non-Complete framebuffer must not be used for rendering;
// callers of the pipeline are responsible for checking Status before
// calling Draw (see pipeline.Driver.Draw).
func New(width, height uint32, spec Spec) Framebuffer {
	fb := Framebuffer{
		Width:            width,
		Height:           height,
		DepthBuffer:      spec.DepthBuffer,
		ColorAttachments: spec.ColorAttachments,
	}

	for _, c := range spec.ColorAttachments {
		t := c.Get()
		if t.Width != width || t.Height != height {
			fb.Status = StatusSizeMismatch
			return fb
		}
	}
	if spec.DepthBuffer != nil {
		t := spec.DepthBuffer.Get()
		if t.Width != width || t.Height != height {
			fb.Status = StatusSizeMismatch
			return fb
		}
	}
	if len(spec.ColorAttachments) == 0 {
		fb.Status = StatusMissingColor
		return fb
	}

	fb.Status = StatusComplete
	return fb
}

// CreateBasic builds a framebuffer with one rgba color attachment and one
// depth attachment, registering both textures in textures.
//
// The reference implementation has two copies of this constructor: the
// one State::Init uses allocates the depth buffer as TexFormat::rgba (4
// bytes/pixel, matching what the depth test reads), while
// Framebuffer::CreateBasic allocates it as TexFormat::r (1 byte/pixel) —
// the bug flagged in spec.md §9. This always uses the 4-byte/pixel form.
func CreateBasic(textures *objstore.Store[texture.Texture], width, height uint32) (Framebuffer, error) {
	depthTex, err := texture.New(nil, width, height, texture.FormatRGBA, texture.DefaultSpec())
	if err != nil {
		return Framebuffer{}, err
	}
	depthHandle := textures.Create(depthTex)

	colorTex, err := texture.New(nil, width, height, texture.FormatRGBA, texture.DefaultSpec())
	if err != nil {
		return Framebuffer{}, err
	}
	colorHandle := textures.Create(colorTex)

	return New(width, height, Spec{
		DepthBuffer:      &depthHandle,
		ColorAttachments: []objstore.Handle[texture.Texture]{colorHandle},
	}), nil
}

// Clear fills every color attachment with *color (when color is non-nil)
// and, when depth is true and a depth attachment exists, fills it with
// 1.0 in every channel (i.e. every pixel's stored float is 1.0).
func (fb *Framebuffer) Clear(color *gglm.Vec4, depth bool) {
	if color != nil {
		for _, c := range fb.ColorAttachments {
			c.Get().Fill(*color)
		}
	}
	if depth && fb.DepthBuffer != nil {
		fb.DepthBuffer.Get().FillDepth(1.0)
	}
}

// GetColorAttach returns the i-th color attachment, or false if index is
// out of range.
func (fb *Framebuffer) GetColorAttach(index int) (objstore.Handle[texture.Texture], bool) {
	if index < 0 || index >= len(fb.ColorAttachments) {
		return objstore.Handle[texture.Texture]{}, false
	}
	return fb.ColorAttachments[index], true
}

// GetDepthBuffer returns the depth attachment, or false if the framebuffer
// has none.
func (fb *Framebuffer) GetDepthBuffer() (objstore.Handle[texture.Texture], bool) {
	if fb.DepthBuffer == nil {
		return objstore.Handle[texture.Texture]{}, false
	}
	return *fb.DepthBuffer, true
}

func (fb *Framebuffer) HasColorAttachment() bool {
	return len(fb.ColorAttachments) > 0
}

func (fb *Framebuffer) HasDepthAttachment() bool {
	return fb.DepthBuffer != nil
}

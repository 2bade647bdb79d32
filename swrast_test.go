package swrast

import (
	"testing"

	"github.com/bloeys/swrast/framebuffer"
	"github.com/bloeys/swrast/objstore"
	"github.com/bloeys/swrast/primitive"
)

func TestColorToRGBAMatchesByteOrder(t *testing.T) {
	got := ColorToRGBA(0x11, 0x22, 0x33, 0x44)
	want := uint32(0x11223344)
	if got != want {
		t.Errorf("ColorToRGBA(0x11,0x22,0x33,0x44) = 0x%X, want 0x%X", got, want)
	}
}

func TestPackRGBATruncatesColorChannels(t *testing.T) {
	got := PackRGBA(Colors.Red)
	want := uint32(0xFF0000FF)
	if got != want {
		t.Errorf("PackRGBA(Red) = 0x%X, want 0x%X", got, want)
	}
}

func TestInitCreatesCompleteDefaultFramebuffer(t *testing.T) {
	s, err := Init(4, 4)
	if err != nil {
		t.Fatalf("Init: unexpected error: %v", err)
	}
	fb := s.GetActiveFramebuffer()
	if !fb.Valid() {
		t.Fatalf("expected a valid default framebuffer handle")
	}
	if fb.Get().Width != 4 || fb.Get().Height != 4 {
		t.Errorf("expected 4x4 default framebuffer, got %dx%d", fb.Get().Width, fb.Get().Height)
	}
	if fb.Get().Status != framebuffer.StatusComplete {
		t.Errorf("expected the default framebuffer to be Complete, got %v", fb.Get().Status)
	}
}

func TestSetActiveFramebufferNilRestoresDefault(t *testing.T) {
	s, _ := Init(2, 2)

	other, err := framebuffer.CreateBasic(s.Textures, 2, 2)
	if err != nil {
		t.Fatalf("CreateBasic: unexpected error: %v", err)
	}
	otherHandle := s.Framebuffers.Create(other)

	if err := s.SetActiveFramebuffer(&otherHandle.ID); err != nil {
		t.Fatalf("SetActiveFramebuffer: unexpected error: %v", err)
	}
	if s.GetActiveFramebuffer().ID == s.defaultFb.ID {
		t.Fatalf("expected active framebuffer to change away from default")
	}

	if err := s.SetActiveFramebuffer(nil); err != nil {
		t.Fatalf("SetActiveFramebuffer(nil): unexpected error: %v", err)
	}
	if s.GetActiveFramebuffer().ID != s.defaultFb.ID {
		t.Errorf("expected SetActiveFramebuffer(nil) to restore the default framebuffer")
	}
}

func TestSetActiveFramebufferMissingIdIsError(t *testing.T) {
	s, _ := Init(2, 2)
	bogus := objstore.Id(9999)
	if err := s.SetActiveFramebuffer(&bogus); err == nil {
		t.Errorf("expected an error for a nonexistent framebuffer id")
	}
}

func TestDrawWithoutActiveProgramIsError(t *testing.T) {
	s, _ := Init(2, 2)
	if err := s.DrawArrays(primitive.KindTriangles, 0, 3); err == nil {
		t.Errorf("expected an error when drawing with no active program")
	}
}

func TestDestroyInvalidatesActiveHandles(t *testing.T) {
	s, _ := Init(2, 2)
	s.Destroy()
	if s.GetActiveFramebuffer().Valid() {
		t.Errorf("expected Destroy to invalidate the active framebuffer handle")
	}
}

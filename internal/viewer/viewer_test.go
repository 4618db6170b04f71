package viewer

import (
	"image"
	"testing"
)

func TestLayoutKeepsFrameSize(t *testing.T) {
	g := newFrameGame(image.NewNRGBA(image.Rect(0, 0, 320, 200)))
	w, h := g.Layout(1920, 1080)
	if w != 320 || h != 200 {
		t.Errorf("Layout = %dx%d, want 320x200", w, h)
	}
}

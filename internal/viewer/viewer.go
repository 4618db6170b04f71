// Package viewer shows a rendered frame in a desktop window.
package viewer

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Show opens a window displaying img at its own size and blocks until the
// window is closed or Escape or Q is pressed.
func Show(title string, img image.Image) error {
	g := newFrameGame(img)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type frameGame struct {
	src    image.Image
	frame  *ebiten.Image
	width  int
	height int
}

func newFrameGame(img image.Image) *frameGame {
	b := img.Bounds()
	return &frameGame{src: img, width: b.Dx(), height: b.Dy()}
}

func (g *frameGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *frameGame) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.frame, nil)
}

// Layout keeps the logical screen at the frame size; ebiten scales it to the
// window.
func (g *frameGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

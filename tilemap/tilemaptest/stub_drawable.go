package tilemaptest

import (
	"image"

	"github.com/MobRulesGames/isomap/tilemap"
)

// StubDraw records where it was drawn and reports hits inside Bounds, which
// is relative to the top corner of its node.
type StubDraw struct {
	Name   string
	Bounds image.Rectangle
	Drawn  []image.Point

	// Shared log of draw order across several stubs.
	Order *[]string
}

var _ tilemap.Drawable = (*StubDraw)(nil)

func (s *StubDraw) Draw(canvas tilemap.RenderTarget, x, y int) {
	s.Drawn = append(s.Drawn, image.Pt(x, y))
	if s.Order != nil {
		*s.Order = append(*s.Order, s.Name)
	}
}

func (s *StubDraw) HitTest(x, y, testX, testY int) bool {
	return image.Pt(testX-x, testY-y).In(s.Bounds)
}

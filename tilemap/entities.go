package tilemap

import (
	"image"

	"github.com/runningwild/glop/util/algorithm"
)

// RenderTarget is the surface the map draws onto. The map only narrows and
// restores its clip rectangle; all pixel work goes through a SpriteSheet or a
// Drawable.
type RenderTarget interface {
	ClipRect() image.Rectangle
	SetClipRect(image.Rectangle)
}

// SpriteSheet supplies the floor, wall and decoration sprites for a map.
type SpriteSheet interface {
	// SpriteSize returns the pixel size of a sprite; ok is false for sprites
	// the sheet does not have.
	SpriteSize(sprite uint8) (width, height int, ok bool)
	DrawSprite(canvas RenderTarget, sprite uint8, x, y int, drawFlags uint8)
}

// Drawable is anything attached to a node that draws itself and can be
// hit-tested. Implementations must be comparable (typically pointers) so they
// can be removed from an EntityList.
type Drawable interface {
	// Draw at canvas position (x, y), which is the top corner of the node's
	// diamond.
	Draw(canvas RenderTarget, x, y int)

	// HitTest reports whether point (testX, testY) hits the drawable when it
	// is drawn with its node's top corner at (x, y).
	HitTest(x, y, testX, testY int) bool
}

// EntityList is an ordered list of drawables sharing a node. Items draw in
// insertion order and hit-test in reverse.
type EntityList struct {
	items []Drawable
}

func (l *EntityList) Add(d Drawable) {
	l.items = append(l.items, d)
}

// Remove drops every occurrence of d and reports whether any was found.
func (l *EntityList) Remove(d Drawable) bool {
	before := len(l.items)
	algorithm.Choose(&l.items, func(item Drawable) bool {
		return item != d
	})
	return len(l.items) != before
}

func (l *EntityList) Len() int {
	return len(l.items)
}

func (l *EntityList) Clear() {
	l.items = nil
}

func (l *EntityList) draw(canvas RenderTarget, x, y int) {
	for _, item := range l.items {
		item.Draw(canvas, x, y)
	}
}

// hitTest tests the items last-to-first, so the one drawn on top wins.
func (l *EntityList) hitTest(x, y, testX, testY int) Drawable {
	for i := len(l.items) - 1; i >= 0; i-- {
		if l.items[i].HitTest(x, y, testX, testY) {
			return l.items[i]
		}
	}
	return nil
}

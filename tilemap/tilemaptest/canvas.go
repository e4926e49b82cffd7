package tilemaptest

import (
	"image"

	"github.com/MobRulesGames/isomap/tilemap"
)

// SpriteDraw is one call to DrawSprite recorded by a Sheet.
type SpriteDraw struct {
	Sprite    uint8
	X, Y      int
	DrawFlags uint8
}

// Sheet is a SpriteSheet whose sprites are all Width x Height (unless
// overridden in Sizes) and which records what it was asked to draw.
type Sheet struct {
	Width, Height int
	Sizes         map[uint8]image.Point
	Draws         []SpriteDraw
}

var _ tilemap.SpriteSheet = (*Sheet)(nil)

func GivenASheet() *Sheet {
	return &Sheet{Width: 64, Height: 32}
}

func (s *Sheet) SpriteSize(sprite uint8) (int, int, bool) {
	if size, ok := s.Sizes[sprite]; ok {
		return size.X, size.Y, true
	}
	return s.Width, s.Height, true
}

func (s *Sheet) DrawSprite(canvas tilemap.RenderTarget, sprite uint8, x, y int, drawFlags uint8) {
	s.Draws = append(s.Draws, SpriteDraw{Sprite: sprite, X: x, Y: y, DrawFlags: drawFlags})
}

func (s *Sheet) SpritesDrawn() []uint8 {
	var ret []uint8
	for _, d := range s.Draws {
		ret = append(ret, d.Sprite)
	}
	return ret
}

// Canvas is a RenderTarget that only tracks its clip rectangle.
type Canvas struct {
	Clip      image.Rectangle
	ClipsSeen []image.Rectangle
}

var _ tilemap.RenderTarget = (*Canvas)(nil)

func GivenACanvas(width, height int) *Canvas {
	return &Canvas{Clip: image.Rect(0, 0, width, height)}
}

func (c *Canvas) ClipRect() image.Rectangle {
	return c.Clip
}

func (c *Canvas) SetClipRect(r image.Rectangle) {
	c.Clip = r
	c.ClipsSeen = append(c.ClipsSeen, r)
}

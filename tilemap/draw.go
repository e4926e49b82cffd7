package tilemap

import "image"

// Sprites in the block sheet used for shadows.
const (
	spriteShadowFull = 74
	spriteShadowHalf = 75
	spriteShadowWall = 156
)

// Draw draws the world pixel rectangle (screenX, screenY, width, height) to
// the rectangle (canvasX, canvasY, width, height) of canvas. World pixel
// co-ordinates are absolute screen co-ordinates, not tile co-ordinates.
//
// The map is drawn in two passes, each one scanline at a time. The first
// pass paints every floor tile, since the whole floor has to be below
// anything else (something walking north through a door paints over the
// floor of the scanline below it). The second pass paints, per scanline, the
// early entities right-to-left and then the walls and entities left-to-right.
func (m *Map) Draw(canvas RenderTarget, screenX, screenY, width, height, canvasX, canvasY int) {
	if m.blocks == nil || len(m.cells) == 0 {
		return
	}

	oldClip := canvas.ClipRect()
	canvas.SetClipRect(oldClip.Intersect(image.Rect(canvasX, canvasY, canvasX+width, canvasY+height)))
	defer canvas.SetClipRect(oldClip)

	for it := m.Nodes(screenX, screenY, width, height, ScanlineForward); it.Valid(); it.Next() {
		node := it.Node()
		x := it.X() + canvasX
		y := it.Y() + canvasY
		m.drawBlock(canvas, node.Blocks[LayerFloor], x, y)
		if node.Has(ShadowFull) {
			m.blocks.DrawSprite(canvas, spriteShadowFull, x-32, y, DrawAlpha75)
		} else if node.Has(ShadowHalf) {
			m.blocks.DrawSprite(canvas, spriteShadowHalf, x-32, y, DrawAlpha75)
		}
	}

	for it := m.Nodes(screenX, screenY, width, height, ScanlineForward); it.Valid(); it.Next() {
		if !it.IsLastOnScanline() {
			continue
		}

		for s := it.Scanline(ScanlineBackward, canvasX, canvasY); s.Valid(); s.Next() {
			s.Node().EarlyEntities.draw(canvas, s.X(), s.Y())
		}

		for s := it.Scanline(ScanlineForward, canvasX, canvasY); s.Valid(); s.Next() {
			node := s.Node()
			m.drawBlock(canvas, node.Blocks[LayerNorthWall], s.X(), s.Y())
			m.drawBlock(canvas, node.Blocks[LayerWestWall], s.X(), s.Y())
			if node.Has(ShadowWall) {
				m.blocks.DrawSprite(canvas, spriteShadowWall, s.X()-32, s.Y()-56, DrawAlpha75)
			}
			node.Entities.draw(canvas, s.X(), s.Y())
		}
	}
}

// drawBlock draws a block sprite so that its bottom sits on the bottom corner
// of the node's diamond, whose top corner is at (x, y).
func (m *Map) drawBlock(canvas RenderTarget, block Block, x, y int) {
	if block.Empty() {
		return
	}
	_, h, ok := m.blocks.SpriteSize(block.Sprite())
	if !ok || h <= 0 {
		return
	}
	m.blocks.DrawSprite(canvas, block.Sprite(), x-32, y-h+32, block.DrawFlags())
}

// HitTest returns the drawable at absolute screen co-ordinates
// (testX, testY), or nil. Drawables are tested in the reverse of the order
// they are drawn in. To hit-test tile co-ordinates instead, look at the
// node's ObjectType or its entity lists directly.
func (m *Map) HitTest(testX, testY int) Drawable {
	if len(m.cells) == 0 {
		return nil
	}
	for it := m.Nodes(testX, testY, 1, 1, ScanlineBackward); it.Valid(); it.Next() {
		node := it.Node()
		if hit := node.Entities.hitTest(it.X(), it.Y(), 0, 0); hit != nil {
			return hit
		}
		if hit := node.EarlyEntities.hitTest(it.X(), it.Y(), 0, 0); hit != nil {
			return hit
		}
	}
	return nil
}

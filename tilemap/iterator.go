package tilemap

import "github.com/MobRulesGames/isomap/tilemap/perspective"

// ScanlineDirection selects the order of scanlines for a NodeIterator, and
// the order of nodes within a scanline for a ScanlineIterator.
type ScanlineDirection int

const (
	// Top-to-bottom for scanlines, left-to-right within a scanline.
	ScanlineForward ScanlineDirection = 2
	// Bottom-to-top for scanlines, right-to-left within a scanline.
	ScanlineBackward ScanlineDirection = 0
)

// Maximum extents of the visible parts of a node, in pixels relative to the
// top-most corner of its diamond. Too low and things vanish near the edge of
// the screen; too high and drawing slows down.
const (
	marginTop    = 32
	marginLeft   = 56
	marginRight  = 56
	marginBottom = 70
)

// NodeIterator visits the nodes which might draw something inside a
// screen-space rectangle. It walks one scanline (nodes with the same screen
// y) at a time, top-to-bottom by default, and left-to-right within each
// scanline. To visit a scanline right-to-left, wait until IsLastOnScanline
// and then use Scanline.
//
//	for it := m.Nodes(x, y, w, h, tilemap.ScanlineForward); it.Valid(); it.Next() {
//		...
//	}
type NodeIterator struct {
	m    *Map
	node *Node

	// Position of the node relative to the (unexpanded) rectangle.
	xs, ys int

	// The rectangle, expanded by the margins.
	screenX, screenY          int
	screenWidth, screenHeight int

	// First node of the current scanline.
	baseX, baseY int
	x, y         int

	// Nodes yielded so far on the current scanline.
	scanlineCount int
	direction     ScanlineDirection
}

// Nodes returns an iterator over the nodes which might draw within the
// absolute screen rectangle (screenX, screenY, width, height).
func (m *Map) Nodes(screenX, screenY, width, height int, direction ScanlineDirection) *NodeIterator {
	it := &NodeIterator{
		m:            m,
		screenX:      screenX - marginLeft,
		screenY:      screenY - marginTop,
		screenWidth:  width + marginLeft + marginRight,
		screenHeight: height + marginTop + marginBottom,
		direction:    direction,
	}
	if m.width == 0 || m.height == 0 {
		return it
	}

	if direction == ScanlineForward {
		// Skip the scanlines which are entirely above the rectangle.
		it.baseY = (screenY - marginTop) / 16
		if it.baseY < 0 {
			it.baseY = 0
		} else if it.baseY >= m.height {
			it.baseX = it.baseY - m.height + 1
			it.baseY = m.height - 1
			if it.baseX >= m.width {
				it.baseX = m.width - 1
			}
		}
	} else {
		it.baseX = m.width - 1
		it.baseY = m.height - 1
	}
	it.x = it.baseX
	it.y = it.baseY
	it.advanceUntilVisible()
	return it
}

// Valid is false once the iterator has run out of nodes.
func (it *NodeIterator) Valid() bool {
	return it.node != nil
}

func (it *NodeIterator) Next() {
	it.y--
	it.x++
	it.advanceUntilVisible()
}

// Node is the current node; only meaningful while Valid.
func (it *NodeIterator) Node() *Node {
	return it.node
}

// X of the current node's top corner relative to the rectangle's left edge.
func (it *NodeIterator) X() int {
	return it.xs
}

// Y of the current node's top corner relative to the rectangle's top edge.
func (it *NodeIterator) Y() int {
	return it.ys
}

// TileX and TileY are the world co-ordinates of the current node.
func (it *NodeIterator) TileX() int {
	return it.x
}

func (it *NodeIterator) TileY() int {
	return it.y
}

// IsLastOnScanline reports whether the next node will be on a different
// scanline.
func (it *NodeIterator) IsLastOnScanline() bool {
	return it.y <= 0 || it.x+1 >= it.m.width ||
		it.xs+marginLeft+perspective.TileWidth >= it.screenWidth
}

func (it *NodeIterator) advanceUntilVisible() {
	it.node = nil
	if it.m.width == 0 || it.m.height == 0 {
		return
	}

	for {
		it.xs, it.ys = perspective.WorldToScreen(it.x, it.y)
		it.xs -= it.screenX
		it.ys -= it.screenY

		if it.direction == ScanlineForward {
			if it.ys >= it.screenHeight {
				return
			}
		} else if it.ys < 0 {
			return
		}

		if (it.direction == ScanlineForward && it.ys >= 0) ||
			(it.direction != ScanlineForward && it.ys < it.screenHeight) {
			for it.y >= 0 && it.x < it.m.width {
				if it.xs >= it.screenWidth {
					break
				}
				if it.xs >= 0 {
					it.node = it.m.NodeUnchecked(it.x, it.y)
					it.xs -= marginLeft
					it.ys -= marginTop
					it.scanlineCount++
					return
				}
				it.y--
				it.x++
				it.xs += perspective.TileWidth
			}
		}

		it.scanlineCount = 0
		if it.direction == ScanlineForward {
			if it.baseY == it.m.height-1 {
				it.baseX++
				if it.baseX == it.m.width {
					return
				}
			} else {
				it.baseY++
			}
		} else {
			if it.baseX == 0 {
				if it.baseY == 0 {
					return
				}
				it.baseY--
			} else {
				it.baseX--
			}
		}
		it.x = it.baseX
		it.y = it.baseY
	}
}

// ScanlineIterator re-visits the scanline a NodeIterator has just finished.
type ScanlineIterator struct {
	m *Map

	x, y int
	// World x step per node; world y moves the opposite way.
	dx int

	xs, ys    int
	xStep     int
	remaining int
}

// Scanline returns an iterator over the current scanline, which the
// NodeIterator must have reached the end of (IsLastOnScanline). dir chooses
// left-to-right (ScanlineForward) or right-to-left (ScanlineBackward).
// xOffset and yOffset are added to the reported positions.
func (it *NodeIterator) Scanline(dir ScanlineDirection, xOffset, yOffset int) *ScanlineIterator {
	// ScanlineForward is +1 and ScanlineBackward is -1.
	step := int(dir) - 1
	s := &ScanlineIterator{
		m:     it.m,
		dx:    step,
		xStep: step * perspective.TileWidth,
	}
	if it.node == nil {
		return s
	}

	s.remaining = it.scanlineCount
	s.x, s.y = it.x, it.y
	s.xs = it.xs
	if dir == ScanlineForward {
		back := it.scanlineCount - 1
		s.x -= back
		s.y += back
		s.xs -= back * perspective.TileWidth
	}
	s.xs += xOffset
	s.ys = it.ys + yOffset
	return s
}

func (s *ScanlineIterator) Valid() bool {
	return s.remaining > 0
}

func (s *ScanlineIterator) Next() {
	s.x += s.dx
	s.y -= s.dx
	s.xs += s.xStep
	s.remaining--
}

func (s *ScanlineIterator) Node() *Node {
	return s.m.NodeUnchecked(s.x, s.y)
}

func (s *ScanlineIterator) X() int {
	return s.xs
}

func (s *ScanlineIterator) Y() int {
	return s.ys
}

func (s *ScanlineIterator) TileX() int {
	return s.x
}

func (s *ScanlineIterator) TileY() int {
	return s.y
}

// Package tilemap holds the tile grid of an isometric hospital map: per-tile
// sprites, parcel and room membership, pathfinding connectivity and shadow
// hints, plus the iterators used to draw and hit-test the grid in screen
// space.
//
// A Map is not safe for concurrent use. SetSize, LoadFromTHFile and Depersist
// invalidate every *Node and iterator previously obtained from the map.
package tilemap

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid map dimensions")
	ErrMalformedBuffer   = errors.New("malformed map buffer")
)

// MaxNodes bounds width*height so that a bogus size read from a file cannot
// ask for an absurd allocation.
const MaxNodes = 1 << 22

type Map struct {
	cells []Node

	// Cells at load time, before any changes.
	original []Node

	blocks SpriteSheet
	width  int
	height int
}

func New() *Map {
	return &Map{}
}

// SetSize replaces the grid with width*height zeroed nodes. On error the map
// is left as it was.
func (m *Map) SetSize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	m.resize(make([]Node, width*height), width, height)
	return nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxNodes/height {
		return fmt.Errorf("%w: %dx%d exceeds %d nodes", ErrInvalidDimensions, width, height, MaxNodes)
	}
	return nil
}

// resize adopts cells, which must hold exactly width*height nodes.
func (m *Map) resize(cells []Node, width, height int) {
	m.cells = cells
	m.original = make([]Node, len(cells))
	m.width = width
	m.height = height
}

func (m *Map) Width() int {
	return m.width
}

func (m *Map) Height() int {
	return m.height
}

func (m *Map) Contains(x, y int) bool {
	return 0 <= x && x < m.width && 0 <= y && y < m.height
}

func (m *Map) index(x, y int) int {
	return y*m.width + x
}

// Node returns the live node at (x, y); ok is false for co-ordinates outside
// the map.
func (m *Map) Node(x, y int) (node *Node, ok bool) {
	if !m.Contains(x, y) {
		return nil, false
	}
	return &m.cells[m.index(x, y)], true
}

// OriginalNode returns a copy of the node at (x, y) as it was when the map
// was loaded. Its entity lists are always empty.
func (m *Map) OriginalNode(x, y int) (node Node, ok bool) {
	if !m.Contains(x, y) {
		return Node{}, false
	}
	return m.original[m.index(x, y)], true
}

// NodeUnchecked is Node without the bounds check, for loops that already
// know their co-ordinates are inside the map. Co-ordinates outside the map
// give an arbitrary node or panic.
func (m *Map) NodeUnchecked(x, y int) *Node {
	return &m.cells[m.index(x, y)]
}

func (m *Map) OriginalNodeUnchecked(x, y int) Node {
	return m.original[m.index(x, y)]
}

// SetBlockSheet sets the sprite sheet used for floor, wall and decoration
// sprites. The sheet is referenced, not copied.
func (m *Map) SetBlockSheet(sheet SpriteSheet) {
	m.blocks = sheet
}

func (m *Map) BlockSheet() SpriteSheet {
	return m.blocks
}

// SetAllWallDrawFlags sets the draw flags of every wall block; typically
// DrawAlpha50 to see through walls, or 0 to make them opaque again.
func (m *Map) SetAllWallDrawFlags(drawFlags uint8) {
	for i := range m.cells {
		node := &m.cells[i]
		node.Blocks[LayerNorthWall] = node.Blocks[LayerNorthWall].WithDrawFlags(drawFlags)
		node.Blocks[LayerWestWall] = node.Blocks[LayerWestWall].WithDrawFlags(drawFlags)
	}
}

// ResetToOriginal reverts the tile at (x, y) to its load-time state, keeping
// the entities attached to it. Reports false for co-ordinates outside the map.
func (m *Map) ResetToOriginal(x, y int) bool {
	if !m.Contains(x, y) {
		return false
	}
	i := m.index(x, y)
	m.cells[i].copyTileState(&m.original[i])
	return true
}

// snapshotOriginal makes 'original' a copy of the current tile state.
func (m *Map) snapshotOriginal() {
	for i := range m.cells {
		m.original[i] = Node{}
		m.original[i].copyTileState(&m.cells[i])
	}
}

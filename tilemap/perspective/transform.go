// Package perspective converts between world (tile) co-ordinates and absolute
// screen co-ordinates for the isometric projection used by tilemap.
//
// Each tile is a diamond TileWidth pixels wide and TileHeight pixels tall.
// The top-most corner of tile (0, 0) sits at screen (0, 0); increasing world x
// moves down-right on screen and increasing world y moves down-left.
package perspective

const (
	TileWidth  = 64
	TileHeight = 32
)

// Number covers the element types the transforms are instantiated with.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// WorldToScreen converts world (tile) co-ordinates to absolute screen
// co-ordinates.
func WorldToScreen[T Number](x, y T) (T, T) {
	return 32 * (x - y), 16 * (x + y)
}

// ScreenToWorld converts absolute screen co-ordinates to world (tile)
// co-ordinates: x' = y/32 + x/64, y' = y/32 - x/64.
//
// Each axis is evaluated as a single quotient, (2y + x)/64 and (2y - x)/64, so
// for integral T there is exactly one truncation per axis. That keeps the
// transform an exact inverse of WorldToScreen for every integer tile (summing
// two separately truncated halves loses a tile whenever x+y is odd). Other
// screen points truncate toward zero independently in each axis, which puts
// points in the positive quadrant on the tile whose diamond contains them.
func ScreenToWorld[T Number](x, y T) (T, T) {
	return (2*y + x) / 64, (2*y - x) / 64
}

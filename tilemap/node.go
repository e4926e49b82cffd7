package tilemap

// Flags holds the per-node state, pathfinding and shadow bits. The bit
// positions match the packed 32-bit field used on the wire (see PackFlags).
type Flags uint32

const (
	// Wire only: a Node derives its passability from Passable() instead.
	flagPassable Flags = 1 << 0

	CanTravelN Flags = 1 << 1 // Pathfinding: can walk to the north
	CanTravelE Flags = 1 << 2 // Pathfinding: can walk to the east
	CanTravelS Flags = 1 << 3 // Pathfinding: can walk to the south
	CanTravelW Flags = 1 << 4 // Pathfinding: can walk to the west
	Hospital   Flags = 1 << 5 // World: tile is inside a hospital building
	Buildable  Flags = 1 << 6 // Player: can build on this tile

	// Wire only: normally passable, but blocked by a blueprint.
	flagPassableIfNotForBlueprint Flags = 1 << 7

	Room       Flags = 1 << 8  // World: tile is inside a room
	ShadowHalf Flags = 1 << 9  // Rendering: put sprite 75 over the floor
	ShadowFull Flags = 1 << 10 // Rendering: put sprite 74 over the floor
	ShadowWall Flags = 1 << 11 // Rendering: put sprite 156 over the east wall
	DoorNorth  Flags = 1 << 12 // World: door on the north wall of the tile
	DoorWest   Flags = 1 << 13 // World: door on the west wall of the tile
	DoNotIdle  Flags = 1 << 14 // World: humanoids should not idle on the tile
	TallNorth  Flags = 1 << 15 // Shadows: wall-like object on the north wall
	TallWest   Flags = 1 << 16 // Shadows: wall-like object on the west wall

	CanTravelAny    = CanTravelN | CanTravelE | CanTravelS | CanTravelW
	ShadowAny       = ShadowHalf | ShadowFull | ShadowWall
	stateFlagsMask  = Flags(1<<24 - 1)
	wireOnlyFlags   = flagPassable | flagPassableIfNotForBlueprint
	objectTypeShift = 24
)

// Block layers of a Node.
const (
	LayerFloor = iota
	LayerNorthWall
	LayerWestWall
	LayerUI
	NumLayers
)

// Draw flags understood by sprite sheets; they live in the high byte of a
// Block.
const (
	DrawFlipHorizontal uint8 = 1 << 0
	DrawFlipVertical   uint8 = 1 << 1
	DrawAlpha50        uint8 = 1 << 2
	DrawAlpha75        uint8 = 1 << 3
)

// A Block is one rendering layer of a node: the low byte is the index in the
// sprite sheet and the high byte holds the draw flags.
type Block uint16

func MakeBlock(sprite, drawFlags uint8) Block {
	return Block(uint16(drawFlags)<<8 | uint16(sprite))
}

func (b Block) Sprite() uint8 {
	return uint8(b)
}

func (b Block) DrawFlags() uint8 {
	return uint8(b >> 8)
}

func (b Block) WithDrawFlags(drawFlags uint8) Block {
	return MakeBlock(b.Sprite(), drawFlags)
}

func (b Block) Empty() bool {
	return b.Sprite() == 0
}

// Passability is a tile's walkability as the sum of two inputs: whether the
// tile is walkable at all and whether an uncommitted blueprint is currently
// blocking it. Keeping them apart means clearing the blueprint restores the
// walkable state without recomputing anything.
type Passability struct {
	base      bool
	blueprint bool
}

func (p Passability) Effective() bool {
	return p.base && !p.blueprint
}

// Node is one tile of the map.
type Node struct {
	Blocks   [NumLayers]Block
	ParcelID uint16
	RoomID   uint16
	Flags    Flags

	// Type of the object occupying the tile; lets pathfinding use object
	// types as goals without a side lookup.
	ObjectType ObjectType

	passability Passability

	// Entities rendered at this node.
	Entities EntityList
	// Entities rendered in the early (right-to-left) pass.
	EarlyEntities EntityList
}

func (n *Node) Has(f Flags) bool {
	return n.Flags&f == f
}

func (n *Node) HasAny(f Flags) bool {
	return n.Flags&f != 0
}

func (n *Node) Set(f Flags) {
	n.Flags |= f &^ wireOnlyFlags
}

func (n *Node) Clear(f Flags) {
	n.Flags &^= f
}

// Passable reports whether the tile can currently be walked on.
func (n *Node) Passable() bool {
	return n.passability.Effective()
}

// BasePassable reports whether the tile would be walkable if no blueprint
// were blocking it.
func (n *Node) BasePassable() bool {
	return n.passability.base
}

func (n *Node) SetPassable(passable bool) {
	n.passability.base = passable
}

func (n *Node) Blueprinted() bool {
	return n.passability.blueprint
}

// SetBlueprint places (true) or removes (false) a blueprint overlay. While
// placed, the tile is not passable; removing it restores BasePassable().
func (n *Node) SetBlueprint(placed bool) {
	n.passability.blueprint = placed
}

func (n *Node) Passability() Passability {
	return n.passability
}

// PackFlags folds Flags, passability and ObjectType into the 32-bit layout
// used by saved games: state bits in the low 24 bits, the object type in the
// top 8.
func (n *Node) PackFlags() uint32 {
	f := n.Flags & stateFlagsMask &^ wireOnlyFlags
	if n.Passable() {
		f |= flagPassable
	} else if n.passability.base && n.passability.blueprint {
		f |= flagPassableIfNotForBlueprint
	}
	return uint32(f) | uint32(n.ObjectType)<<objectTypeShift
}

// UnpackFlags is the inverse of PackFlags.
func (n *Node) UnpackFlags(packed uint32) {
	f := Flags(packed) & stateFlagsMask
	n.Flags = f &^ wireOnlyFlags
	n.ObjectType = ObjectType(packed >> objectTypeShift)
	n.passability = Passability{
		base:      f&(flagPassable|flagPassableIfNotForBlueprint) != 0,
		blueprint: f&flagPassableIfNotForBlueprint != 0,
	}
}

// copyTileState copies everything but the entity lists.
func (n *Node) copyTileState(from *Node) {
	n.Blocks = from.Blocks
	n.ParcelID = from.ParcelID
	n.RoomID = from.RoomID
	n.Flags = from.Flags
	n.ObjectType = from.ObjectType
	n.passability = from.passability
}

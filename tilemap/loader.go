package tilemap

import (
	"encoding/binary"
	"fmt"
)

// Layout of a map file as shipped with the original game. The file is laid
// out as:
//
//	header     THHeaderSize bytes, ignored
//	nodes      THNodeSize bytes per node, row-major
//	parcels    one little-endian uint16 per node, row-major
//	trailer    THTrailerSize bytes, ignored
//
// Each node record is:
//
//	[0] object flags (passed through to the ObjectCallback)
//	[1] object type
//	[2] floor sprite
//	[3] north wall sprite
//	[4] west wall sprite
//	[5] tile flags (THTile* below)
//	[6] reserved
//	[7] reserved
const (
	THHeaderSize  = 34
	THNodeSize    = 8
	THParcelSize  = 2
	THTrailerSize = 74

	// Dimensions of the maps shipped with the original game.
	THFileWidth  = 128
	THFileHeight = 128
)

// Bits of the tile flags byte of a node record.
const (
	THTilePassable  = 1 << 0
	THTileHospital  = 1 << 1
	THTileBuildable = 1 << 2
	THTileDoNotIdle = 1 << 3
	THTileDoorNorth = 1 << 4
	THTileDoorWest  = 1 << 5
	THTileTallNorth = 1 << 6
	THTileTallWest  = 1 << 7
)

var thTileFlags = [...]struct {
	bit  byte
	flag Flags
}{
	{THTileHospital, Hospital},
	{THTileBuildable, Buildable},
	{THTileDoNotIdle, DoNotIdle},
	{THTileDoorNorth, DoorNorth},
	{THTileDoorWest, DoorWest},
	{THTileTallNorth, TallNorth},
	{THTileTallWest, TallWest},
}

// ObjectCallback receives each object found while loading a map: its tile
// position, its type, and the raw object flags from the file, whose meaning
// is up to the callee.
type ObjectCallback func(x, y int, objectType ObjectType, rawFlags uint8)

// THFileSize returns the length of a map file for a width x height map.
func THFileSize(width, height int) int {
	return THHeaderSize + width*height*(THNodeSize+THParcelSize) + THTrailerSize
}

// LoadTHMap sizes the map to the dimensions of the original game's maps and
// loads data into it.
func (m *Map) LoadTHMap(data []byte, callback ObjectCallback) error {
	if err := m.SetSize(THFileWidth, THFileHeight); err != nil {
		return err
	}
	return m.LoadFromTHFile(data, callback)
}

// LoadFromTHFile fills the map, whose size must already be set, from a map
// file. callback, if not nil, is invoked for every object in row-major order.
// The whole buffer is validated before anything is written, so a failed load
// calls no callbacks; the node contents after a failure are still
// unspecified. After a successful load the original-state snapshot matches
// the loaded nodes. Pathfinding and shadow bits are not computed here.
func (m *Map) LoadFromTHFile(data []byte, callback ObjectCallback) error {
	if m.width == 0 || m.height == 0 {
		return fmt.Errorf("%w: map size not set before load", ErrInvalidDimensions)
	}
	expected := THFileSize(m.width, m.height)
	if len(data) != expected {
		return fmt.Errorf("%w: got %d bytes, want %d for a %dx%d map", ErrMalformedBuffer, len(data), expected, m.width, m.height)
	}

	count := m.width * m.height
	nodes := data[THHeaderSize : THHeaderSize+count*THNodeSize]
	parcels := data[THHeaderSize+count*THNodeSize : THHeaderSize+count*(THNodeSize+THParcelSize)]

	for i := 0; i < count; i++ {
		record := nodes[i*THNodeSize : (i+1)*THNodeSize]
		objectType := ObjectType(record[1])
		if objectType != NoObject && !objectType.Known() {
			return fmt.Errorf("%w: node (%d, %d) has %v", ErrMalformedBuffer, i%m.width, i/m.width, objectType)
		}
	}

	for i := 0; i < count; i++ {
		record := nodes[i*THNodeSize : (i+1)*THNodeSize]
		x, y := i%m.width, i/m.width
		node := &m.cells[i]

		*node = Node{}
		node.Blocks[LayerFloor] = Block(record[2])
		node.Blocks[LayerNorthWall] = Block(record[3])
		node.Blocks[LayerWestWall] = Block(record[4])
		node.ParcelID = binary.LittleEndian.Uint16(parcels[i*THParcelSize:])
		node.SetPassable(record[5]&THTilePassable != 0)
		for _, tf := range thTileFlags {
			if record[5]&tf.bit != 0 {
				node.Set(tf.flag)
			}
		}

		objectType := ObjectType(record[1])
		node.ObjectType = objectType
		if objectType != NoObject && callback != nil {
			callback(x, y, objectType, record[0])
		}
	}

	m.snapshotOriginal()
	return nil
}

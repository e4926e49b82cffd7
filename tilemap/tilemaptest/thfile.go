package tilemaptest

import (
	"encoding/binary"

	"github.com/MobRulesGames/isomap/tilemap"
)

// NodeRecord is one node of a map file as the loader reads it.
type NodeRecord struct {
	ObjectFlags uint8
	ObjectType  tilemap.ObjectType
	Floor       uint8
	NorthWall   uint8
	WestWall    uint8
	TileFlags   uint8
	Parcel      uint16
}

// THFile builds map-file buffers for loader tests.
type THFile struct {
	Width, Height int
	Nodes         []NodeRecord
}

func GivenATHFile(width, height int) *THFile {
	return &THFile{
		Width:  width,
		Height: height,
		Nodes:  make([]NodeRecord, width*height),
	}
}

func (f *THFile) At(x, y int) *NodeRecord {
	return &f.Nodes[y*f.Width+x]
}

// Fill applies fn to every node record.
func (f *THFile) Fill(fn func(x, y int, rec *NodeRecord)) *THFile {
	for i := range f.Nodes {
		fn(i%f.Width, i/f.Width, &f.Nodes[i])
	}
	return f
}

func (f *THFile) Bytes() []byte {
	buf := make([]byte, tilemap.THFileSize(f.Width, f.Height))
	nodes := buf[tilemap.THHeaderSize:]
	parcels := nodes[len(f.Nodes)*tilemap.THNodeSize:]
	for i, rec := range f.Nodes {
		out := nodes[i*tilemap.THNodeSize:]
		out[0] = rec.ObjectFlags
		out[1] = uint8(rec.ObjectType)
		out[2] = rec.Floor
		out[3] = rec.NorthWall
		out[4] = rec.WestWall
		out[5] = rec.TileFlags
		binary.LittleEndian.PutUint16(parcels[i*tilemap.THParcelSize:], rec.Parcel)
	}
	return buf
}

// AllPassable is a Fill func giving an open floor everywhere.
func AllPassable(_, _ int, rec *NodeRecord) {
	rec.Floor = 1
	rec.TileFlags |= tilemap.THTilePassable
}

// GivenALoadedMap sizes a map to the file and loads it, panicking on error.
func GivenALoadedMap(f *THFile) *tilemap.Map {
	m := tilemap.New()
	if err := m.SetSize(f.Width, f.Height); err != nil {
		panic(err)
	}
	if err := m.LoadFromTHFile(f.Bytes(), nil); err != nil {
		panic(err)
	}
	return m
}

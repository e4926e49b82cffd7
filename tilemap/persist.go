package tilemap

import "fmt"

// FieldWriter is the sink a Map persists itself into: an ordered stream of
// primitive fields. The framing and encoding belong to the implementation.
type FieldWriter interface {
	WriteInt(v int) error
	WriteUint16(v uint16) error
	WriteUint32(v uint32) error
}

// FieldReader reads back what a FieldWriter wrote, in the same order.
type FieldReader interface {
	ReadInt() (int, error)
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
}

// Persist writes the dimensions and then, row-major, every node's blocks,
// parcel id, room id and packed flags. The original-state snapshot and the
// entity lists are not written.
func (m *Map) Persist(w FieldWriter) error {
	if err := w.WriteInt(m.width); err != nil {
		return fmt.Errorf("couldn't write map width: %w", err)
	}
	if err := w.WriteInt(m.height); err != nil {
		return fmt.Errorf("couldn't write map height: %w", err)
	}
	for i := range m.cells {
		node := &m.cells[i]
		for _, block := range node.Blocks {
			if err := w.WriteUint16(uint16(block)); err != nil {
				return fmt.Errorf("couldn't write node %d: %w", i, err)
			}
		}
		if err := w.WriteUint16(node.ParcelID); err != nil {
			return fmt.Errorf("couldn't write node %d: %w", i, err)
		}
		if err := w.WriteUint16(node.RoomID); err != nil {
			return fmt.Errorf("couldn't write node %d: %w", i, err)
		}
		if err := w.WriteUint32(node.PackFlags()); err != nil {
			return fmt.Errorf("couldn't write node %d: %w", i, err)
		}
	}
	return nil
}

// depersistChunk bounds the nodes allocated up front by Depersist. The
// dimensions at the head of a stream are not trusted until the nodes behind
// them have actually been read.
const depersistChunk = 1 << 12

// Depersist replaces the map with one read from r. The original-state
// snapshot is not part of the stream; it is re-derived as a copy of the
// restored nodes, so tile changes made before saving can no longer be
// reverted afterwards. On error the map is left as it was.
func (m *Map) Depersist(r FieldReader) error {
	width, err := r.ReadInt()
	if err != nil {
		return fmt.Errorf("couldn't read map width: %w", err)
	}
	height, err := r.ReadInt()
	if err != nil {
		return fmt.Errorf("couldn't read map height: %w", err)
	}
	if err := checkDimensions(width, height); err != nil {
		return err
	}

	count := width * height
	cells := make([]Node, 0, min(count, depersistChunk))
	for i := 0; i < count; i++ {
		var node Node
		for layer := range node.Blocks {
			v, err := r.ReadUint16()
			if err != nil {
				return fmt.Errorf("couldn't read node %d: %w", i, err)
			}
			node.Blocks[layer] = Block(v)
		}
		if node.ParcelID, err = r.ReadUint16(); err != nil {
			return fmt.Errorf("couldn't read node %d: %w", i, err)
		}
		if node.RoomID, err = r.ReadUint16(); err != nil {
			return fmt.Errorf("couldn't read node %d: %w", i, err)
		}
		packed, err := r.ReadUint32()
		if err != nil {
			return fmt.Errorf("couldn't read node %d: %w", i, err)
		}
		node.UnpackFlags(packed)
		cells = append(cells, node)
	}

	m.resize(cells, width, height)
	m.snapshotOriginal()
	return nil
}

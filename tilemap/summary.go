package tilemap

// Summary counts what is on a map; the CLI logs it and the snapshot index
// stores part of it.
type Summary struct {
	Width, Height int

	Passable    int
	Blueprinted int
	Hospital    int

	// Objects by type; NoObject is not counted.
	Objects map[ObjectType]int

	// Distinct non-zero parcel and room ids.
	Parcels int
	Rooms   int
}

func (s Summary) ObjectCount() int {
	n := 0
	for _, count := range s.Objects {
		n += count
	}
	return n
}

func (m *Map) Summarize() Summary {
	s := Summary{
		Width:   m.width,
		Height:  m.height,
		Objects: make(map[ObjectType]int),
	}
	parcels := make(map[uint16]struct{})
	rooms := make(map[uint16]struct{})
	for i := range m.cells {
		node := &m.cells[i]
		if node.Passable() {
			s.Passable++
		}
		if node.Blueprinted() {
			s.Blueprinted++
		}
		if node.Has(Hospital) {
			s.Hospital++
		}
		if node.ObjectType != NoObject {
			s.Objects[node.ObjectType]++
		}
		if node.ParcelID != 0 {
			parcels[node.ParcelID] = struct{}{}
		}
		if node.RoomID != 0 {
			rooms[node.RoomID] = struct{}{}
		}
	}
	s.Parcels = len(parcels)
	s.Rooms = len(rooms)
	return s
}

package tilemap

// UpdatePathfinding recomputes the CanTravel bits of every node. Two
// neighbouring nodes can travel to each other iff both are passable and the
// wall between them is either absent or has a door in it. Nothing can travel
// off the edge of the map. Passability itself is only read, so a blueprint
// overlay survives the recomputation.
func (m *Map) UpdatePathfinding() {
	for i := range m.cells {
		m.cells[i].Clear(CanTravelAny)
	}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			node := m.NodeUnchecked(x, y)
			if !node.Passable() {
				continue
			}
			if x+1 < m.width {
				east := m.NodeUnchecked(x+1, y)
				if east.Passable() && edgeOpen(east, LayerWestWall, DoorWest) {
					node.Set(CanTravelE)
					east.Set(CanTravelW)
				}
			}
			if y+1 < m.height {
				south := m.NodeUnchecked(x, y+1)
				if south.Passable() && edgeOpen(south, LayerNorthWall, DoorNorth) {
					node.Set(CanTravelS)
					south.Set(CanTravelN)
				}
			}
		}
	}
}

// The north and west edges of a node are stored on the node itself; the
// south and east edges belong to the neighbours.
func edgeOpen(node *Node, layer int, door Flags) bool {
	return node.Blocks[layer].Empty() || node.Has(door)
}

// CanTravel reports whether a walker on (x, y) may step in the direction of
// the given CanTravel flag. Co-ordinates outside the map never can.
func (m *Map) CanTravel(x, y int, direction Flags) bool {
	node, ok := m.Node(x, y)
	return ok && node.Has(direction)
}

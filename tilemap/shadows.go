package tilemap

// UpdateShadows recomputes the shadow bits of every node from the walls and
// wall-like objects around it. Light comes from the south-east, so:
//
//   - a node walled on both its north and west edges is fully shaded;
//   - otherwise a node whose south neighbour has a tall north edge gets a
//     half shadow;
//   - a node whose east neighbour has a tall west edge gets a shadow drawn
//     over that wall.
func (m *Map) UpdateShadows() {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			node := m.NodeUnchecked(x, y)
			node.Clear(ShadowAny)

			if tallNorth(node) && tallWest(node) {
				node.Set(ShadowFull)
			} else if y+1 < m.height && tallNorth(m.NodeUnchecked(x, y+1)) {
				node.Set(ShadowHalf)
			}

			if x+1 < m.width && tallWest(m.NodeUnchecked(x+1, y)) {
				node.Set(ShadowWall)
			}
		}
	}
}

func tallNorth(node *Node) bool {
	return !node.Blocks[LayerNorthWall].Empty() || node.Has(TallNorth)
}

func tallWest(node *Node) bool {
	return !node.Blocks[LayerWestWall].Empty() || node.Has(TallWest)
}

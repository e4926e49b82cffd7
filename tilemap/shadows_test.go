package tilemap_test

import (
	"math/rand"
	"testing"

	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/MobRulesGames/isomap/tilemap/tilemaptest"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
)

func ShadowSpecs() {
	file := tilemaptest.GivenATHFile(3, 3).Fill(tilemaptest.AllPassable)

	Convey("an open floor has no shadows", func() {
		m := tilemaptest.GivenALoadedMap(file)
		m.UpdateShadows()
		for _, f := range flagsOf(m) {
			So(f&tilemap.ShadowAny, ShouldEqual, tilemap.Flags(0))
		}
	})

	Convey("a west wall shades the wall of the node to its west", func() {
		file.At(1, 1).WestWall = 20
		m := tilemaptest.GivenALoadedMap(file)
		m.UpdateShadows()
		So(m.NodeUnchecked(0, 1).Has(tilemap.ShadowWall), ShouldBeTrue)
		So(m.NodeUnchecked(1, 1).HasAny(tilemap.ShadowAny), ShouldBeFalse)
	})

	Convey("a north wall half-shades the node to its north", func() {
		file.At(1, 1).NorthWall = 20
		m := tilemaptest.GivenALoadedMap(file)
		m.UpdateShadows()
		So(m.NodeUnchecked(1, 0).Has(tilemap.ShadowHalf), ShouldBeTrue)
		So(m.NodeUnchecked(1, 1).HasAny(tilemap.ShadowAny), ShouldBeFalse)
	})

	Convey("a corner is fully shaded", func() {
		file.At(1, 1).NorthWall = 20
		file.At(1, 1).WestWall = 21
		file.At(1, 2).NorthWall = 22
		m := tilemaptest.GivenALoadedMap(file)
		m.UpdateShadows()
		node := m.NodeUnchecked(1, 1)
		So(node.Has(tilemap.ShadowFull), ShouldBeTrue)
		So(node.Has(tilemap.ShadowHalf), ShouldBeFalse)
	})

	Convey("tall objects count as walls", func() {
		file.At(2, 2).TileFlags |= tilemap.THTileTallNorth | tilemap.THTileTallWest
		m := tilemaptest.GivenALoadedMap(file)
		m.UpdateShadows()
		So(m.NodeUnchecked(2, 1).Has(tilemap.ShadowHalf), ShouldBeTrue)
		So(m.NodeUnchecked(1, 2).Has(tilemap.ShadowWall), ShouldBeTrue)
		So(m.NodeUnchecked(2, 2).Has(tilemap.ShadowFull), ShouldBeTrue)
	})

	Convey("stale shadows are cleared", func() {
		m := tilemaptest.GivenALoadedMap(file)
		m.NodeUnchecked(0, 0).Set(tilemap.ShadowAny)
		m.UpdateShadows()
		So(m.NodeUnchecked(0, 0).HasAny(tilemap.ShadowAny), ShouldBeFalse)
	})
}

func TestShadows(t *testing.T) {
	Convey("tilemap.UpdateShadows", t, ShadowSpecs)
}

func TestShadowsAreIdempotentAndLeavePathfindingAlone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := givenARandomMap(rng, 12, 12)
	m.UpdatePathfinding()
	before := flagsOf(m)

	m.UpdateShadows()
	first := flagsOf(m)
	m.UpdateShadows()
	assert.Equal(t, first, flagsOf(m))

	for i := range before {
		assert.Equal(t, before[i]&^tilemap.ShadowAny, first[i]&^tilemap.ShadowAny)
	}
}

package tilemap_test

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/MobRulesGames/isomap/tilemap/tilemaptest"
	. "github.com/smartystreets/goconvey/convey"
)

func PersistSpecs() {
	Convey("a persisted map", func() {
		rng := rand.New(rand.NewSource(4))
		m := givenARandomMap(rng, 7, 5)
		m.UpdatePathfinding()
		m.UpdateShadows()
		m.NodeUnchecked(3, 2).RoomID = 17
		m.NodeUnchecked(4, 1).ObjectType = tilemap.Sofa
		m.NodeUnchecked(6, 4).Set(tilemap.Room)

		blueprinted := m.NodeUnchecked(2, 2)
		blueprinted.SetPassable(true)
		blueprinted.SetBlueprint(true)

		var fields tilemaptest.Fields
		So(m.Persist(&fields), ShouldBeNil)

		Convey("writes the size and seven fields per node", func() {
			So(fields.Len(), ShouldEqual, 2+7*7*5)
		})

		Convey("restores the same map", func() {
			restored := tilemap.New()
			So(restored.Depersist(&fields), ShouldBeNil)
			So(restored.Width(), ShouldEqual, 7)
			So(restored.Height(), ShouldEqual, 5)

			for y := 0; y < 5; y++ {
				for x := 0; x < 7; x++ {
					want := m.NodeUnchecked(x, y)
					got := restored.NodeUnchecked(x, y)
					So(got.Blocks, ShouldEqual, want.Blocks)
					So(got.ParcelID, ShouldEqual, want.ParcelID)
					So(got.RoomID, ShouldEqual, want.RoomID)
					So(got.Flags, ShouldEqual, want.Flags)
					So(got.ObjectType, ShouldEqual, want.ObjectType)
					So(got.Passability(), ShouldResemble, want.Passability())
				}
			}

			Convey("with the blueprint still in place", func() {
				node := restored.NodeUnchecked(2, 2)
				So(node.Passable(), ShouldBeFalse)
				So(node.BasePassable(), ShouldBeTrue)
				node.SetBlueprint(false)
				So(node.Passable(), ShouldBeTrue)
			})

			Convey("whose original state is the restored state", func() {
				restored.NodeUnchecked(3, 2).RoomID = 0
				So(restored.ResetToOriginal(3, 2), ShouldBeTrue)
				So(restored.NodeUnchecked(3, 2).RoomID, ShouldEqual, uint16(17))
			})
		})
	})

	Convey("a truncated stream fails", func() {
		m := GivenASizedMap(2, 2)
		var fields tilemaptest.Fields
		So(m.Persist(&fields), ShouldBeNil)

		var short tilemaptest.Fields
		for i := 0; i < fields.Len()-1; i++ {
			if i < 2 {
				v, _ := fields.ReadInt()
				short.WriteInt(v)
			} else if (i-2)%7 == 6 {
				v, _ := fields.ReadUint32()
				short.WriteUint32(v)
			} else {
				v, _ := fields.ReadUint16()
				short.WriteUint16(v)
			}
		}

		m = GivenASizedMap(3, 3)
		err := m.Depersist(&short)
		So(errors.Is(err, io.ErrUnexpectedEOF), ShouldBeTrue)

		Convey("and leaves the map as it was", func() {
			So(m.Width(), ShouldEqual, 3)
			So(m.Height(), ShouldEqual, 3)
		})
	})

	Convey("a stream claiming a huge map with a single node fails", func() {
		var fields tilemaptest.Fields
		fields.WriteInt(2048)
		fields.WriteInt(2048)
		for i := 0; i < tilemap.NumLayers+2; i++ {
			fields.WriteUint16(0)
		}
		fields.WriteUint32(1)

		m := GivenASizedMap(2, 2)
		err := m.Depersist(&fields)
		So(errors.Is(err, io.ErrUnexpectedEOF), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "node 1")
		So(m.Width(), ShouldEqual, 2)
	})

	Convey("a stream with a bad size fails", func() {
		var fields tilemaptest.Fields
		fields.WriteInt(0)
		fields.WriteInt(5)
		m := GivenASizedMap(3, 3)
		err := m.Depersist(&fields)
		So(errors.Is(err, tilemap.ErrInvalidDimensions), ShouldBeTrue)
		So(m.Width(), ShouldEqual, 3)
	})
}

func TestPersist(t *testing.T) {
	Convey("tilemap.Persist", t, PersistSpecs)
}

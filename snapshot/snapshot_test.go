package snapshot_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MobRulesGames/isomap/snapshot"
	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/MobRulesGames/isomap/tilemap/tilemaptest"
	"github.com/klauspost/compress/zstd"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func GivenAMap() *tilemap.Map {
	file := tilemaptest.GivenATHFile(6, 4).Fill(tilemaptest.AllPassable)
	file.At(2, 1).NorthWall = 30
	file.At(3, 3).WestWall = 31
	file.At(3, 3).TileFlags |= tilemap.THTileDoorWest
	file.At(1, 2).ObjectType = tilemap.Radiator
	file.At(4, 0).Parcel = 700
	m := tilemaptest.GivenALoadedMap(file)
	m.UpdatePathfinding()
	m.UpdateShadows()
	m.NodeUnchecked(5, 3).RoomID = 3
	m.NodeUnchecked(0, 0).SetBlueprint(true)
	return m
}

func ShouldMatchMap(actual interface{}, expected ...interface{}) string {
	got := actual.(*tilemap.Map)
	want := expected[0].(*tilemap.Map)
	if got.Width() != want.Width() || got.Height() != want.Height() {
		return "map sizes differ"
	}
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			g, w := got.NodeUnchecked(x, y), want.NodeUnchecked(x, y)
			if g.Blocks != w.Blocks || g.ParcelID != w.ParcelID || g.RoomID != w.RoomID ||
				g.PackFlags() != w.PackFlags() {
				return fmt.Sprintf("maps differ at node (%d, %d)", x, y)
			}
		}
	}
	return ""
}

func SnapshotSpecs() {
	m := GivenAMap()

	Convey("an encoded map", func() {
		var buf bytes.Buffer
		So(snapshot.Encode(&buf, m, zstd.SpeedDefault), ShouldBeNil)

		Convey("starts with the header", func() {
			So(buf.Bytes()[:6], ShouldResemble, []byte{'T', 'H', 'M', 'P', 1, 0})
		})

		Convey("decodes to the same map", func() {
			restored := tilemap.New()
			So(snapshot.Decode(bytes.NewReader(buf.Bytes()), restored), ShouldBeNil)
			So(restored, ShouldMatchMap, m)
			So(restored.NodeUnchecked(0, 0).Blueprinted(), ShouldBeTrue)
		})

		Convey("fails to decode when truncated", func() {
			data := buf.Bytes()[:buf.Len()/2]
			err := snapshot.Decode(bytes.NewReader(data), tilemap.New())
			So(err, ShouldNotBeNil)
		})

		Convey("fails to decode with a different magic", func() {
			data := append([]byte{}, buf.Bytes()...)
			data[0] = 'X'
			err := snapshot.Decode(bytes.NewReader(data), tilemap.New())
			So(errors.Is(err, snapshot.ErrBadMagic), ShouldBeTrue)
		})

		Convey("fails to decode a newer version", func() {
			data := append([]byte{}, buf.Bytes()...)
			data[4] = 2
			err := snapshot.Decode(bytes.NewReader(data), tilemap.New())
			So(errors.Is(err, snapshot.ErrUnsupportedVersion), ShouldBeTrue)
		})
	})

	Convey("every compression level round-trips", func() {
		for _, name := range []string{"fastest", "default", "better", "best"} {
			level, err := snapshot.ParseLevel(name)
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			So(snapshot.Encode(&buf, m, level), ShouldBeNil)
			restored := tilemap.New()
			So(snapshot.Decode(&buf, restored), ShouldBeNil)
			So(restored, ShouldMatchMap, m)
		}
	})

	Convey("an empty stream is not a snapshot", func() {
		err := snapshot.Decode(bytes.NewReader(nil), tilemap.New())
		So(errors.Is(err, snapshot.ErrBadMagic), ShouldBeTrue)
	})
}

func TestSnapshot(t *testing.T) {
	Convey("snapshot.Encode", t, SnapshotSpecs)
}

func TestParseLevel(t *testing.T) {
	level, err := snapshot.ParseLevel("best")
	require.NoError(t, err)
	assert.Equal(t, zstd.SpeedBestCompression, level)

	_, err = snapshot.ParseLevel("ludicrous")
	assert.Error(t, err)
}

func TestTrailingData(t *testing.T) {
	m := GivenAMap()
	var buf bytes.Buffer
	buf.WriteString(snapshot.Magic)
	buf.Write([]byte{snapshot.Version, 0})

	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	fields := snapshot.NewFieldWriter(enc)
	require.NoError(t, m.Persist(fields))
	require.NoError(t, fields.WriteInt(42))
	require.NoError(t, fields.Flush())
	require.NoError(t, enc.Close())

	err = snapshot.Decode(&buf, tilemap.New())
	assert.ErrorIs(t, err, snapshot.ErrTrailingData)
}

func TestFieldStream(t *testing.T) {
	var buf bytes.Buffer
	w := snapshot.NewFieldWriter(&buf)
	require.NoError(t, w.WriteInt(-300))
	require.NoError(t, w.WriteUint16(0xbeef))
	require.NoError(t, w.WriteUint32(0xdeadbeef))
	require.NoError(t, w.WriteInt(1<<40))
	require.NoError(t, w.Flush())

	// -300 zig-zags to 599, two varint bytes.
	assert.Equal(t, []byte{0xd7, 0x04, 0xef, 0xbe, 0xef, 0xbe, 0xad, 0xde}, buf.Bytes()[:8])

	r := snapshot.NewFieldReader(&buf)
	i, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, -300, i)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), u16)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	i, err = r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, 1<<40, i)

	eof, err := r.AtEOF()
	require.NoError(t, err)
	assert.True(t, eof)

	_, err = r.ReadUint32()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSaveAndLoad(t *testing.T) {
	m := GivenAMap()
	path := filepath.Join(t.TempDir(), "saves", "hospital.thmp")

	info, err := snapshot.Save(path, m, zstd.SpeedFastest)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(data), info.Bytes)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), info.Digest)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	restored := tilemap.New()
	require.NoError(t, snapshot.Load(path, restored))
	assert.Empty(t, ShouldMatchMap(restored, m))

	err = snapshot.Load(filepath.Join(t.TempDir(), "missing.thmp"), restored)
	assert.True(t, os.IsNotExist(err))
}

func TestOversizedHeaderWithoutNodes(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(snapshot.Magic)
	buf.Write([]byte{snapshot.Version, 0})

	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	fields := snapshot.NewFieldWriter(enc)
	require.NoError(t, fields.WriteInt(2048))
	require.NoError(t, fields.WriteInt(2048))
	require.NoError(t, fields.Flush())
	require.NoError(t, enc.Close())

	m := GivenAMap()
	err = snapshot.Decode(&buf, m)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 6, m.Width())
	assert.Equal(t, 4, m.Height())
}

// Package snapshot saves a tilemap.Map to a compressed file and restores it.
//
// A snapshot file is the 4-byte magic "THMP", a little-endian uint16 format
// version, and then a zstd stream holding the map's persisted fields.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MobRulesGames/isomap/logging"
	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/klauspost/compress/zstd"
)

const (
	Magic   = "THMP"
	Version = 1

	headerSize = len(Magic) + 2
)

var (
	ErrBadMagic           = errors.New("not a map snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrTrailingData       = errors.New("trailing data after map")
)

// ParseLevel maps a config name (fastest, default, better, best) to a zstd
// encoder level.
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return zstd.SpeedDefault, fmt.Errorf("unknown compression level %q", name)
	}
	return level, nil
}

// Encode writes a snapshot of m to w.
func Encode(w io.Writer, m *tilemap.Map, level zstd.EncoderLevel) error {
	var header [headerSize]byte
	copy(header[:], Magic)
	binary.LittleEndian.PutUint16(header[len(Magic):], Version)
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	if err != nil {
		return err
	}
	fields := NewFieldWriter(enc)
	if err := m.Persist(fields); err != nil {
		enc.Close()
		return err
	}
	if err := fields.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode replaces m with the snapshot read from r.
func Decode(r io.Reader, m *tilemap.Map) error {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(header[:len(Magic)]) != Magic {
		return ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(header[len(Magic):]); v != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer dec.Close()

	fields := NewFieldReader(dec)
	if err := m.Depersist(fields); err != nil {
		return err
	}
	eof, err := fields.AtEOF()
	if err != nil {
		return err
	}
	if !eof {
		return ErrTrailingData
	}
	return nil
}

// Info describes a snapshot written by Save.
type Info struct {
	Path   string
	Bytes  int
	Digest string
}

// Save writes a snapshot of m to path, creating its directory if needed.
// The file is written in full or not at all.
func Save(path string, m *tilemap.Map, level zstd.EncoderLevel) (Info, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m, level); err != nil {
		return Info{}, fmt.Errorf("couldn't encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Info{}, err
	}

	sum := sha256.Sum256(buf.Bytes())
	info := Info{
		Path:   path,
		Bytes:  buf.Len(),
		Digest: hex.EncodeToString(sum[:]),
	}
	logging.Debug("saved snapshot", "path", path, "bytes", info.Bytes, "level", level.String())
	return info, nil
}

// Load replaces m with the snapshot at path.
func Load(path string, m *tilemap.Map) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Decode(f, m); err != nil {
		return fmt.Errorf("couldn't load snapshot %q: %w", path, err)
	}
	logging.Debug("loaded snapshot", "path", path, "width", m.Width(), "height", m.Height())
	return nil
}

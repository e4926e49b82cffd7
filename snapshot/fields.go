package snapshot

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/MobRulesGames/isomap/tilemap"
)

// FieldWriter encodes the field stream of a map: ints as zig-zag varints,
// uint16 and uint32 as fixed-width little-endian.
type FieldWriter struct {
	w   *bufio.Writer
	buf [binary.MaxVarintLen64]byte
}

var _ tilemap.FieldWriter = (*FieldWriter)(nil)

func NewFieldWriter(w io.Writer) *FieldWriter {
	return &FieldWriter{w: bufio.NewWriterSize(w, 64*1024)}
}

func (fw *FieldWriter) WriteInt(v int) error {
	n := binary.PutVarint(fw.buf[:], int64(v))
	_, err := fw.w.Write(fw.buf[:n])
	return err
}

func (fw *FieldWriter) WriteUint16(v uint16) error {
	binary.LittleEndian.PutUint16(fw.buf[:2], v)
	_, err := fw.w.Write(fw.buf[:2])
	return err
}

func (fw *FieldWriter) WriteUint32(v uint32) error {
	binary.LittleEndian.PutUint32(fw.buf[:4], v)
	_, err := fw.w.Write(fw.buf[:4])
	return err
}

// Flush must be called once all fields are written.
func (fw *FieldWriter) Flush() error {
	return fw.w.Flush()
}

// FieldReader decodes what a FieldWriter wrote. A stream that ends inside a
// field reads as io.ErrUnexpectedEOF.
type FieldReader struct {
	r   *bufio.Reader
	buf [4]byte
}

var _ tilemap.FieldReader = (*FieldReader)(nil)

func NewFieldReader(r io.Reader) *FieldReader {
	return &FieldReader{r: bufio.NewReaderSize(r, 64*1024)}
}

func (fr *FieldReader) ReadInt() (int, error) {
	v, err := binary.ReadVarint(fr.r)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return int(v), err
}

func (fr *FieldReader) ReadUint16() (uint16, error) {
	if _, err := io.ReadFull(fr.r, fr.buf[:2]); err != nil {
		return 0, unexpected(err)
	}
	return binary.LittleEndian.Uint16(fr.buf[:2]), nil
}

func (fr *FieldReader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(fr.r, fr.buf[:4]); err != nil {
		return 0, unexpected(err)
	}
	return binary.LittleEndian.Uint32(fr.buf[:4]), nil
}

// AtEOF reports whether the stream has been read to the end.
func (fr *FieldReader) AtEOF() (bool, error) {
	_, err := fr.r.ReadByte()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, fr.r.UnreadByte()
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

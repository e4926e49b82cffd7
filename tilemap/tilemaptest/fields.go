package tilemaptest

import (
	"fmt"
	"io"

	"github.com/MobRulesGames/isomap/tilemap"
)

// Fields is an in-memory FieldWriter/FieldReader that keeps each field with
// its type, so a read of the wrong type is reported instead of misread.
type Fields struct {
	values []interface{}
	next   int
}

var _ tilemap.FieldWriter = (*Fields)(nil)
var _ tilemap.FieldReader = (*Fields)(nil)

func (f *Fields) WriteInt(v int) error {
	f.values = append(f.values, v)
	return nil
}

func (f *Fields) WriteUint16(v uint16) error {
	f.values = append(f.values, v)
	return nil
}

func (f *Fields) WriteUint32(v uint32) error {
	f.values = append(f.values, v)
	return nil
}

func (f *Fields) Len() int {
	return len(f.values)
}

func (f *Fields) pop() (interface{}, error) {
	if f.next >= len(f.values) {
		return nil, io.ErrUnexpectedEOF
	}
	v := f.values[f.next]
	f.next++
	return v, nil
}

func (f *Fields) ReadInt() (int, error) {
	v, err := f.pop()
	if err != nil {
		return 0, err
	}
	i, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("field %d is %T, not int", f.next-1, v)
	}
	return i, nil
}

func (f *Fields) ReadUint16() (uint16, error) {
	v, err := f.pop()
	if err != nil {
		return 0, err
	}
	i, ok := v.(uint16)
	if !ok {
		return 0, fmt.Errorf("field %d is %T, not uint16", f.next-1, v)
	}
	return i, nil
}

func (f *Fields) ReadUint32() (uint32, error) {
	v, err := f.pop()
	if err != nil {
		return 0, err
	}
	i, ok := v.(uint32)
	if !ok {
		return 0, fmt.Errorf("field %d is %T, not uint32", f.next-1, v)
	}
	return i, nil
}

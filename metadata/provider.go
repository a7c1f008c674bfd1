package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ErrUnreadable marks hard read failures: the file is missing, cannot be
// opened, or is not an image at all. It is distinct from "image without
// metadata", which yields a nil table and no error.
var ErrUnreadable = errors.New("unreadable image")

// Provider opens an image file and exposes its decoded tag table.
type Provider interface {
	Open(path string) (Table, error)
}

// GoexifProvider reads tag tables with rwcarlsen/goexif.
type GoexifProvider struct{}

func (GoexifProvider) Open(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	if !sniffImage(f) {
		return nil, fmt.Errorf("%w: %s: not a recognized image", ErrUnreadable, path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	x, err := exif.Decode(f)
	if err != nil {
		// The file is a real image but carries no usable metadata
		// block. Not an error.
		return nil, nil
	}

	w := &tableWalker{table: NewMapTable()}
	if err := x.Walk(w); err != nil {
		return nil, nil
	}
	if len(w.table.Values) == 0 && len(w.table.Tables) == 0 {
		return nil, nil
	}
	return w.table, nil
}

var imageMagics = [][]byte{
	{0xFF, 0xD8, 0xFF}, // JPEG
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, // PNG
	{'I', 'I', '*', 0x00},                         // TIFF little endian
	{'M', 'M', 0x00, '*'},                         // TIFF big endian
}

func sniffImage(r io.Reader) bool {
	head := make([]byte, 8)
	n, _ := io.ReadFull(r, head)
	head = head[:n]
	for _, magic := range imageMagics {
		if bytes.HasPrefix(head, magic) {
			return true
		}
	}
	return false
}

// tableWalker partitions decoded fields into the main table and the
// nested GPS sub-table. goexif flattens the GPS IFD into GPS-prefixed
// field names; the tag ids it reports there belong to the GPS id space.
type tableWalker struct {
	table *MapTable
}

func (w *tableWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	v := tagValue(tag)

	if strings.HasPrefix(string(name), "GPS") {
		gps, ok := w.table.Tables[TagGPSInfo]
		if !ok {
			gps = NewMapTable()
			w.table.Tables[TagGPSInfo] = gps
		}
		gps.Values[uint16(tag.Id)] = v
		return nil
	}

	w.table.Values[uint16(tag.Id)] = v
	return nil
}

func tagValue(t *tiff.Tag) Value {
	switch t.Type {
	case tiff.DTAscii:
		if s, err := t.StringVal(); err == nil {
			return TextValue(s)
		}
		return BytesValue(t.Val)
	case tiff.DTByte, tiff.DTSByte, tiff.DTUndefined:
		return BytesValue(t.Val)
	case tiff.DTShort, tiff.DTLong, tiff.DTSShort, tiff.DTSLong:
		ints := make([]int64, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			n, err := t.Int64(i)
			if err != nil {
				return BytesValue(t.Val)
			}
			ints = append(ints, n)
		}
		return IntValue(ints...)
	case tiff.DTRational, tiff.DTSRational:
		rats := make([]Rational, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			num, den, err := t.Rat2(i)
			if err != nil {
				return BytesValue(t.Val)
			}
			rats = append(rats, Rational{Num: num, Den: den})
		}
		return RatValue(rats...)
	case tiff.DTFloat, tiff.DTDouble:
		floats := make([]float64, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			f, err := t.Float(i)
			if err != nil {
				return BytesValue(t.Val)
			}
			floats = append(floats, f)
		}
		return FloatValue(floats...)
	default:
		return BytesValue(t.Val)
	}
}

// Package raster decodes and encodes the PostGIS raster binary format: a
// fixed 61-byte header followed by one or more pixel bands.
//
// # Header Format
//
//	0      endianness (1 byte, 0=big / 1=little)
//	1..3   version (uint16)
//	3..5   nbands (uint16)
//	5..13  scaleX (float64)
//	13..21 scaleY (float64)
//	21..29 ipX (float64)
//	29..37 ipY (float64)
//	37..45 skewX (float64)
//	45..53 skewY (float64)
//	53..57 srid (int32)
//	57..59 width (uint16)
//	59..61 height (uint16)
//
// Every multi-byte field uses the order declared by byte 0. Each band is one
// metadata byte (pixel type + 64; the high bits are PostGIS band flags this
// codec does not interpret) followed by width*height row-major samples.
// Bands carry no offset pointers: each starts where the previous one ended.
package raster

import (
	"encoding/binary"
	"fmt"

	"github.com/njordgeo/njord/pkg/cursor"
)

// HeaderSize is the fixed raster header length in bytes.
const HeaderSize = 61

// Header holds the fixed raster header fields.
type Header struct {
	Little   bool
	Version  uint16
	NumBands uint16
	ScaleX   float64
	ScaleY   float64
	IPX      float64
	IPY      float64
	SkewX    float64
	SkewY    float64
	SRID     int32
	Width    uint16
	Height   uint16
}

// ByteOrder returns the byte order declared by the header.
func (h Header) ByteOrder() binary.ByteOrder {
	if h.Little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ParseHeader decodes the fixed 61-byte header at the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("raster: header needs %d bytes, have %d: %w",
			HeaderSize, len(buf), cursor.ErrMalformedInput)
	}
	marker := buf[0]
	if marker != 0 && marker != 1 {
		return Header{}, fmt.Errorf("raster: endianness marker must be 0 or 1, got %d: %w",
			marker, cursor.ErrMalformedInput)
	}
	h := Header{Little: marker == 1}
	r := cursor.NewReader(buf[1:HeaderSize], h.ByteOrder())

	var err error
	read := func(dst interface{}) {
		if err != nil {
			return
		}
		switch d := dst.(type) {
		case *uint16:
			*d, err = r.Uint16()
		case *int32:
			*d, err = r.Int32()
		case *float64:
			*d, err = r.Float64()
		}
	}
	read(&h.Version)
	read(&h.NumBands)
	read(&h.ScaleX)
	read(&h.ScaleY)
	read(&h.IPX)
	read(&h.IPY)
	read(&h.SkewX)
	read(&h.SkewY)
	read(&h.SRID)
	read(&h.Width)
	read(&h.Height)
	if err != nil {
		return Header{}, fmt.Errorf("raster: header field: %w", err)
	}
	return h, nil
}

// EncodeHeader writes h back to its 61-byte binary form under the order the
// header declares.
func EncodeHeader(h Header) []byte {
	w := cursor.NewWriter(h.ByteOrder())
	if h.Little {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
	w.PutUint16(h.Version)
	w.PutUint16(h.NumBands)
	w.PutFloat64(h.ScaleX)
	w.PutFloat64(h.ScaleY)
	w.PutFloat64(h.IPX)
	w.PutFloat64(h.IPY)
	w.PutFloat64(h.SkewX)
	w.PutFloat64(h.SkewY)
	w.PutInt32(h.SRID)
	w.PutUint16(h.Width)
	w.PutUint16(h.Height)
	return w.Bytes()
}

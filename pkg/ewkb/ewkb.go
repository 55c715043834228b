// Package ewkb manipulates the SRID portion of WKB/EWKB geometry headers
// without parsing the geometry body.
//
// # Header Format
//
// A WKB geometry starts with a fixed header:
//
//	offset 0     : 1 byte  endianness marker (0=big, 1=little)
//	offset 1..5  : 4 bytes geometry type word (uint32)
//	offset 5..9  : 4 bytes SRID (uint32), present only when bit 0x20000000
//	               of the type word is set
//
// The remainder of the buffer is the geometry body and is copied through
// unchanged by every operation here. All multi-byte fields use the order
// declared by the marker byte.
//
// Each binary operation has a hexadecimal twin (hex string in, lowercase hex
// string out) because several backends transport binary geometry as text.
package ewkb

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/njordgeo/njord/pkg/cursor"
)

// SRIDFlag is the bit in the geometry type word marking an embedded SRID.
const SRIDFlag uint32 = 0x20000000

const (
	// HeaderSize is the endianness marker plus the type word.
	HeaderSize = 5
	// SRIDSize is the width of the embedded SRID field.
	SRIDSize = 4
)

// ErrInvalidArgument indicates a malformed EWKT prefix or an SRID value that
// cannot be represented in the 4-byte header field.
var ErrInvalidArgument = errors.New("invalid argument")

// Header holds the fields of a WKB/EWKB geometry header.
type Header struct {
	Order    binary.ByteOrder
	Little   bool
	Type     uint32 // raw type word, SRID bit included
	Extended bool
	SRID     int // -1 when the SRID bit is clear
}

// ByteOrder maps an endianness marker byte to a binary.ByteOrder.
func ByteOrder(marker byte) (binary.ByteOrder, error) {
	switch marker {
	case 0:
		return binary.BigEndian, nil
	case 1:
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("ewkb: endianness marker must be 0 or 1, got %d: %w",
		marker, cursor.ErrMalformedInput)
}

// ReadHeader decodes the geometry header of buf. Only the SRID bytes are
// read beyond the type word, and only when the SRID bit is set.
func ReadHeader(buf []byte) (Header, error) {
	r := cursor.NewReader(buf, binary.LittleEndian)
	marker, err := r.Uint8()
	if err != nil {
		return Header{}, fmt.Errorf("ewkb: header: %w", err)
	}
	order, err := ByteOrder(marker)
	if err != nil {
		return Header{}, err
	}
	r.SetOrder(order)
	typ, err := r.Uint32()
	if err != nil {
		return Header{}, fmt.Errorf("ewkb: type word: %w", err)
	}
	h := Header{
		Order:    order,
		Little:   marker == 1,
		Type:     typ,
		Extended: typ&SRIDFlag != 0,
		SRID:     -1,
	}
	if h.Extended {
		srid, err := r.Uint32()
		if err != nil {
			return Header{}, fmt.Errorf("ewkb: srid: %w", err)
		}
		h.SRID = int(srid)
	}
	return h, nil
}

// ExtractSRID reports whether buf carries an embedded SRID and its value.
// The SRID is -1 when the extended bit is clear.
func ExtractSRID(buf []byte) (extended bool, srid int, err error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return false, -1, err
	}
	return h.Extended, h.SRID, nil
}

// StripSRID clears the SRID bit and removes the 4 SRID bytes, shifting the
// geometry body left. Returns buf unchanged when the bit is already clear.
func StripSRID(buf []byte) ([]byte, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}
	if !h.Extended {
		return buf, nil
	}
	w := cursor.NewWriter(h.Order)
	w.PutUint8(buf[0])
	w.PutUint32(h.Type &^ SRIDFlag)
	w.PutBytes(buf[HeaderSize+SRIDSize:])
	return w.Bytes(), nil
}

// InjectSRID sets the SRID bit and inserts the 4-byte SRID after the type
// word, shifting the geometry body right. Returns buf unchanged when the bit
// is already set.
func InjectSRID(buf []byte, srid int) ([]byte, error) {
	h, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}
	if h.Extended {
		return buf, nil
	}
	if srid < 0 || srid > math.MaxUint32 {
		return nil, fmt.Errorf("ewkb: srid %d does not fit the 4-byte header field: %w",
			srid, ErrInvalidArgument)
	}
	w := cursor.NewWriter(h.Order)
	w.PutUint8(buf[0])
	w.PutUint32(h.Type | SRIDFlag)
	w.PutUint32(uint32(srid))
	w.PutBytes(buf[HeaderSize:])
	return w.Bytes(), nil
}

// ExtractSRIDHex is ExtractSRID over a hex-encoded buffer.
func ExtractSRIDHex(s string) (extended bool, srid int, err error) {
	raw, err := decodeHex(s)
	if err != nil {
		return false, -1, err
	}
	return ExtractSRID(raw)
}

// StripSRIDHex is StripSRID over a hex-encoded buffer; hex in, lowercase
// hex out.
func StripSRIDHex(s string) (string, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return "", err
	}
	out, err := StripSRID(raw)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

// InjectSRIDHex is InjectSRID over a hex-encoded buffer; hex in, lowercase
// hex out.
func InjectSRIDHex(s string, srid int) (string, error) {
	raw, err := decodeHex(s)
	if err != nil {
		return "", err
	}
	out, err := InjectSRID(raw, srid)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(out), nil
}

func decodeHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("ewkb: invalid hex input: %v: %w", err, cursor.ErrMalformedInput)
	}
	return raw, nil
}

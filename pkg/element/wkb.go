package element

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/njordgeo/njord/pkg/cursor"
	"github.com/njordgeo/njord/pkg/ewkb"
)

// WKB wraps a WKB or EWKB payload, held as raw bytes or as lowercase hex
// text. The hex form exists because some backends transport binary values as
// text; conversions preserve whichever representation the value was built
// from.
type WKB struct {
	raw      []byte
	isHex    bool
	srid     int
	extended bool
	desc     string
}

// NewWKB wraps a binary WKB/EWKB payload. The header is read at
// construction: the extended flag comes from the SRID bit, and when srid is
// UnknownSRID the embedded SRID is extracted.
func NewWKB(data []byte, srid int) (*WKB, error) {
	return newWKB(data, srid, false)
}

// NewWKBHex wraps a hex-encoded WKB/EWKB payload. Behaves exactly like
// NewWKB; uppercase input is normalized to lowercase.
func NewWKBHex(s string, srid int) (*WKB, error) {
	s = strings.ToLower(s)
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("element: wkb hex decode: %v: %w", err, cursor.ErrMalformedInput)
	}
	return newWKB(raw, srid, true)
}

func newWKB(data []byte, srid int, isHex bool) (*WKB, error) {
	h, err := ewkb.ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	if h.Extended && srid == UnknownSRID {
		srid = h.SRID
	}
	raw := append([]byte(nil), data...)
	return &WKB{
		raw:      raw,
		isHex:    isHex,
		srid:     srid,
		extended: h.Extended,
		desc:     hex.EncodeToString(raw),
	}, nil
}

// WKBFromDesc reconstructs a WKB element from its description string.
func WKBFromDesc(desc string) (*WKB, error) {
	return NewWKBHex(desc, UnknownSRID)
}

func (e *WKB) Desc() string   { return e.desc }
func (e *WKB) SRID() int      { return e.srid }
func (e *WKB) Extended() bool { return e.extended }
func (e *WKB) String() string { return e.Desc() }

// Bytes returns a copy of the payload in binary form.
func (e *WKB) Bytes() []byte {
	return append([]byte(nil), e.raw...)
}

// Hex returns the payload as lowercase hex text.
func (e *WKB) Hex() string { return e.desc }

// IsHex reports whether the value was constructed from hex text.
func (e *WKB) IsHex() bool { return e.isHex }

// AsWKB returns the value in plain WKB form, removing the embedded SRID
// while keeping the srid attribute.
func (e *WKB) AsWKB() (*WKB, error) {
	if !e.extended {
		return e.clone(), nil
	}
	stripped, err := ewkb.StripSRID(e.raw)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	out := &WKB{
		raw:      stripped,
		isHex:    e.isHex,
		srid:     e.srid,
		extended: false,
		desc:     hex.EncodeToString(stripped),
	}
	return out, nil
}

// AsEWKB returns the value in extended form, embedding the srid attribute
// into the payload when one is known and not already embedded.
func (e *WKB) AsEWKB() (*WKB, error) {
	if e.extended || e.srid == UnknownSRID {
		return e.clone(), nil
	}
	injected, err := ewkb.InjectSRID(e.raw, e.srid)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	out := &WKB{
		raw:      injected,
		isHex:    e.isHex,
		srid:     e.srid,
		extended: true,
		desc:     hex.EncodeToString(injected),
	}
	return out, nil
}

func (e *WKB) clone() *WKB {
	dup := *e
	return &dup
}

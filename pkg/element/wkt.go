package element

import (
	"fmt"

	"github.com/njordgeo/njord/pkg/ewkb"
)

// WKT wraps a WKT or EWKT string.
//
//	NewWKT("POINT(5 45)", element.UnknownSRID)
//	NewWKT("POINT(5 45)", 4326)
//	NewWKT("SRID=4326;POINT(5 45)", element.UnknownSRID)
type WKT struct {
	data     string
	srid     int
	extended bool
}

// NewWKT wraps a WKT string. A leading "SRID=" prefix marks the extended
// form; when srid is UnknownSRID the embedded value is parsed out of the
// prefix, and a malformed prefix fails with ewkb.ErrInvalidArgument.
func NewWKT(data string, srid int) (*WKT, error) {
	extended := ewkb.HasSRIDPrefix(data)
	if extended && srid == UnknownSRID {
		embedded, _, err := ewkb.SplitEWKT(data)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		srid = embedded
	}
	return &WKT{data: data, srid: srid, extended: extended}, nil
}

// WKTFromDesc reconstructs a WKT element from its description string.
func WKTFromDesc(desc string) (*WKT, error) {
	return NewWKT(desc, UnknownSRID)
}

func (e *WKT) Desc() string   { return e.data }
func (e *WKT) SRID() int      { return e.srid }
func (e *WKT) Extended() bool { return e.extended }
func (e *WKT) String() string { return e.Desc() }

// AsWKT returns the value in plain WKT form, dropping the SRID prefix while
// keeping the srid attribute.
func (e *WKT) AsWKT() *WKT {
	if e.extended {
		_, body, err := ewkb.SplitEWKT(e.data)
		if err != nil {
			// Construction already validated the prefix.
			return &WKT{data: e.data, srid: e.srid, extended: e.extended}
		}
		return &WKT{data: body, srid: e.srid, extended: false}
	}
	return &WKT{data: e.data, srid: e.srid, extended: e.extended}
}

// AsEWKT returns the value in extended form, prefixing the SRID when one is
// known and not already embedded.
func (e *WKT) AsEWKT() *WKT {
	if !e.extended && e.srid != UnknownSRID {
		return &WKT{
			data:     ewkb.AppendEWKT(e.srid, e.data),
			srid:     e.srid,
			extended: true,
		}
	}
	return &WKT{data: e.data, srid: e.srid, extended: e.extended}
}

// Package element wraps spatial payloads — WKT/EWKT text, WKB/EWKB binary,
// and raster binary — behind a common Element interface.
//
// Values are immutable after construction: conversions return new instances,
// and construction from invalid input fails immediately rather than on first
// use. The canonical description string is derived once at construction and
// reused for equality and reconstruction.
package element

import (
	"strconv"
)

// UnknownSRID marks a value with no spatial reference system attached.
const UnknownSRID = -1

// Element is a wrapped spatial value.
type Element interface {
	// Desc is the canonical description: the text itself for WKT values,
	// lowercase hex for binary payloads.
	Desc() string
	// SRID is the spatial reference system identifier, UnknownSRID when
	// unspecified.
	SRID() int
	// Extended reports whether the SRID is embedded in the payload itself.
	Extended() bool
}

// Equal reports whether two elements carry the same logical value: equal
// extended flags, SRIDs, and canonical descriptions. Payload representation
// (raw bytes vs hex text) does not matter.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Extended() == b.Extended() && a.SRID() == b.SRID() && a.Desc() == b.Desc()
}

// Key returns a stable identity string for an element, suitable for map keys
// and hashing. Elements that are Equal have equal keys.
func Key(e Element) string {
	return strconv.FormatBool(e.Extended()) + "|" + strconv.Itoa(e.SRID()) + "|" + e.Desc()
}


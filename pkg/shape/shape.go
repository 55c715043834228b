// Package shape converts between wrapped spatial payloads and the go-geom
// geometry object model. It is a thin adapter: geometric algorithms live in
// go-geom or the database, never here.
package shape

import (
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	geomewkb "github.com/twpayne/go-geom/encoding/ewkb"
	geomwkb "github.com/twpayne/go-geom/encoding/wkb"
	geomwkt "github.com/twpayne/go-geom/encoding/wkt"

	"github.com/njordgeo/njord/pkg/element"
)

// ToGeom decodes a wrapped WKB/EWKB payload into a geometry object.
func ToGeom(e *element.WKB) (geom.T, error) {
	if e.Extended() {
		g, err := geomewkb.Unmarshal(e.Bytes())
		if err != nil {
			return nil, fmt.Errorf("shape: ewkb unmarshal: %w", err)
		}
		return g, nil
	}
	g, err := geomwkb.Unmarshal(e.Bytes())
	if err != nil {
		return nil, fmt.Errorf("shape: wkb unmarshal: %w", err)
	}
	return g, nil
}

// FromGeom encodes a geometry object into a wrapped EWKB payload under the
// given byte order. The geometry's own SRID rides along; a zero SRID yields
// a plain WKB payload with no embedded reference system.
func FromGeom(g geom.T, order binary.ByteOrder) (*element.WKB, error) {
	data, err := geomewkb.Marshal(g, order)
	if err != nil {
		return nil, fmt.Errorf("shape: ewkb marshal: %w", err)
	}
	return element.NewWKB(data, element.UnknownSRID)
}

// ToGeomText decodes a wrapped WKT/EWKT value into a geometry object. The
// SRID prefix, if any, is split off first; go-geom parses the plain body.
func ToGeomText(e *element.WKT) (geom.T, error) {
	g, err := geomwkt.Unmarshal(e.AsWKT().Desc())
	if err != nil {
		return nil, fmt.Errorf("shape: wkt unmarshal: %w", err)
	}
	if srid := e.SRID(); srid != element.UnknownSRID {
		setSRID(g, srid)
	}
	return g, nil
}

// FromGeomText encodes a geometry object into a wrapped WKT value carrying
// the given SRID attribute (not embedded; use AsEWKT on the result for the
// extended text form).
func FromGeomText(g geom.T, srid int) (*element.WKT, error) {
	s, err := geomwkt.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("shape: wkt marshal: %w", err)
	}
	return element.NewWKT(s, srid)
}

// setSRID works around geom.T not exposing SetSRID on the interface.
func setSRID(g geom.T, srid int) {
	switch g := g.(type) {
	case *geom.Point:
		g.SetSRID(srid)
	case *geom.LineString:
		g.SetSRID(srid)
	case *geom.Polygon:
		g.SetSRID(srid)
	case *geom.MultiPoint:
		g.SetSRID(srid)
	case *geom.MultiLineString:
		g.SetSRID(srid)
	case *geom.MultiPolygon:
		g.SetSRID(srid)
	case *geom.GeometryCollection:
		g.SetSRID(srid)
	}
}

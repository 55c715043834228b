package element

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/njordgeo/njord/pkg/cursor"
	"github.com/njordgeo/njord/pkg/raster"
)

// Raster wraps a raster payload, always held as lowercase hex text. The SRID
// is read out of the 61-byte header at construction, so a Raster is always
// extended.
type Raster struct {
	data string
	srid int
}

// NewRaster wraps a binary raster payload. The header is validated and the
// SRID extracted before the value exists; too-short buffers and bad
// endianness markers fail with an error naming the stage.
func NewRaster(data []byte) (*Raster, error) {
	h, err := raster.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	return &Raster{data: hex.EncodeToString(data), srid: int(h.SRID)}, nil
}

// NewRasterHex wraps a hex-encoded raster payload. A failure reports which
// stage broke: hex decode, header length, or field extraction.
func NewRasterHex(s string) (*Raster, error) {
	s = strings.ToLower(s)
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("element: raster hex decode: %v: %w", err, cursor.ErrMalformedInput)
	}
	h, err := raster.ParseHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	return &Raster{data: s, srid: int(h.SRID)}, nil
}

// RasterFromDesc reconstructs a Raster element from its description string.
func RasterFromDesc(desc string) (*Raster, error) {
	return NewRasterHex(desc)
}

func (e *Raster) Desc() string   { return e.data }
func (e *Raster) SRID() int      { return e.srid }
func (e *Raster) Extended() bool { return true }
func (e *Raster) String() string { return e.Desc() }

// Bytes returns a copy of the payload in binary form.
func (e *Raster) Bytes() []byte {
	raw, _ := hex.DecodeString(e.data)
	return raw
}

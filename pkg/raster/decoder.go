package raster

import (
	"encoding/hex"
	"fmt"

	"github.com/njordgeo/njord/pkg/cursor"
)

// Raster is a fully decoded raster payload.
type Raster struct {
	Header Header
	Bands  []Band
}

// Decoder decodes raster payloads. The zero value is not usable; construct
// with NewDecoder. Decoders are stateless and safe for concurrent use.
type Decoder struct {
	bands BandDecoder
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithAccelerated selects the bulk band decoder instead of the scalar one.
func WithAccelerated() Option {
	return func(d *Decoder) { d.bands = fastBands{} }
}

// WithBandDecoder installs a custom band decoder implementation.
func WithBandDecoder(bd BandDecoder) Option {
	return func(d *Decoder) { d.bands = bd }
}

// NewDecoder returns a Decoder using the scalar band decoder unless an
// option says otherwise.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{bands: scalarBands{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses the header and all bands of buf. A failure at any band
// discards the bands decoded so far; partial output is never returned.
func (d *Decoder) Decode(buf []byte) (*Raster, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	width, height := int(h.Width), int(h.Height)
	order := h.ByteOrder()

	bands := make([]Band, 0, h.NumBands)
	offset := HeaderSize
	for i := 0; i < int(h.NumBands); i++ {
		if offset >= len(buf) {
			return nil, fmt.Errorf("raster: band %d metadata needs 1 byte at offset %d, have %d: %w",
				i+1, offset, len(buf)-offset, cursor.ErrMalformedInput)
		}
		declared := int(buf[offset])
		pt := PixelType(declared - bandTypeFlag)
		if declared < bandTypeFlag {
			return nil, fmt.Errorf("raster: band %d metadata byte %d below type flag: %w",
				i+1, declared, ErrUnsupportedPixelType)
		}
		size, err := SampleSize(pt)
		if err != nil {
			return nil, fmt.Errorf("raster: band %d: %w", i+1, err)
		}
		need := width * height * size
		if len(buf)-offset-1 < need {
			return nil, fmt.Errorf("raster: band %d payload needs %d bytes at offset %d, have %d: %w",
				i+1, need, offset+1, len(buf)-offset-1, cursor.ErrMalformedInput)
		}
		grid, err := d.bands.DecodeBand(buf[offset+1:offset+1+need], order, pt, width, height)
		if err != nil {
			return nil, fmt.Errorf("raster: band %d: %w", i+1, err)
		}
		bands = append(bands, Band{PixelType: pt, Values: grid})
		offset += 1 + need
	}
	return &Raster{Header: h, Bands: bands}, nil
}

// DecodeHex decodes a raster payload from its lowercase hex text form.
func (d *Decoder) DecodeHex(s string) (*Raster, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("raster: invalid hex input: %v: %w", err, cursor.ErrMalformedInput)
	}
	return d.Decode(raw)
}

// Encode writes the raster back to its binary form under the byte order the
// header declares. Band grids must match the header dimensions.
func (r *Raster) Encode() ([]byte, error) {
	if int(r.Header.NumBands) != len(r.Bands) {
		return nil, fmt.Errorf("raster: header declares %d bands, have %d", r.Header.NumBands, len(r.Bands))
	}
	w := cursor.NewWriter(r.Header.ByteOrder())
	w.PutBytes(EncodeHeader(r.Header))
	for i, b := range r.Bands {
		if err := encodeBand(w, b, int(r.Header.Width), int(r.Header.Height)); err != nil {
			return nil, fmt.Errorf("raster: band %d: %w", i+1, err)
		}
	}
	return w.Bytes(), nil
}

func encodeBand(w *cursor.Writer, b Band, width, height int) error {
	if _, err := SampleSize(b.PixelType); err != nil {
		return err
	}
	if len(b.Values) != height {
		return fmt.Errorf("band has %d rows, header says %d", len(b.Values), height)
	}
	w.PutUint8(uint8(b.PixelType) + bandTypeFlag)
	for _, row := range b.Values {
		if len(row) != width {
			return fmt.Errorf("band row has %d samples, header says %d", len(row), width)
		}
		for _, v := range row {
			writeSample(w, b.PixelType, v)
		}
	}
	return nil
}

func writeSample(w *cursor.Writer, pt PixelType, v float64) {
	switch pt {
	case PT1BB:
		if v != 0 {
			w.PutUint8(1)
		} else {
			w.PutUint8(0)
		}
	case PT2BUI, PT4BUI, PT8BUI:
		w.PutUint8(uint8(v))
	case PT8BSI:
		w.PutInt8(int8(v))
	case PT16BSI:
		w.PutInt16(int16(v))
	case PT16BUI:
		w.PutUint16(uint16(v))
	case PT32BSI:
		w.PutInt32(int32(v))
	case PT32BUI:
		w.PutUint32(uint32(v))
	case PT32BF:
		w.PutFloat32(float32(v))
	case PT64BF:
		w.PutFloat64(v)
	}
}

package raster

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/njordgeo/njord/pkg/cursor"
)

// ErrUnsupportedPixelType indicates a pixel-type code outside the supported
// set (0..8, 10, 11).
var ErrUnsupportedPixelType = errors.New("unsupported pixel type")

// PixelType is a PostGIS band pixel-type code.
//
// The sub-byte nominal types (1-bit boolean, 2-bit and 4-bit unsigned) are
// physically stored as full bytes on disk and decoded as such; the nominal
// width is not reconstructed.
type PixelType uint8

const (
	PT1BB   PixelType = 0  // 1-bit boolean, stored as a byte
	PT2BUI  PixelType = 1  // 2-bit unsigned, stored as a byte
	PT4BUI  PixelType = 2  // 4-bit unsigned, stored as a byte
	PT8BSI  PixelType = 3  // 8-bit signed
	PT8BUI  PixelType = 4  // 8-bit unsigned
	PT16BSI PixelType = 5  // 16-bit signed
	PT16BUI PixelType = 6  // 16-bit unsigned
	PT32BSI PixelType = 7  // 32-bit signed
	PT32BUI PixelType = 8  // 32-bit unsigned
	PT32BF  PixelType = 10 // IEEE-754 float32
	PT64BF  PixelType = 11 // IEEE-754 float64
)

// bandTypeFlag is added to the pixel type in the band metadata byte. Bits
// above the type code are PostGIS band flags this codec passes over.
const bandTypeFlag = 64

var pixelTypeNames = map[PixelType]string{
	PT1BB:   "1BB",
	PT2BUI:  "2BUI",
	PT4BUI:  "4BUI",
	PT8BSI:  "8BSI",
	PT8BUI:  "8BUI",
	PT16BSI: "16BSI",
	PT16BUI: "16BUI",
	PT32BSI: "32BSI",
	PT32BUI: "32BUI",
	PT32BF:  "32BF",
	PT64BF:  "64BF",
}

func (pt PixelType) String() string {
	if name, ok := pixelTypeNames[pt]; ok {
		return name
	}
	return fmt.Sprintf("PixelType(%d)", uint8(pt))
}

// SampleSize returns the on-disk element width in bytes for a pixel type.
// Code 9 is undefined in PostGIS and fails, as does anything above 11.
func SampleSize(pt PixelType) (int, error) {
	switch pt {
	case PT1BB, PT2BUI, PT4BUI, PT8BSI, PT8BUI:
		return 1, nil
	case PT16BSI, PT16BUI:
		return 2, nil
	case PT32BSI, PT32BUI, PT32BF:
		return 4, nil
	case PT64BF:
		return 8, nil
	}
	return 0, fmt.Errorf("raster: pixel type %d: %w", uint8(pt), ErrUnsupportedPixelType)
}

// Band is one decoded channel of a raster: height rows of width samples.
// Samples are surfaced as float64, which holds every supported width
// exactly; PT1BB samples are 0 or 1.
type Band struct {
	PixelType PixelType
	Values    [][]float64
}

// Bool reads a PT1BB sample as a boolean.
func (b Band) Bool(row, col int) bool {
	return b.Values[row][col] != 0
}

// BandDecoder decodes width*height row-major samples of one pixel type.
// data holds exactly the band's sample bytes, metadata byte excluded.
type BandDecoder interface {
	DecodeBand(data []byte, order binary.ByteOrder, pt PixelType, width, height int) ([][]float64, error)
}

// scalarBands walks samples one at a time through a cursor. This is the
// reference implementation the accelerated path is checked against.
type scalarBands struct{}

func (scalarBands) DecodeBand(data []byte, order binary.ByteOrder, pt PixelType, width, height int) ([][]float64, error) {
	r := cursor.NewReader(data, order)
	grid := make([][]float64, height)
	for i := range grid {
		row := make([]float64, width)
		for j := range row {
			v, err := readSample(r, pt)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		grid[i] = row
	}
	return grid, nil
}

func readSample(r *cursor.Reader, pt PixelType) (float64, error) {
	switch pt {
	case PT1BB:
		v, err := r.Uint8()
		if err != nil {
			return 0, err
		}
		if v != 0 {
			return 1, nil
		}
		return 0, nil
	case PT2BUI, PT4BUI, PT8BUI:
		v, err := r.Uint8()
		return float64(v), err
	case PT8BSI:
		v, err := r.Int8()
		return float64(v), err
	case PT16BSI:
		v, err := r.Int16()
		return float64(v), err
	case PT16BUI:
		v, err := r.Uint16()
		return float64(v), err
	case PT32BSI:
		v, err := r.Int32()
		return float64(v), err
	case PT32BUI:
		v, err := r.Uint32()
		return float64(v), err
	case PT32BF:
		v, err := r.Float32()
		return float64(v), err
	case PT64BF:
		return r.Float64()
	}
	return 0, fmt.Errorf("raster: pixel type %d: %w", uint8(pt), ErrUnsupportedPixelType)
}

// fastBands decodes sample runs by slicing the band data directly instead of
// going through a cursor. Same contract and output as scalarBands; selected
// by configuration for large grids.
type fastBands struct{}

func (fastBands) DecodeBand(data []byte, order binary.ByteOrder, pt PixelType, width, height int) ([][]float64, error) {
	size, err := SampleSize(pt)
	if err != nil {
		return nil, err
	}
	if need := width * height * size; len(data) < need {
		return nil, fmt.Errorf("raster: band payload needs %d bytes, have %d: %w",
			need, len(data), cursor.ErrMalformedInput)
	}
	grid := make([][]float64, height)
	for i := range grid {
		row := make([]float64, width)
		base := i * width * size
		switch pt {
		case PT1BB:
			for j := range row {
				if data[base+j] != 0 {
					row[j] = 1
				}
			}
		case PT2BUI, PT4BUI, PT8BUI:
			for j := range row {
				row[j] = float64(data[base+j])
			}
		case PT8BSI:
			for j := range row {
				row[j] = float64(int8(data[base+j]))
			}
		case PT16BSI:
			for j := range row {
				row[j] = float64(int16(order.Uint16(data[base+j*2:])))
			}
		case PT16BUI:
			for j := range row {
				row[j] = float64(order.Uint16(data[base+j*2:]))
			}
		case PT32BSI:
			for j := range row {
				row[j] = float64(int32(order.Uint32(data[base+j*4:])))
			}
		case PT32BUI:
			for j := range row {
				row[j] = float64(order.Uint32(data[base+j*4:]))
			}
		case PT32BF:
			for j := range row {
				row[j] = float64(math.Float32frombits(order.Uint32(data[base+j*4:])))
			}
		case PT64BF:
			for j := range row {
				row[j] = math.Float64frombits(order.Uint64(data[base+j*8:]))
			}
		}
		grid[i] = row
	}
	return grid, nil
}

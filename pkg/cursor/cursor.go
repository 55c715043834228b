// Package cursor provides positioned binary reads and writes over byte
// buffers with explicit, switchable endianness.
//
// Every multi-byte spatial payload in this repository declares its own byte
// order in a leading marker byte, so a Reader starts with a caller-supplied
// order and switches once the marker has been read. Reads that would run
// past the end of the buffer fail with an error wrapping ErrMalformedInput
// that names the width, offset and remaining bytes.
package cursor

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// ErrMalformedInput indicates a buffer too short for a required fixed-size
// field, or input that is not valid hexadecimal text.
var ErrMalformedInput = errors.New("malformed input")

// Reader reads fixed-width values from a byte slice at an advancing offset.
type Reader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

// NewReader wraps buf for reading under the given byte order.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// NewReaderHex decodes a hexadecimal string once and wraps the result.
func NewReaderHex(s string, order binary.ByteOrder) (*Reader, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("cursor: invalid hex input: %v: %w", err, ErrMalformedInput)
	}
	return NewReader(raw, order), nil
}

// SetOrder changes the byte order for subsequent reads. Used after reading
// an endianness marker byte.
func (r *Reader) SetOrder(order binary.ByteOrder) { r.order = order }

// Order returns the current byte order.
func (r *Reader) Order() binary.ByteOrder { return r.order }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("cursor: need %d bytes at offset %d, have %d: %w",
			n, r.off, len(r.buf)-r.off, ErrMalformedInput)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Bytes reads n raw bytes. The returned slice aliases the underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) Float64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order.Uint64(b)), nil
}

// Writer appends fixed-width values to a growable buffer. Writes mirror
// Reader reads field for field.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter returns an empty Writer using the given byte order.
func NewWriter(order binary.ByteOrder) *Writer {
	return &Writer{order: order}
}

// SetOrder changes the byte order for subsequent writes.
func (w *Writer) SetOrder(order binary.ByteOrder) { w.order = order }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Hex returns the accumulated buffer as lowercase hexadecimal text.
func (w *Writer) Hex() string { return hex.EncodeToString(w.buf) }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) PutUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) PutInt8(v int8) {
	w.PutUint8(uint8(v))
}

func (w *Writer) PutUint16(v uint16) {
	var tmp [2]byte
	w.order.PutUint16(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) PutInt16(v int16) {
	w.PutUint16(uint16(v))
}

func (w *Writer) PutUint32(v uint32) {
	var tmp [4]byte
	w.order.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) PutInt32(v int32) {
	w.PutUint32(uint32(v))
}

func (w *Writer) PutFloat32(v float32) {
	w.PutUint32(math.Float32bits(v))
}

func (w *Writer) PutFloat64(v float64) {
	var tmp [8]byte
	w.order.PutUint64(tmp[:], math.Float64bits(v))
	w.buf = append(w.buf, tmp[:]...)
}

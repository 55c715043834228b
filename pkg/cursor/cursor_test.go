package cursor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestReader_FixedWidthReads(t *testing.T) {
	orders := []struct {
		name  string
		order binary.ByteOrder
	}{
		{"little", binary.LittleEndian},
		{"big", binary.BigEndian},
	}

	for _, o := range orders {
		t.Run(o.name, func(t *testing.T) {
			w := NewWriter(o.order)
			w.PutUint8(0xAB)
			w.PutInt8(-5)
			w.PutUint16(0xBEEF)
			w.PutInt16(-12345)
			w.PutUint32(0xDEADBEEF)
			w.PutInt32(-123456789)
			w.PutFloat32(1.5)
			w.PutFloat64(-2.25)

			r := NewReader(w.Bytes(), o.order)

			if v, err := r.Uint8(); err != nil || v != 0xAB {
				t.Fatalf("Uint8: got %v, %v", v, err)
			}
			if v, err := r.Int8(); err != nil || v != -5 {
				t.Fatalf("Int8: got %v, %v", v, err)
			}
			if v, err := r.Uint16(); err != nil || v != 0xBEEF {
				t.Fatalf("Uint16: got %v, %v", v, err)
			}
			if v, err := r.Int16(); err != nil || v != -12345 {
				t.Fatalf("Int16: got %v, %v", v, err)
			}
			if v, err := r.Uint32(); err != nil || v != 0xDEADBEEF {
				t.Fatalf("Uint32: got %v, %v", v, err)
			}
			if v, err := r.Int32(); err != nil || v != -123456789 {
				t.Fatalf("Int32: got %v, %v", v, err)
			}
			if v, err := r.Float32(); err != nil || v != 1.5 {
				t.Fatalf("Float32: got %v, %v", v, err)
			}
			if v, err := r.Float64(); err != nil || v != -2.25 {
				t.Fatalf("Float64: got %v, %v", v, err)
			}
			if r.Remaining() != 0 {
				t.Fatalf("Remaining: got %d, want 0", r.Remaining())
			}
		})
	}
}

func TestReader_ShortBuffer(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
		read func(r *Reader) error
	}{
		{
			name: "uint8 from empty",
			buf:  nil,
			read: func(r *Reader) error { _, err := r.Uint8(); return err },
		},
		{
			name: "uint32 from 3 bytes",
			buf:  []byte{1, 2, 3},
			read: func(r *Reader) error { _, err := r.Uint32(); return err },
		},
		{
			name: "float64 from 7 bytes",
			buf:  make([]byte, 7),
			read: func(r *Reader) error { _, err := r.Float64(); return err },
		},
		{
			name: "bytes past end",
			buf:  []byte{1, 2},
			read: func(r *Reader) error { _, err := r.Bytes(3); return err },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(NewReader(tc.buf, binary.LittleEndian))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestReader_ErrorNamesCounts(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, binary.BigEndian)
	if _, err := r.Uint16(); err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	_, err := r.Uint32()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"need 4 bytes", "offset 2", "have 1"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestReader_SetOrderMidStream(t *testing.T) {
	// An endianness marker read under one order, the rest under the
	// declared one.
	buf := []byte{0x01, 0xE6, 0x10, 0x00, 0x00}
	r := NewReader(buf, binary.BigEndian)

	marker, err := r.Uint8()
	if err != nil || marker != 1 {
		t.Fatalf("marker: got %v, %v", marker, err)
	}
	r.SetOrder(binary.LittleEndian)
	v, err := r.Uint32()
	if err != nil || v != 4326 {
		t.Fatalf("Uint32 after SetOrder: got %v, %v", v, err)
	}
}

func TestNewReaderHex(t *testing.T) {
	r, err := NewReaderHex("01e6100000", binary.LittleEndian)
	if err != nil {
		t.Fatalf("NewReaderHex failed: %v", err)
	}
	if _, err := r.Uint8(); err != nil {
		t.Fatal(err)
	}
	v, err := r.Uint32()
	if err != nil || v != 4326 {
		t.Fatalf("got %v, %v", v, err)
	}

	if _, err := NewReaderHex("zz", binary.LittleEndian); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for bad hex, got %v", err)
	}
	if _, err := NewReaderHex("abc", binary.LittleEndian); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for odd-length hex, got %v", err)
	}
}

func TestWriter_MirrorsReader(t *testing.T) {
	w := NewWriter(binary.BigEndian)
	w.PutBytes([]byte{0xCA, 0xFE})
	w.PutFloat64(math.Pi)
	if w.Len() != 10 {
		t.Fatalf("Len: got %d, want 10", w.Len())
	}

	r := NewReader(w.Bytes(), binary.BigEndian)
	head, err := r.Bytes(2)
	if err != nil || !bytes.Equal(head, []byte{0xCA, 0xFE}) {
		t.Fatalf("Bytes: got %x, %v", head, err)
	}
	v, err := r.Float64()
	if err != nil || v != math.Pi {
		t.Fatalf("Float64: got %v, %v", v, err)
	}
}

func TestWriter_Hex(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.PutUint8(1)
	w.PutUint32(4326)
	if got := w.Hex(); got != "01e6100000" {
		t.Fatalf("Hex: got %q, want %q", got, "01e6100000")
	}
}

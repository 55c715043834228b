package ewkb

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/njordgeo/njord/pkg/cursor"
)

// pointWKB builds a plain WKB point buffer under the given order.
func pointWKB(order binary.ByteOrder, x, y float64) []byte {
	w := cursor.NewWriter(order)
	if order == binary.LittleEndian {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
	w.PutUint32(1) // point type code
	w.PutFloat64(x)
	w.PutFloat64(y)
	return w.Bytes()
}

func TestReadHeader(t *testing.T) {
	testCases := []struct {
		name     string
		order    binary.ByteOrder
		little   bool
		extended bool
		srid     int
	}{
		{"plain little", binary.LittleEndian, true, false, -1},
		{"plain big", binary.BigEndian, false, false, -1},
		{"extended little", binary.LittleEndian, true, true, 4326},
		{"extended big", binary.BigEndian, false, true, 900913},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := pointWKB(tc.order, 5, 45)
			if tc.extended {
				var err error
				buf, err = InjectSRID(buf, tc.srid)
				if err != nil {
					t.Fatalf("InjectSRID failed: %v", err)
				}
			}

			h, err := ReadHeader(buf)
			if err != nil {
				t.Fatalf("ReadHeader failed: %v", err)
			}
			if h.Little != tc.little {
				t.Errorf("Little: got %t, want %t", h.Little, tc.little)
			}
			if h.Extended != tc.extended {
				t.Errorf("Extended: got %t, want %t", h.Extended, tc.extended)
			}
			if h.SRID != tc.srid {
				t.Errorf("SRID: got %d, want %d", h.SRID, tc.srid)
			}
			if h.Type&^SRIDFlag != 1 {
				t.Errorf("type code: got %d, want 1", h.Type&^SRIDFlag)
			}
		})
	}
}

func TestInjectSRID_ExactBytes(t *testing.T) {
	// Point buffer with type word 0x00000001 and SRID 4326 must produce
	// type word 0x20000001 followed by the SRID in the declared order.
	t.Run("little", func(t *testing.T) {
		out, err := InjectSRID(pointWKB(binary.LittleEndian, 5, 45), 4326)
		if err != nil {
			t.Fatalf("InjectSRID failed: %v", err)
		}
		want := []byte{0x01, 0x01, 0x00, 0x00, 0x20, 0xE6, 0x10, 0x00, 0x00}
		if !bytes.Equal(out[:9], want) {
			t.Fatalf("header bytes: got %x, want %x", out[:9], want)
		}
	})
	t.Run("big", func(t *testing.T) {
		out, err := InjectSRID(pointWKB(binary.BigEndian, 5, 45), 4326)
		if err != nil {
			t.Fatalf("InjectSRID failed: %v", err)
		}
		want := []byte{0x00, 0x20, 0x00, 0x00, 0x01, 0x00, 0x00, 0x10, 0xE6}
		if !bytes.Equal(out[:9], want) {
			t.Fatalf("header bytes: got %x, want %x", out[:9], want)
		}
	})
}

func TestStripInject_RoundTrip(t *testing.T) {
	srids := []int{0, 1, 4326, 900913, 4294967295}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		plain := pointWKB(order, 5, 45)
		for _, srid := range srids {
			injected, err := InjectSRID(plain, srid)
			if err != nil {
				t.Fatalf("InjectSRID(%d) failed: %v", srid, err)
			}
			if len(injected) != len(plain)+SRIDSize {
				t.Fatalf("injected length: got %d, want %d", len(injected), len(plain)+SRIDSize)
			}

			stripped, err := StripSRID(injected)
			if err != nil {
				t.Fatalf("StripSRID failed: %v", err)
			}
			if !bytes.Equal(stripped, plain) {
				t.Fatalf("strip(inject(b, %d)) != b: got %x, want %x", srid, stripped, plain)
			}

			// And the other direction: inject(strip(b), srid) == b when b
			// already embedded srid.
			back, err := InjectSRID(stripped, srid)
			if err != nil {
				t.Fatalf("re-inject failed: %v", err)
			}
			if !bytes.Equal(back, injected) {
				t.Fatalf("inject(strip(b), %d) != b", srid)
			}
		}
	}
}

func TestStripInject_NoOps(t *testing.T) {
	plain := pointWKB(binary.LittleEndian, 5, 45)

	out, err := StripSRID(plain)
	if err != nil {
		t.Fatalf("StripSRID failed: %v", err)
	}
	if !bytes.Equal(out, plain) {
		t.Fatal("StripSRID on plain buffer changed it")
	}

	injected, err := InjectSRID(plain, 4326)
	if err != nil {
		t.Fatal(err)
	}
	again, err := InjectSRID(injected, 31337)
	if err != nil {
		t.Fatalf("InjectSRID on extended buffer failed: %v", err)
	}
	if !bytes.Equal(again, injected) {
		t.Fatal("InjectSRID on extended buffer changed it")
	}
}

func TestHexVariants_MatchByteVariants(t *testing.T) {
	plain := pointWKB(binary.LittleEndian, 5, 45)
	plainHex := hex.EncodeToString(plain)

	injectedHex, err := InjectSRIDHex(plainHex, 4326)
	if err != nil {
		t.Fatalf("InjectSRIDHex failed: %v", err)
	}
	injected, err := InjectSRID(plain, 4326)
	if err != nil {
		t.Fatal(err)
	}
	if injectedHex != hex.EncodeToString(injected) {
		t.Fatalf("hex path diverges from byte path: %s vs %x", injectedHex, injected)
	}

	extended, srid, err := ExtractSRIDHex(injectedHex)
	if err != nil || !extended || srid != 4326 {
		t.Fatalf("ExtractSRIDHex: got (%t, %d, %v)", extended, srid, err)
	}

	strippedHex, err := StripSRIDHex(injectedHex)
	if err != nil {
		t.Fatalf("StripSRIDHex failed: %v", err)
	}
	if strippedHex != plainHex {
		t.Fatalf("StripSRIDHex: got %s, want %s", strippedHex, plainHex)
	}
}

func TestMalformedInputs(t *testing.T) {
	testCases := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"marker only", []byte{1}},
		{"truncated type word", []byte{1, 1, 0}},
		{"bad marker", []byte{2, 1, 0, 0, 0}},
		{"extended without srid bytes", []byte{1, 1, 0, 0, 0x20}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadHeader(tc.buf); !errors.Is(err, cursor.ErrMalformedInput) {
				t.Fatalf("expected ErrMalformedInput, got %v", err)
			}
		})
	}

	if _, _, err := ExtractSRIDHex("not hex"); !errors.Is(err, cursor.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for bad hex, got %v", err)
	}
}

func TestInjectSRID_RejectsUnrepresentable(t *testing.T) {
	plain := pointWKB(binary.LittleEndian, 5, 45)
	for _, srid := range []int{-1, -4326} {
		if _, err := InjectSRID(plain, srid); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("InjectSRID(%d): expected ErrInvalidArgument, got %v", srid, err)
		}
	}
}

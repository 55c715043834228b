package element

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/njordgeo/njord/pkg/cursor"
	"github.com/njordgeo/njord/pkg/ewkb"
)

const (
	// POINT(5 45), little-endian.
	pointWKBHex = "010100000000000000000014400000000000804640"
	// SRID=4326;POINT(5 45), little-endian.
	pointEWKBHex = "0101000020e610000000000000000014400000000000804640"
)

// rasterHex builds a minimal 1x1 raster payload as hex: little-endian
// header with SRID 4326 plus one 8BUI band.
func rasterHex() string {
	return "01" + "0000" + "0100" +
		strings.Repeat("0000000000000000", 6) +
		"e6100000" + "0100" + "0100" +
		"44" + "07"
}

func TestWKT_Construction(t *testing.T) {
	testCases := []struct {
		name     string
		data     string
		srid     int
		wantSRID int
		wantExt  bool
	}{
		{
			name:     "plain without srid",
			data:     "POINT(5 45)",
			srid:     UnknownSRID,
			wantSRID: UnknownSRID,
			wantExt:  false,
		},
		{
			name:     "plain with srid attribute",
			data:     "POINT(5 45)",
			srid:     4326,
			wantSRID: 4326,
			wantExt:  false,
		},
		{
			name:     "extended parses embedded srid",
			data:     "SRID=4326;POINT(5 45)",
			srid:     UnknownSRID,
			wantSRID: 4326,
			wantExt:  true,
		},
		{
			name:     "extended with explicit srid keeps it",
			data:     "SRID=4326;POINT(5 45)",
			srid:     4326,
			wantSRID: 4326,
			wantExt:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewWKT(tc.data, tc.srid)
			if err != nil {
				t.Fatalf("NewWKT failed: %v", err)
			}
			if e.SRID() != tc.wantSRID {
				t.Errorf("SRID: got %d, want %d", e.SRID(), tc.wantSRID)
			}
			if e.Extended() != tc.wantExt {
				t.Errorf("Extended: got %t, want %t", e.Extended(), tc.wantExt)
			}
			if e.Desc() != tc.data {
				t.Errorf("Desc: got %q, want %q", e.Desc(), tc.data)
			}
		})
	}
}

func TestWKT_MalformedExtended(t *testing.T) {
	for _, data := range []string{
		"SRID=4326 POINT(5 45)", // no separator
		"SRID=abc;POINT(5 45)",  // non-numeric srid
	} {
		if _, err := NewWKT(data, UnknownSRID); !errors.Is(err, ewkb.ErrInvalidArgument) {
			t.Errorf("NewWKT(%q): expected ErrInvalidArgument, got %v", data, err)
		}
	}
}

func TestWKT_Conversions(t *testing.T) {
	e, err := NewWKT("SRID=4326;POINT(5 45)", UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}

	plain := e.AsWKT()
	if plain.Extended() || plain.Desc() != "POINT(5 45)" || plain.SRID() != 4326 {
		t.Fatalf("AsWKT: got extended=%t desc=%q srid=%d", plain.Extended(), plain.Desc(), plain.SRID())
	}

	back := plain.AsEWKT()
	if !back.Extended() || back.Desc() != "SRID=4326;POINT(5 45)" {
		t.Fatalf("AsEWKT: got extended=%t desc=%q", back.Extended(), back.Desc())
	}
	if !Equal(e, back) {
		t.Error("extended->plain->extended round trip lost equality")
	}

	// No SRID attached: AsEWKT leaves the value plain.
	anon, err := NewWKT("POINT(5 45)", UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	if anon.AsEWKT().Extended() {
		t.Error("AsEWKT invented an SRID")
	}
}

func TestWKB_SRIDDerivedFromPayload(t *testing.T) {
	raw, err := hex.DecodeString(pointEWKBHex)
	if err != nil {
		t.Fatal(err)
	}

	e, err := NewWKB(raw, UnknownSRID)
	if err != nil {
		t.Fatalf("NewWKB failed: %v", err)
	}
	if !e.Extended() || e.SRID() != 4326 {
		t.Fatalf("got extended=%t srid=%d, want true/4326", e.Extended(), e.SRID())
	}
	if e.Desc() != pointEWKBHex {
		t.Errorf("Desc: got %q", e.Desc())
	}
}

func TestWKB_BytesAndHexAreEqual(t *testing.T) {
	raw, err := hex.DecodeString(pointEWKBHex)
	if err != nil {
		t.Fatal(err)
	}

	fromBytes, err := NewWKB(raw, UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	fromHex, err := NewWKBHex(pointEWKBHex, UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	fromUpper, err := NewWKBHex(strings.ToUpper(pointEWKBHex), UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(fromBytes, fromHex) {
		t.Error("byte-built and hex-built values are not equal")
	}
	if !Equal(fromBytes, fromUpper) {
		t.Error("uppercase hex did not normalize")
	}
	if Key(fromBytes) != Key(fromHex) {
		t.Error("identity keys differ")
	}
	if fromBytes.IsHex() || !fromHex.IsHex() {
		t.Error("representation flags wrong")
	}
}

func TestWKB_Conversions(t *testing.T) {
	extended, err := NewWKBHex(pointEWKBHex, UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}

	plain, err := extended.AsWKB()
	if err != nil {
		t.Fatalf("AsWKB failed: %v", err)
	}
	if plain.Extended() {
		t.Error("AsWKB left the extended flag set")
	}
	if plain.SRID() != 4326 {
		t.Errorf("AsWKB dropped the srid attribute: got %d", plain.SRID())
	}
	if plain.Desc() != pointWKBHex {
		t.Errorf("AsWKB desc: got %q, want %q", plain.Desc(), pointWKBHex)
	}
	if !plain.IsHex() {
		t.Error("AsWKB changed the payload representation")
	}

	back, err := plain.AsEWKB()
	if err != nil {
		t.Fatalf("AsEWKB failed: %v", err)
	}
	if back.Desc() != pointEWKBHex {
		t.Errorf("AsEWKB desc: got %q, want %q", back.Desc(), pointEWKBHex)
	}
	if !Equal(back, extended) {
		t.Error("extended->plain->extended round trip lost equality")
	}

	// AsEWKB with no SRID attribute is a no-op.
	anon, err := NewWKBHex(pointWKBHex, UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	same, err := anon.AsEWKB()
	if err != nil {
		t.Fatal(err)
	}
	if same.Extended() {
		t.Error("AsEWKB invented an SRID")
	}
}

func TestWKB_ConstructionFailsEagerly(t *testing.T) {
	if _, err := NewWKBHex("zz", UnknownSRID); !errors.Is(err, cursor.ErrMalformedInput) {
		t.Errorf("bad hex: expected ErrMalformedInput, got %v", err)
	}
	if _, err := NewWKB([]byte{1, 1, 0}, UnknownSRID); !errors.Is(err, cursor.ErrMalformedInput) {
		t.Errorf("short buffer: expected ErrMalformedInput, got %v", err)
	}
	if _, err := NewWKB([]byte{9, 1, 0, 0, 0}, UnknownSRID); !errors.Is(err, cursor.ErrMalformedInput) {
		t.Errorf("bad marker: expected ErrMalformedInput, got %v", err)
	}
}

func TestRaster_Construction(t *testing.T) {
	e, err := NewRasterHex(rasterHex())
	if err != nil {
		t.Fatalf("NewRasterHex failed: %v", err)
	}
	if e.SRID() != 4326 {
		t.Errorf("SRID: got %d, want 4326", e.SRID())
	}
	if !e.Extended() {
		t.Error("rasters are always extended")
	}
	if e.Desc() != rasterHex() {
		t.Error("Desc does not round trip the hex payload")
	}

	raw, err := hex.DecodeString(rasterHex())
	if err != nil {
		t.Fatal(err)
	}
	fromBytes, err := NewRaster(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(e, fromBytes) {
		t.Error("hex-built and byte-built rasters are not equal")
	}
}

func TestRaster_MalformedConstruction(t *testing.T) {
	t.Run("short buffer cites the counts", func(t *testing.T) {
		_, err := NewRaster(make([]byte, 40))
		if !errors.Is(err, cursor.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
		for _, want := range []string{"61", "40"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q does not mention %q", err, want)
			}
		}
	})

	t.Run("bad hex", func(t *testing.T) {
		if _, err := NewRasterHex("xy"); !errors.Is(err, cursor.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})

	t.Run("bad endianness marker", func(t *testing.T) {
		buf := make([]byte, 61)
		buf[0] = 7
		if _, err := NewRaster(buf); !errors.Is(err, cursor.ErrMalformedInput) {
			t.Fatalf("expected ErrMalformedInput, got %v", err)
		}
	})
}

func TestFromDesc_Reconstruction(t *testing.T) {
	wkt, err := NewWKT("SRID=4326;POINT(5 45)", UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	wktBack, err := WKTFromDesc(wkt.Desc())
	if err != nil || !Equal(wkt, wktBack) {
		t.Errorf("WKT reconstruction failed: %v", err)
	}

	wkb, err := NewWKBHex(pointEWKBHex, UnknownSRID)
	if err != nil {
		t.Fatal(err)
	}
	wkbBack, err := WKBFromDesc(wkb.Desc())
	if err != nil || !Equal(wkb, wkbBack) {
		t.Errorf("WKB reconstruction failed: %v", err)
	}

	rast, err := NewRasterHex(rasterHex())
	if err != nil {
		t.Fatal(err)
	}
	rastBack, err := RasterFromDesc(rast.Desc())
	if err != nil || !Equal(rast, rastBack) {
		t.Errorf("raster reconstruction failed: %v", err)
	}
}

func TestEqual_AcrossKindsAndNil(t *testing.T) {
	wkt, _ := NewWKT("POINT(5 45)", 4326)
	wkb, _ := NewWKBHex(pointWKBHex, 4326)

	if Equal(wkt, wkb) {
		t.Error("different descriptions compared equal")
	}
	if Equal(wkt, nil) || Equal(nil, wkb) {
		t.Error("nil compared equal to a value")
	}
	if !Equal(nil, nil) {
		t.Error("nil should equal nil")
	}
}

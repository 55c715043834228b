package ewkb

import (
	"fmt"
	"strconv"
	"strings"
)

// SRIDPrefix starts the extended form of a WKT string: "SRID=<int>;<wkt>".
const SRIDPrefix = "SRID="

// HasSRIDPrefix reports whether s is in the extended (EWKT) text form.
func HasSRIDPrefix(s string) bool {
	return strings.HasPrefix(s, SRIDPrefix)
}

// SplitEWKT splits "SRID=<int>;<wkt>" into its SRID and WKT body. A missing
// ';' separator or a non-numeric SRID fails with ErrInvalidArgument.
func SplitEWKT(s string) (srid int, wkt string, err error) {
	if !HasSRIDPrefix(s) {
		return -1, "", fmt.Errorf("ewkb: %q has no SRID= prefix: %w", s, ErrInvalidArgument)
	}
	rest := s[len(SRIDPrefix):]
	sep := strings.Index(rest, ";")
	if sep == -1 {
		return -1, "", fmt.Errorf("ewkb: no ';' separator in EWKT %q: %w", s, ErrInvalidArgument)
	}
	v, err := strconv.ParseInt(rest[:sep], 10, 32)
	if err != nil {
		return -1, "", fmt.Errorf("ewkb: non-numeric SRID in EWKT %q: %w", s, ErrInvalidArgument)
	}
	return int(v), strings.TrimLeft(rest[sep+1:], " "), nil
}

// AppendEWKT builds the extended text form from an SRID and a WKT body.
func AppendEWKT(srid int, wkt string) string {
	return fmt.Sprintf("%s%d;%s", SRIDPrefix, srid, wkt)
}

// Package storage is a pebble-backed vault of validated spatial payloads.
// Payloads are validated by constructing the corresponding element before
// anything is written, so the vault never holds bytes the codec cannot read
// back; stored values are canonical description strings keyed by ksuid.
package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/njordgeo/njord/pkg/element"
)

// Vault stores validated spatial payloads.
type Vault struct {
	db *pebble.DB
}

// Open opens (or creates) a vault at path.
func Open(path string) (*Vault, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &Vault{db: db}, nil
}

// CreateGeometry validates a WKB/EWKB payload and stores its canonical hex
// description under a fresh id.
func (v *Vault) CreateGeometry(data []byte) (*ksuid.KSUID, error) {
	e, err := element.NewWKB(data, element.UnknownSRID)
	if err != nil {
		return nil, err
	}
	return v.create(e)
}

// CreateGeometryHex is CreateGeometry for a hex-encoded payload.
func (v *Vault) CreateGeometryHex(s string) (*ksuid.KSUID, error) {
	e, err := element.NewWKBHex(s, element.UnknownSRID)
	if err != nil {
		return nil, err
	}
	return v.create(e)
}

// CreateRaster validates a raster payload and stores its canonical hex
// description under a fresh id.
func (v *Vault) CreateRaster(data []byte) (*ksuid.KSUID, error) {
	e, err := element.NewRaster(data)
	if err != nil {
		return nil, err
	}
	return v.create(e)
}

// CreateRasterHex is CreateRaster for a hex-encoded payload.
func (v *Vault) CreateRasterHex(s string) (*ksuid.KSUID, error) {
	e, err := element.NewRasterHex(s)
	if err != nil {
		return nil, err
	}
	return v.create(e)
}

func (v *Vault) create(e element.Element) (*ksuid.KSUID, error) {
	id := ksuid.New()
	if err := v.db.Set(id.Bytes(), []byte(e.Desc()), pebble.NoSync); err != nil {
		return nil, fmt.Errorf("storage: set: %w", err)
	}
	return &id, nil
}

// Read returns the canonical description stored under id.
func (v *Vault) Read(id *ksuid.KSUID) (string, error) {
	data, closer, err := v.db.Get(id.Bytes())
	if err != nil {
		return "", fmt.Errorf("storage: get %s: %w", id, err)
	}
	defer closer.Close()
	return string(data), nil
}

// Delete removes the payload stored under id.
func (v *Vault) Delete(id *ksuid.KSUID) error {
	return v.db.Delete(id.Bytes(), pebble.NoSync)
}

// Close closes the underlying store.
func (v *Vault) Close() error {
	return v.db.Close()
}

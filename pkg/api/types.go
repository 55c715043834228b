package api

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string
}

// PayloadRequest carries a spatial payload over the wire as lowercase hex
// text, the same textual transport the codec itself supports.
type PayloadRequest struct {
	// Data is the payload as hexadecimal text.
	Data string `json:"data"`
	// SRID is used by the inject operation.
	SRID *int `json:"srid,omitempty"`
	// IncludeValues asks the raster inspect operation for full sample grids.
	IncludeValues bool `json:"include_values,omitempty"`
}

// GeometryInfo describes a WKB/EWKB payload header.
type GeometryInfo struct {
	SRID      int    `json:"srid"`
	Extended  bool   `json:"extended"`
	ByteOrder string `json:"byte_order"`
	TypeCode  uint32 `json:"type_code"`
	Canonical string `json:"canonical"`
}

// GeometryPayload is the result of an SRID strip or inject operation.
type GeometryPayload struct {
	Data     string `json:"data"`
	SRID     int    `json:"srid"`
	Extended bool   `json:"extended"`
}

// RasterBandInfo summarizes one decoded band.
type RasterBandInfo struct {
	PixelType string      `json:"pixel_type"`
	Values    [][]float64 `json:"values,omitempty"`
}

// RasterInfo describes a raster payload.
type RasterInfo struct {
	ByteOrder string           `json:"byte_order"`
	Version   uint16           `json:"version"`
	NumBands  uint16           `json:"num_bands"`
	ScaleX    float64          `json:"scale_x"`
	ScaleY    float64          `json:"scale_y"`
	IPX       float64          `json:"ip_x"`
	IPY       float64          `json:"ip_y"`
	SkewX     float64          `json:"skew_x"`
	SkewY     float64          `json:"skew_y"`
	SRID      int32            `json:"srid"`
	Width     uint16           `json:"width"`
	Height    uint16           `json:"height"`
	Bands     []RasterBandInfo `json:"bands"`
}

// PayloadCreated is returned when a payload is stored in the vault.
type PayloadCreated struct {
	ID string `json:"id"`
}

// StoredPayload is a payload read back from the vault.
type StoredPayload struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

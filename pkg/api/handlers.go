package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/njordgeo/njord/pkg/element"
	"github.com/njordgeo/njord/pkg/ewkb"
	"github.com/njordgeo/njord/pkg/raster"
	"github.com/njordgeo/njord/pkg/storage"
)

// Server holds the API server state
type Server struct {
	vault   *storage.Vault
	decoder *raster.Decoder
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(vault *storage.Vault, decoder *raster.Decoder, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		vault:   vault,
		decoder: decoder,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleInspectGeometry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := readPayloadRequest(w, r)
	if !ok {
		s.metrics.RecordDecode("geometry_inspect", false, time.Since(start))
		return
	}

	e, err := element.NewWKBHex(req.Data, element.UnknownSRID)
	if err != nil {
		s.metrics.RecordDecode("geometry_inspect", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	hdr, err := ewkb.ReadHeader(e.Bytes())
	if err != nil {
		s.metrics.RecordDecode("geometry_inspect", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordDecode("geometry_inspect", true, time.Since(start))
	sendSuccess(w, GeometryInfo{
		SRID:      e.SRID(),
		Extended:  e.Extended(),
		ByteOrder: byteOrderName(hdr.Little),
		TypeCode:  hdr.Type &^ ewkb.SRIDFlag,
		Canonical: e.Desc(),
	})
}

func (s *Server) handleStripGeometry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := readPayloadRequest(w, r)
	if !ok {
		s.metrics.RecordDecode("geometry_strip", false, time.Since(start))
		return
	}

	e, err := element.NewWKBHex(req.Data, element.UnknownSRID)
	if err != nil {
		s.metrics.RecordDecode("geometry_strip", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := e.AsWKB()
	if err != nil {
		s.metrics.RecordDecode("geometry_strip", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordDecode("geometry_strip", true, time.Since(start))
	sendSuccess(w, GeometryPayload{Data: out.Desc(), SRID: out.SRID(), Extended: out.Extended()})
}

func (s *Server) handleInjectGeometry(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := readPayloadRequest(w, r)
	if !ok {
		s.metrics.RecordDecode("geometry_inject", false, time.Since(start))
		return
	}
	if req.SRID == nil {
		s.metrics.RecordDecode("geometry_inject", false, time.Since(start))
		sendError(w, "srid is required", http.StatusBadRequest)
		return
	}

	out, err := ewkb.InjectSRIDHex(req.Data, *req.SRID)
	if err != nil {
		s.metrics.RecordDecode("geometry_inject", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordDecode("geometry_inject", true, time.Since(start))
	sendSuccess(w, GeometryPayload{Data: out, SRID: *req.SRID, Extended: true})
}

func (s *Server) handleInspectRaster(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := readPayloadRequest(w, r)
	if !ok {
		s.metrics.RecordDecode("raster_inspect", false, time.Since(start))
		return
	}

	rast, err := s.decoder.DecodeHex(req.Data)
	if err != nil {
		s.metrics.RecordDecode("raster_inspect", false, time.Since(start))
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	info := RasterInfo{
		ByteOrder: byteOrderName(rast.Header.Little),
		Version:   rast.Header.Version,
		NumBands:  rast.Header.NumBands,
		ScaleX:    rast.Header.ScaleX,
		ScaleY:    rast.Header.ScaleY,
		IPX:       rast.Header.IPX,
		IPY:       rast.Header.IPY,
		SkewX:     rast.Header.SkewX,
		SkewY:     rast.Header.SkewY,
		SRID:      rast.Header.SRID,
		Width:     rast.Header.Width,
		Height:    rast.Header.Height,
	}
	for _, b := range rast.Bands {
		bi := RasterBandInfo{PixelType: b.PixelType.String()}
		if req.IncludeValues {
			bi.Values = b.Values
		}
		info.Bands = append(info.Bands, bi)
	}

	s.metrics.RecordDecode("raster_inspect", true, time.Since(start))
	sendSuccess(w, info)
}

func (s *Server) handleCreatePayload(w http.ResponseWriter, r *http.Request) {
	req, ok := readPayloadRequest(w, r)
	if !ok {
		s.metrics.RecordVaultOperation("create", false)
		return
	}

	kind := r.URL.Query().Get("kind")
	var (
		id  *ksuid.KSUID
		err error
	)
	switch kind {
	case "raster":
		id, err = s.vault.CreateRasterHex(req.Data)
	case "", "geometry":
		id, err = s.vault.CreateGeometryHex(req.Data)
	default:
		s.metrics.RecordVaultOperation("create", false)
		sendError(w, "kind must be geometry or raster", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.metrics.RecordVaultOperation("create", false)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.metrics.RecordVaultOperation("create", true)
	sendSuccess(w, PayloadCreated{ID: id.String()})
}

func (s *Server) handleGetPayload(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePayloadID(w, r)
	if !ok {
		s.metrics.RecordVaultOperation("read", false)
		return
	}

	data, err := s.vault.Read(&id)
	if err != nil {
		s.metrics.RecordVaultOperation("read", false)
		if errors.Is(err, pebble.ErrNotFound) {
			sendError(w, "payload not found", http.StatusNotFound)
			return
		}
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordVaultOperation("read", true)
	sendSuccess(w, StoredPayload{ID: id.String(), Data: data})
}

func (s *Server) handleDeletePayload(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePayloadID(w, r)
	if !ok {
		s.metrics.RecordVaultOperation("delete", false)
		return
	}

	if err := s.vault.Delete(&id); err != nil {
		s.metrics.RecordVaultOperation("delete", false)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordVaultOperation("delete", true)
	sendSuccess(w, map[string]string{"status": "deleted"})
}

func readPayloadRequest(w http.ResponseWriter, r *http.Request) (PayloadRequest, bool) {
	var req PayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	if req.Data == "" {
		sendError(w, "data is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func parsePayloadID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		sendError(w, "invalid payload id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func byteOrderName(little bool) string {
	if little {
		return "little"
	}
	return "big"
}

func sendSuccess(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

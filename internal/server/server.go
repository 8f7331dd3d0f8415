// Package server implements the HTTP render endpoint.
//
// The server exposes the same pipeline as the CLI: POST a JSON body with
// definitions, colors, and options to /api/render and receive the
// rendered artifact. Rendering is pure, so finished artifacts are cached
// under a hash of the request body plus engine and format.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pingrid/pingrid/pkg/cache"
	"github.com/pingrid/pingrid/pkg/errors"
	"github.com/pingrid/pingrid/pkg/palette"
	"github.com/pingrid/pingrid/pkg/pin"
	"github.com/pingrid/pingrid/pkg/pipeline"
	"github.com/pingrid/pingrid/pkg/table"
)

// maxBodyBytes caps render request bodies at 4 MiB. Pin definition
// files are tiny; anything larger is a mistake or abuse.
const maxBodyBytes = 4 << 20

// DefaultArtifactTTL is how long rendered artifacts stay cached.
const DefaultArtifactTTL = time.Hour

// Server handles render requests.
type Server struct {
	logger *log.Logger
	cache  cache.Cache
	ttl    time.Duration
	mux    *chi.Mux
}

// New creates a server with the given logger and artifact cache.
// A ttl of zero uses [DefaultArtifactTTL].
func New(logger *log.Logger, c cache.Cache, ttl time.Duration) *Server {
	if ttl <= 0 {
		ttl = DefaultArtifactTTL
	}
	s := &Server{logger: logger, cache: c, ttl: ttl}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	s.mux = r

	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// renderRequest is the POST /api/render body: the two input documents
// plus optional geometry overrides, mirroring the CLI inputs.
type renderRequest struct {
	Definitions pin.Document     `json:"definitions"`
	Colors      palette.Document `json:"colors"`
	Options     *renderOptions   `json:"options,omitempty"`
}

// renderOptions overrides individual geometry defaults. Pointer fields
// distinguish "not set" from an explicit zero.
type renderOptions struct {
	PinNameColumnWidth      *float64 `json:"pin_name_column_width,omitempty"`
	UsageColumnWidth        *float64 `json:"usage_column_width,omitempty"`
	RowHeight               *float64 `json:"row_height,omitempty"`
	ColumnSpacing           *float64 `json:"column_spacing,omitempty"`
	SpanPinNameWithoutUsage *bool    `json:"span_pin_name_without_usage,omitempty"`
	Scale                   *float64 `json:"scale,omitempty"`
}

// tableOptions merges overrides onto the defaults.
func (o *renderOptions) tableOptions() (table.Options, float64) {
	opts := table.DefaultOptions()
	scale := 0.0
	if o == nil {
		return opts, scale
	}
	if o.PinNameColumnWidth != nil {
		opts.PinNameColumnWidth = *o.PinNameColumnWidth
	}
	if o.UsageColumnWidth != nil {
		opts.UsageColumnWidth = *o.UsageColumnWidth
	}
	if o.RowHeight != nil {
		opts.RowHeight = *o.RowHeight
	}
	if o.ColumnSpacing != nil {
		opts.ColumnSpacing = *o.ColumnSpacing
	}
	if o.SpanPinNameWithoutUsage != nil {
		opts.SpanPinNameWithoutUsage = *o.SpanPinNameWithoutUsage
	}
	if o.Scale != nil {
		scale = *o.Scale
	}
	return opts, scale
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	renderID := uuid.NewString()
	w.Header().Set("X-Render-Id", renderID)
	logger := s.logger.With("render_id", renderID)

	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = pipeline.EngineTable
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if err := pipeline.ValidateFormat(engine, format); err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidPin, err, "read request body"))
		return
	}

	key := "render:" + cache.Hash(append(body, []byte("|"+engine+"|"+format)...))
	if data, ok, cacheErr := s.cache.Get(ctx, key); cacheErr == nil && ok {
		logger.Debug("Serving cached artifact", "format", format)
		w.Header().Set("Content-Type", pipeline.ContentType(format))
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(data)
		return
	}

	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidPin, err, "parse request body"))
		return
	}

	opts, scale := req.Options.tableOptions()
	art, err := pipeline.Run(ctx, pipeline.Request{
		Definitions: &req.Definitions,
		Colors:      &req.Colors,
		Options:     opts,
		Engine:      engine,
		Format:      format,
		Scale:       scale,
	})
	if err != nil {
		logger.Warn("Render failed", "err", err)
		writeError(w, err)
		return
	}

	if err := s.cache.Set(ctx, key, art.Data, s.ttl); err != nil {
		logger.Warn("Cache write failed", "err", err)
	}

	logger.Info("Rendered pin table", "engine", engine, "format", format, "bytes", len(art.Data))
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(art.Data)
}

// writeError maps structured error codes onto HTTP statuses and writes
// a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidPin, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEngine:
		status = http.StatusBadRequest
	case errors.ErrCodeGridFull, errors.ErrCodeUnknownUsageType:
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

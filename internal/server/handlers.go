package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/internal/refresh"
	"github.com/inkframe/inkframe/plugin"
)

// maxBodyBytes limits JSON request bodies.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		inkframe.Logger().Warn("encode response", "error", err)
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeFailure(w http.ResponseWriter, msg string, err error) {
	inkframe.Logger().Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: msg, Message: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// etagMatches reports whether an If-None-Match header names tag.
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || strings.Trim(candidate, `"`) == tag {
			return true
		}
	}
	return false
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	f, err := s.refresh.Frame(r.Context())
	if err != nil {
		writeFailure(w, "failed to generate screen", err)
		return
	}

	h := w.Header()
	h.Set("ETag", strconv.Quote(f.ETag))
	h.Set("Cache-Control", "no-cache")
	h.Set("Last-Modified", f.RenderedAt.UTC().Format(http.TimeFormat))
	h.Set("X-Inkframe-Layout", f.Layout)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatches(inm, f.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Type", f.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(f.Image)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(f.Image)
	}
}

type refreshResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Layout    string    `json:"layout"`
	ETag      string    `json:"etag"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	f, err := s.refresh.Refresh(r.Context())
	if err != nil {
		writeFailure(w, "failed to refresh screen", err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Success:   true,
		Message:   "Screen refreshed",
		Layout:    f.Layout,
		ETag:      f.ETag,
		Timestamp: s.clock(),
	})
}

type layoutsResponse struct {
	Current   string   `json:"current"`
	Available []string `json:"available"`
}

type statusResponse struct {
	Plugins   []plugin.Info   `json:"plugins"`
	Refresh   refresh.Status  `json:"refresh"`
	Layout    layoutsResponse `json:"layout"`
	Timestamp time.Time       `json:"timestamp"`
}

func (s *Server) layouts() layoutsResponse {
	return layoutsResponse{
		Current:   s.refresh.CurrentLayout(),
		Available: s.engine.Layouts(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Plugins:   s.plugins.Status(),
		Refresh:   s.refresh.Status(),
		Layout:    s.layouts(),
		Timestamp: s.clock(),
	})
}

func (s *Server) handleLayouts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.layouts())
}

func (s *Server) handleData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.plugins.Cached())
}

func (s *Server) handlePluginData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "plugin")
	res, err := s.plugins.Fetch(r.Context(), name)
	switch {
	case errors.Is(err, plugin.ErrUnknownPlugin):
		writeError(w, http.StatusNotFound, "plugin not found")
		return
	case err != nil:
		writeFailure(w, "failed to fetch plugin data", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type layoutRequest struct {
	Layout string `json:"layout"`
}

type layoutResponse struct {
	Success bool   `json:"success"`
	Layout  string `json:"layout"`
	Message string `json:"message"`
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Layout == "" {
		writeError(w, http.StatusBadRequest, "layout name required")
		return
	}
	if !s.engine.Registry().Has(req.Layout) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown layout %q", req.Layout))
		return
	}

	s.refresh.SetLayout(req.Layout)
	if _, err := s.refresh.Refresh(r.Context()); err != nil {
		writeFailure(w, "failed to change layout", err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		Success: true,
		Layout:  req.Layout,
		Message: "Layout changed to " + req.Layout,
	})
}

// rotationRequest carries intervals in milliseconds.
type rotationRequest struct {
	Enabled         *bool    `json:"enabled"`
	Interval        *int64   `json:"interval"`
	Layouts         []string `json:"layouts"`
	RefreshInterval *int64   `json:"refresh_interval"`
}

type rotationResponse struct {
	Success  bool           `json:"success"`
	Rotation refresh.Status `json:"rotation"`
}

func millis(v *int64) *time.Duration {
	if v == nil {
		return nil
	}
	d := time.Duration(*v) * time.Millisecond
	return &d
}

func (s *Server) handleRotation(w http.ResponseWriter, r *http.Request) {
	var req rotationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, name := range req.Layouts {
		if !s.engine.Registry().Has(name) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown layout %q", name))
			return
		}
	}
	for _, v := range []*int64{req.Interval, req.RefreshInterval} {
		if v != nil && *v <= 0 {
			writeError(w, http.StatusBadRequest, "intervals must be positive")
			return
		}
	}

	status := s.refresh.UpdateRotation(refresh.RotationUpdate{
		Enabled:         req.Enabled,
		Interval:        millis(req.Interval),
		Layouts:         req.Layouts,
		RefreshInterval: millis(req.RefreshInterval),
	})
	writeJSON(w, http.StatusOK, rotationResponse{Success: true, Rotation: status})
}

type toggleRequest struct {
	Enabled *bool `json:"enabled"`
}

type toggleResponse struct {
	Success bool   `json:"success"`
	Plugin  string `json:"plugin"`
	Enabled bool   `json:"enabled"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req toggleRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}
	if err := s.plugins.SetEnabled(name, *req.Enabled); err != nil {
		writeError(w, http.StatusNotFound, "plugin not found")
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Success: true, Plugin: name, Enabled: *req.Enabled})
}

type pluginRefreshResponse struct {
	Success bool           `json:"success"`
	Plugin  string         `json:"plugin"`
	Data    *plugin.Result `json:"data"`
}

func (s *Server) handlePluginRefresh(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.plugins.Refresh(r.Context(), name)
	switch {
	case errors.Is(err, plugin.ErrUnknownPlugin):
		writeError(w, http.StatusNotFound, "plugin not found")
		return
	case err != nil:
		writeFailure(w, "failed to refresh plugin", err)
		return
	}
	writeJSON(w, http.StatusOK, pluginRefreshResponse{Success: true, Plugin: name, Data: res})
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: s.clock()})
}

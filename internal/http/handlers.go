package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/export"
	"github.com/joefancyai/localizedKWvolume/internal/locations"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/models"
	"github.com/joefancyai/localizedKWvolume/internal/volumes"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	locationService locations.Service
	volumeService   volumes.Service
	logger          logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	locationService locations.Service,
	volumeService volumes.Service,
	logger logger.Service,
) *Handler {
	return &Handler{
		locationService: locationService,
		volumeService:   volumeService,
		logger:          logger,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// LocationsResponse represents the location listing response
type LocationsResponse struct {
	Locations []models.Location     `json:"locations"`
	Count     int                   `json:"count"`
	Status    models.LocationStatus `json:"status"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// GetLocations handles GET /api/locations
// Query params: q (substring filter), limit, force_refresh
func (h *Handler) GetLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	forceRefresh, _ := strconv.ParseBool(query.Get("force_refresh"))
	term := query.Get("q")
	limit, _ := strconv.Atoi(query.Get("limit"))

	operation := logger.OpLocationLoad
	if forceRefresh {
		operation = logger.OpLocationRefresh
	}

	h.logger.LogInfo(ctx, operation, "Location listing requested", map[string]interface{}{
		"q":             term,
		"limit":         limit,
		"force_refresh": forceRefresh,
	})

	var locs []models.Location
	var status models.LocationStatus

	if forceRefresh {
		locs, status = h.locationService.GetLocations(ctx, true)
	} else {
		locs, status = h.locationService.SearchLocations(ctx, term, limit)
	}

	response := LocationsResponse{
		Locations: locs,
		Count:     len(locs),
		Status:    status,
	}

	// Unavailable means fetch failed with nothing cached; everything else
	// is served, possibly degraded
	statusCode := http.StatusOK
	if status.Source == models.SourceUnavailable {
		statusCode = http.StatusBadGateway
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(ctx, logger.OpLocationLoad, "", "Failed to encode locations response", err, models.LogSeverityLow, nil)
	}
}

// GetVolumes handles POST /api/volumes
func (h *Handler) GetVolumes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, ok := h.runVolumeLookup(w, r)
	if !ok {
		return
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, report); err != nil {
		h.logger.LogError(ctx, logger.OpVolumeLookup, report.Location, "Failed to encode volume response", err, models.LogSeverityLow, nil)
	}
}

// ExportVolumesCSV handles POST /api/volumes/csv
func (h *Handler) ExportVolumesCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, ok := h.runVolumeLookup(w, r)
	if !ok {
		return
	}

	// Render fully before writing headers so an empty report can still
	// produce a JSON error response
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report); err != nil {
		if errors.Is(err, models.ErrNoResults) {
			h.writeErrorResponse(w, r, http.StatusNotFound, "no results", "no keyword volume results to export")
			return
		}
		h.logger.LogError(ctx, logger.OpCSVExport, report.Location, "CSV rendering failed", err, models.LogSeverityMedium, nil)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "export failed", err.Error())
		return
	}

	logEvent := logger.GetLogEvent(ctx)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="keyword_volumes.csv"`)
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.LogError(ctx, logger.OpCSVExport, report.Location, "Failed to write CSV response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogSuccess(ctx, logger.OpCSVExport, report.Location, "Exported volume report as CSV", map[string]interface{}{
		"rows": len(report.Results),
	})
}

// runVolumeLookup decodes and validates the request body, performs the
// lookup, and writes the error response itself when something fails
func (h *Handler) runVolumeLookup(w http.ResponseWriter, r *http.Request) (*models.VolumeReport, bool) {
	ctx := r.Context()

	var request models.VolumeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.LogError(ctx, logger.OpVolumeLookup, "", "Invalid request body", err, models.LogSeverityLow, nil)
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	h.logger.LogInfo(ctx, logger.OpVolumeLookup, fmt.Sprintf("Volume lookup requested for %d keywords", len(request.Keywords)), map[string]interface{}{
		"keywords_count": len(request.Keywords),
		"location_code":  request.LocationCode,
		"language_code":  request.LanguageCode,
	})

	report, err := h.volumeService.GetVolumes(ctx, request)
	if err != nil {
		h.logger.LogError(ctx, logger.OpVolumeLookup, request.LocationName, "Volume lookup failed", err, models.LogSeverityMedium, nil)

		statusCode, label := h.classifyVolumeError(err)
		h.writeErrorResponse(w, r, statusCode, label, err.Error())
		return nil, false
	}

	return report, true
}

// classifyVolumeError maps service errors to HTTP status codes.
// Provider errors are relayed verbatim with 502.
func (h *Handler) classifyVolumeError(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrNoKeywords):
		return http.StatusBadRequest, "no keywords"
	case errors.Is(err, models.ErrInvalidLocation):
		return http.StatusBadRequest, "invalid location"
	case errors.Is(err, models.ErrProviderUnreachable):
		return http.StatusBadGateway, "provider unreachable"
	default:
		if _, ok := models.AsAPIError(err); ok {
			return http.StatusBadGateway, "provider error"
		}
		return http.StatusInternalServerError, "volume lookup failed"
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}

	if err := h.writeJSONResponse(w, r, http.StatusOK, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed successfully", nil)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

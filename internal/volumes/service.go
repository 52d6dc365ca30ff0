package volumes

import (
	"context"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/fetcher"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/models"
	"github.com/joefancyai/localizedKWvolume/internal/parser"
)

// defaultLanguageCode is used when the caller leaves the language blank
const defaultLanguageCode = "en"

// service implements the Service interface
type service struct {
	parser  parser.Service
	fetcher fetcher.VolumeService
	logger  logger.Service
}

// NewService creates a new volume lookup service
func NewService(p parser.Service, f fetcher.VolumeService, log logger.Service) Service {
	return &service{
		parser:  p,
		fetcher: f,
		logger:  log,
	}
}

// GetVolumes runs one batched volume lookup. Keywords are trimmed and blanks
// discarded before the request; fetch errors propagate to the caller. A
// report with zero records and a nil error is the no-results condition.
func (s *service) GetVolumes(ctx context.Context, req models.VolumeRequest) (*models.VolumeReport, error) {
	start := time.Now()

	keywords := s.parser.Normalize(req.Keywords)
	if len(keywords) == 0 {
		return nil, models.ErrNoKeywords
	}

	if req.LocationCode <= 0 {
		return nil, models.ErrInvalidLocation
	}

	languageCode := req.LanguageCode
	if languageCode == "" {
		languageCode = defaultLanguageCode
	}

	s.logger.LogInfo(ctx, logger.OpVolumeLookup, "Starting keyword volume lookup", map[string]interface{}{
		"keywords_count": len(keywords),
		"language_code":  languageCode,
		"location_code":  req.LocationCode,
	})

	records, warnings, err := s.fetcher.FetchVolumes(ctx, keywords, languageCode, req.LocationCode)
	if err != nil {
		s.logger.LogError(ctx, logger.OpVolumeFetch, req.LocationName, "Volume fetch failed", err, models.LogSeverityMedium, map[string]interface{}{
			"keywords_count": len(keywords),
			"duration_ms":    time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	// Location name comes from the caller's selection, not the response
	for i := range records {
		records[i].LocationName = req.LocationName
	}

	for _, w := range warnings {
		s.logger.LogError(ctx, logger.OpVolumeFetch, req.LocationName, "Provider task did not succeed", models.ErrNoResults, models.LogSeverityLow, map[string]interface{}{
			"status_code":    w.StatusCode,
			"status_message": w.Message,
		})
	}

	report := &models.VolumeReport{
		Location:  req.LocationName,
		Results:   records,
		Warnings:  warnings,
		Timestamp: time.Now().UTC(),
	}

	s.logger.LogSuccess(ctx, logger.OpVolumeLookup, req.LocationName, "Completed keyword volume lookup", map[string]interface{}{
		"results":     len(records),
		"warnings":    len(warnings),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return report, nil
}

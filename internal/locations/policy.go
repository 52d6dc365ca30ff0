package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/cache"
	"github.com/joefancyai/localizedKWvolume/internal/fetcher"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/models"
)

// defaultSearchLimit caps search results; the full list holds tens of
// thousands of entries
const defaultSearchLimit = 50

// cachedAtLayout formats cache timestamps in status messages
const cachedAtLayout = "2006-01-02 15:04:05"

// service implements Service. It owns all cache read/write orchestration;
// the store is a passive holder.
type service struct {
	store  cache.Store
	fetch  fetcher.LocationService
	logger logger.Service
	window time.Duration
	now    func() time.Time
}

// NewService creates a new location service with the given freshness window
func NewService(store cache.Store, fetch fetcher.LocationService, log logger.Service, window time.Duration) Service {
	return &service{
		store:  store,
		fetch:  fetch,
		logger: log,
		window: window,
		now:    time.Now,
	}
}

// GetLocations returns the provider location list, preferring a fresh cache,
// then a live fetch, then any stale cache. An empty list comes back only when
// the fetch fails and no cache has ever been written.
func (s *service) GetLocations(ctx context.Context, forceRefresh bool) ([]models.Location, models.LocationStatus) {
	if !forceRefresh {
		if rec, err := s.store.Read(ctx); err == nil && rec.IsFresh(s.now(), s.window) {
			s.logger.LogSuccess(ctx, logger.OpCacheHit, "", "Serving locations from cache", map[string]interface{}{
				"count":      len(rec.Locations),
				"fetched_at": rec.FetchedAt,
			})

			return rec.Locations, models.LocationStatus{
				Source:   models.SourceCache,
				Message:  fmt.Sprintf("served from cache, cached at %s", rec.FetchedAt.Format(cachedAtLayout)),
				CachedAt: &rec.FetchedAt,
				Count:    len(rec.Locations),
			}
		}

		s.logger.LogInfo(ctx, logger.OpCacheMiss, "Location cache absent or expired, fetching live", nil)
	}

	fetched, err := s.fetch.FetchLocations(ctx)
	if err == nil && len(fetched) > 0 {
		return fetched, s.persist(ctx, fetched)
	}

	if err != nil {
		s.logger.LogError(ctx, logger.OpLocationFetch, "", "Failed to fetch locations from provider", err, models.LogSeverityMedium, nil)
	} else {
		s.logger.LogError(ctx, logger.OpLocationFetch, "", "Provider returned an empty location list", models.ErrNoResults, models.LogSeverityMedium, nil)
	}

	return s.fallback(ctx)
}

// SearchLocations filters the location list by case-insensitive substring
// match on the name, capped at limit (default 50)
func (s *service) SearchLocations(ctx context.Context, term string, limit int) ([]models.Location, models.LocationStatus) {
	all, status := s.GetLocations(ctx, false)

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	term = strings.ToLower(strings.TrimSpace(term))

	matches := make([]models.Location, 0, limit)
	for _, loc := range all {
		if term != "" && !strings.Contains(strings.ToLower(loc.Name), term) {
			continue
		}
		matches = append(matches, loc)
		if len(matches) == limit {
			break
		}
	}

	s.logger.LogInfo(ctx, logger.OpLocationSearch, "Location search completed", map[string]interface{}{
		"term":    term,
		"matches": len(matches),
	})

	return matches, status
}

// persist writes a freshly fetched list to the store. A failed write degrades
// the status message but the fresh data is still returned.
func (s *service) persist(ctx context.Context, fetched []models.Location) models.LocationStatus {
	fetchedAt := s.now()
	rec := &models.LocationCache{
		Locations: fetched,
		FetchedAt: fetchedAt,
	}

	if err := s.store.Write(ctx, rec); err != nil {
		s.logger.LogError(ctx, logger.OpLocationFetch, "", "Failed to persist location cache", err, models.LogSeverityLow, map[string]interface{}{
			"count": len(fetched),
		})

		return models.LocationStatus{
			Source:   models.SourceFresh,
			Message:  fmt.Sprintf("fresh fetch, %d records (cache save failed)", len(fetched)),
			CachedAt: &fetchedAt,
			Count:    len(fetched),
		}
	}

	s.logger.LogSuccess(ctx, logger.OpLocationFetch, "", "Fetched and cached location list", map[string]interface{}{
		"count": len(fetched),
	})

	return models.LocationStatus{
		Source:   models.SourceFresh,
		Message:  fmt.Sprintf("fresh fetch, %d records", len(fetched)),
		CachedAt: &fetchedAt,
		Count:    len(fetched),
	}
}

// fallback serves whatever cache exists, however old, after a failed fetch
func (s *service) fallback(ctx context.Context) ([]models.Location, models.LocationStatus) {
	rec, err := s.store.Read(ctx)
	if err != nil || len(rec.Locations) == 0 {
		return []models.Location{}, models.LocationStatus{
			Source:  models.SourceUnavailable,
			Message: "location data unavailable: provider fetch failed and no cache exists",
		}
	}

	s.logger.LogInfo(ctx, logger.OpCacheFallback, "Serving stale location cache after failed fetch", map[string]interface{}{
		"count":      len(rec.Locations),
		"fetched_at": rec.FetchedAt,
	})

	return rec.Locations, models.LocationStatus{
		Source:   models.SourceStale,
		Message:  fmt.Sprintf("degraded: serving stale cache from %s", rec.FetchedAt.Format(cachedAtLayout)),
		CachedAt: &rec.FetchedAt,
		Count:    len(rec.Locations),
	}
}

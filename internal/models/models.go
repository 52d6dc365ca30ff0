package models

import (
	"fmt"
	"time"
)

// Location represents a single provider location entry.
// Codes are unique within one provider dataset; names are not
// (the same city name can appear in different regions).
type Location struct {
	Name    string `json:"name"`
	Code    int    `json:"code"`
	Display string `json:"display"`
}

// NewLocation builds a Location with its derived display string
func NewLocation(name string, code int) Location {
	return Location{
		Name:    name,
		Code:    code,
		Display: fmt.Sprintf("%s (code %d)", name, code),
	}
}

// LocationCache holds the full provider location list together with the
// time it was fetched. Replaced as a whole on every successful fetch.
type LocationCache struct {
	Locations []Location `json:"locations"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// IsFresh reports whether the cache is younger than the freshness window.
// A cache exactly as old as the window counts as stale.
func (c *LocationCache) IsFresh(now time.Time, window time.Duration) bool {
	return now.Sub(c.FetchedAt) < window
}

// LocationSource identifies where a returned location list came from
type LocationSource string

const (
	// SourceCache - served from a cache younger than the freshness window
	SourceCache LocationSource = "cache"
	// SourceFresh - fetched live from the provider
	SourceFresh LocationSource = "fresh"
	// SourceStale - live fetch failed, served from an expired cache
	SourceStale LocationSource = "stale"
	// SourceUnavailable - live fetch failed and no cache exists
	SourceUnavailable LocationSource = "unavailable"
)

// LocationStatus describes the outcome of a location load for the caller
type LocationStatus struct {
	Source   LocationSource `json:"source"`
	Message  string         `json:"message"`
	CachedAt *time.Time     `json:"cached_at,omitempty"`
	Count    int            `json:"count"`
}

// KeywordVolume is one row of search-volume metrics for a keyword.
// Built fresh per query response; never persisted.
type KeywordVolume struct {
	Keyword      string `json:"keyword"`
	SearchVolume int    `json:"search_volume"`
	Competition  string `json:"competition"`
	CPC          string `json:"cpc"`
	LocationName string `json:"location"`
}

// TaskWarning records a provider task that did not succeed.
// Non-fatal: remaining tasks still contribute results.
type TaskWarning struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// VolumeRequest carries the user-selected parameters for a volume lookup
type VolumeRequest struct {
	Keywords     []string `json:"keywords"`
	LanguageCode string   `json:"language_code"`
	LocationCode int      `json:"location_code"`
	LocationName string   `json:"location_name"`
}

// VolumeReport is the normalized result of one volume lookup
type VolumeReport struct {
	Location  string          `json:"location"`
	Results   []KeywordVolume `json:"results"`
	Warnings  []TaskWarning   `json:"warnings,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Empty reports the no-results condition (well-formed response, zero usable records)
func (r *VolumeReport) Empty() bool {
	return len(r.Results) == 0
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

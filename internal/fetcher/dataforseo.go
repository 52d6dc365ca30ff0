package fetcher

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

const (
	locationsPath    = "/v3/app_data/google/locations"
	searchVolumePath = "/v3/keywords_data/google_ads/search_volume/live"

	// taskStatusOK is the provider's per-task success code
	taskStatusOK = 20000

	// maxResponseSize caps provider responses; the full location list is
	// a few MB of JSON
	maxResponseSize = 64 * 1024 * 1024
)

// Client talks to a DataForSEO-compatible provider and implements both
// LocationService and VolumeService
type Client struct {
	client     *http.Client
	baseURL    string
	authHeader string
}

// NewClient creates a provider client with Basic auth credentials
func NewClient(login, password, baseURL string, timeout time.Duration) (*Client, error) {
	if login == "" || password == "" {
		return nil, models.ErrMissingCredentials
	}

	auth := base64.StdEncoding.EncodeToString([]byte(login + ":" + password))

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		authHeader: "Basic " + auth,
	}, nil
}

// locationsResponse mirrors the provider's location-listing shape:
// {tasks: [{result: [{location_name, location_code, ...}]}]}
type locationsResponse struct {
	Tasks []struct {
		Result []struct {
			LocationName string `json:"location_name"`
			LocationCode int    `json:"location_code"`
		} `json:"result"`
	} `json:"tasks"`
}

// FetchLocations retrieves the full provider location list, flattening all
// result entries across all tasks in order. Entries missing a name or code
// are skipped rather than failing the whole fetch.
func (c *Client) FetchLocations(ctx context.Context) ([]models.Location, error) {
	body, err := c.do(ctx, http.MethodGet, locationsPath, nil)
	if err != nil {
		return nil, err
	}

	var resp locationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, models.NewAPIError(http.StatusOK, fmt.Sprintf("malformed locations payload: %v", err))
	}

	var locations []models.Location
	for _, task := range resp.Tasks {
		for _, result := range task.Result {
			if result.LocationName == "" || result.LocationCode == 0 {
				continue
			}
			locations = append(locations, models.NewLocation(result.LocationName, result.LocationCode))
		}
	}

	return locations, nil
}

// volumePayload is the single-task request body for a volume lookup
type volumePayload struct {
	Keywords     []string `json:"keywords"`
	LanguageCode string   `json:"language_code"`
	LocationCode int      `json:"location_code"`
}

// volumesResponse mirrors the provider's volume shape. Result entries carry
// the keyword data directly, not nested under an "items" key.
type volumesResponse struct {
	Tasks []struct {
		StatusCode    int    `json:"status_code"`
		StatusMessage string `json:"status_message"`
		Result        []struct {
			Keyword      string  `json:"keyword"`
			SearchVolume int     `json:"search_volume"`
			Competition  string  `json:"competition"`
			CPC          float64 `json:"cpc"`
		} `json:"result"`
	} `json:"tasks"`
}

// FetchVolumes sends one batched request for all keywords and normalizes the
// per-keyword records. Tasks without the success status code contribute
// warnings instead of records; zero successful tasks is not an error here.
func (c *Client) FetchVolumes(ctx context.Context, keywords []string, languageCode string, locationCode int) ([]models.KeywordVolume, []models.TaskWarning, error) {
	payload := []volumePayload{{
		Keywords:     keywords,
		LanguageCode: languageCode,
		LocationCode: locationCode,
	}}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode volume request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, searchVolumePath, reqBody)
	if err != nil {
		return nil, nil, err
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, models.NewAPIError(http.StatusOK, fmt.Sprintf("malformed volume payload: %v", err))
	}

	var records []models.KeywordVolume
	var warnings []models.TaskWarning

	for _, task := range resp.Tasks {
		if task.StatusCode != taskStatusOK {
			warnings = append(warnings, models.TaskWarning{
				StatusCode: task.StatusCode,
				Message:    task.StatusMessage,
			})
			continue
		}

		for _, item := range task.Result {
			if item.Keyword == "" {
				continue
			}

			competition := item.Competition
			if competition == "" {
				competition = "N/A"
			}

			cpc := "N/A"
			if item.CPC != 0 {
				cpc = fmt.Sprintf("$%.2f", item.CPC)
			}

			records = append(records, models.KeywordVolume{
				Keyword:      item.Keyword,
				SearchVolume: item.SearchVolume,
				Competition:  competition,
				CPC:          cpc,
			})
		}
	}

	return records, warnings, nil
}

// do issues one authenticated request and returns the response body.
// Network failures wrap ErrProviderUnreachable; non-2xx responses become an
// APIError carrying the status code and body verbatim.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", models.ErrProviderUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewAPIError(resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

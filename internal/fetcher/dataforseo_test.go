package fetcher

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	client, err := NewClient("login", "password", server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{"no login", "", "password"},
		{"no password", "login", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.login, tt.password, "", 5*time.Second)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, models.ErrMissingCredentials)
		})
	}
}

func TestClient_FetchLocations_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3/app_data/google/locations", r.URL.Path)

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("login:password"))
		assert.Equal(t, expectedAuth, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"tasks": [
				{"result": [
					{"location_name": "United States", "location_code": 2840},
					{"location_name": "New York,New York,United States", "location_code": 1023191}
				]},
				{"result": [
					{"location_name": "France", "location_code": 2250}
				]}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	locations, err := client.FetchLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 3)

	// Entries across all tasks flattened in order
	assert.Equal(t, "United States", locations[0].Name)
	assert.Equal(t, 2840, locations[0].Code)
	assert.Equal(t, "United States (code 2840)", locations[0].Display)
	assert.Equal(t, 1023191, locations[1].Code)
	assert.Equal(t, "France", locations[2].Name)
}

func TestClient_FetchLocations_Idempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tasks":[{"result":[
			{"location_name":"United States","location_code":2840},
			{"location_name":"France","location_code":2250}
		]}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	first, err := client.FetchLocations(ctx)
	require.NoError(t, err)
	second, err := client.FetchLocations(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClient_FetchLocations_SkipsMalformedEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tasks":[{"result":[
			{"location_name":"","location_code":1111},
			{"location_name":"No Code"},
			{"location_name":"United States","location_code":2840}
		]}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	locations, err := client.FetchLocations(context.Background())
	require.NoError(t, err)

	// Malformed entries are skipped, not fatal
	require.Len(t, locations, 1)
	assert.Equal(t, 2840, locations[0].Code)
}

func TestClient_FetchLocations_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid credentials"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	locations, err := client.FetchLocations(context.Background())
	assert.Nil(t, locations)
	require.Error(t, err)

	apiErr, ok := models.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid credentials")
}

func TestClient_FetchLocations_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed server: connection refused

	client := newTestClient(t, server)

	locations, err := client.FetchLocations(context.Background())
	assert.Nil(t, locations)
	assert.ErrorIs(t, err, models.ErrProviderUnreachable)
}

func TestClient_FetchVolumes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/keywords_data/google_ads/search_volume/live", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tasks":[{
			"status_code": 20000,
			"status_message": "Ok.",
			"result": [
				{"keyword":"running shoes","search_volume":1000,"cpc":1.25},
				{"keyword":"trail shoes","search_volume":0}
			]
		}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	records, warnings, err := client.FetchVolumes(context.Background(), []string{"running shoes", "trail shoes"}, "en", 2840)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)

	assert.Equal(t, "running shoes", records[0].Keyword)
	assert.Equal(t, 1000, records[0].SearchVolume)
	assert.Equal(t, "$1.25", records[0].CPC)
	assert.Equal(t, "N/A", records[0].Competition)

	assert.Equal(t, "trail shoes", records[1].Keyword)
	assert.Equal(t, 0, records[1].SearchVolume)
	assert.Equal(t, "N/A", records[1].CPC)
}

func TestClient_FetchVolumes_RequestPayload(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tasks":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, _, err := client.FetchVolumes(context.Background(), []string{"shoes"}, "en", 2840)
	require.NoError(t, err)

	// Single batched task carrying all keywords
	assert.JSONEq(t, `[{"keywords":["shoes"],"language_code":"en","location_code":2840}]`, gotBody)
}

func TestClient_FetchVolumes_NonSuccessTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"tasks":[{
			"status_code": 40000,
			"status_message": "Bad request.",
			"result": []
		}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	records, warnings, err := client.FetchVolumes(context.Background(), []string{"shoes"}, "en", 2840)
	require.NoError(t, err)

	assert.Empty(t, records)
	require.Len(t, warnings, 1)
	assert.Equal(t, 40000, warnings[0].StatusCode)
	assert.Equal(t, "Bad request.", warnings[0].Message)
}

func TestClient_FetchVolumes_NoTasksKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"version":"0.1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	records, warnings, err := client.FetchVolumes(context.Background(), []string{"shoes"}, "en", 2840)

	// Missing tasks key is a no-results condition, not an error
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestClient_FetchVolumes_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte("insufficient funds"))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	records, warnings, err := client.FetchVolumes(context.Background(), []string{"shoes"}, "en", 2840)
	assert.Nil(t, records)
	assert.Nil(t, warnings)

	apiErr, ok := models.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "insufficient funds", apiErr.Body)
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpmocks "github.com/joefancyai/localizedKWvolume/internal/http/mocks"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/mocks"
	"github.com/joefancyai/localizedKWvolume/internal/models"
)

func TestLoggingMiddleware_Success(t *testing.T) {
	mockLogger := &mocks.MockLogger{}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify log event exists in context
		logEvent := logger.GetLogEvent(r.Context())
		assert.NotNil(t, logEvent)
		assert.Equal(t, models.ProcessTypeRequest, logEvent.ProcessType)
		assert.Equal(t, "192.168.1.1", logEvent.ClientIP)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	mockLogger.On("LogInfo", mock.Anything, "http_request_start", "HTTP request received", mock.Anything).Return()
	mockLogger.On("LogInfo", mock.Anything, "http_request_complete", "HTTP request processed", mock.MatchedBy(func(metadata map[string]interface{}) bool {
		return metadata["method"] == "GET" &&
			metadata["path"] == "/api/locations" &&
			metadata["status_code"] == 200 &&
			metadata["client_ip"] == "192.168.1.1"
	})).Return()

	middleware := loggingMiddleware(mockLogger)
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", w.Body.String())
	mockLogger.AssertExpectations(t)
}

func TestLoggingMiddleware_ForwardedFor(t *testing.T) {
	mockLogger := &mocks.MockLogger{}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logEvent := logger.GetLogEvent(r.Context())
		assert.Equal(t, "10.0.0.5", logEvent.ClientIP) // From X-Forwarded-For
		w.WriteHeader(http.StatusCreated)
	})

	mockLogger.On("LogInfo", mock.Anything, "http_request_start", "HTTP request received", mock.Anything).Return()
	mockLogger.On("LogInfo", mock.Anything, "http_request_complete", "HTTP request processed", mock.MatchedBy(func(metadata map[string]interface{}) bool {
		return metadata["method"] == "POST" &&
			metadata["status_code"] == 201 &&
			metadata["client_ip"] == "10.0.0.5"
	})).Return()

	middleware := loggingMiddleware(mockLogger)
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/volumes", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.5, 192.168.1.1")
	req.RemoteAddr = "192.168.1.100:8080"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockLogger.AssertExpectations(t)
}

func TestCorsMiddleware_Preflight(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Should not be called for OPTIONS request
		t.Error("Handler should not be called for OPTIONS request")
	})

	middleware := corsMiddleware()
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/volumes", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCorsMiddleware_PassThrough(t *testing.T) {
	called := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := corsMiddleware()
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware_Panic(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	middleware := recoveryMiddleware(mocks.NewNopLogger())
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRateLimitingMiddleware_Allowed(t *testing.T) {
	rateLimiter := &httpmocks.MockRateLimiter{}
	rateLimiter.On("Allow", "192.168.1.1").Return(true)

	called := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := rateLimitingMiddleware(rateLimiter, mocks.NewNopLogger())
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	logEvent := logger.NewRequestLogEvent("192.168.1.1")
	req = req.WithContext(logger.WithLogEvent(req.Context(), logEvent))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	rateLimiter.AssertExpectations(t)
}

func TestRateLimitingMiddleware_Denied(t *testing.T) {
	rateLimiter := &httpmocks.MockRateLimiter{}
	rateLimiter.On("Allow", "192.168.1.1").Return(false)

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called when rate limited")
	})

	middleware := rateLimitingMiddleware(rateLimiter, mocks.NewNopLogger())
	handler := middleware(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/volumes", nil)
	logEvent := logger.NewRequestLogEvent("192.168.1.1")
	req = req.WithContext(logger.WithLogEvent(req.Context(), logEvent))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	rateLimiter.AssertExpectations(t)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.1:12345",
			want:       "192.168.1.1",
		},
		{
			name:       "x-forwarded-for takes precedence",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1",
			want:       "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

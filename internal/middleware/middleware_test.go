package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		path           string
		providedKey    string
		expectedStatus int
	}{
		{
			name:           "valid key passes",
			path:           "/api/products",
			providedKey:    "secret-key",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing key rejected",
			path:           "/api/products",
			providedKey:    "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key rejected",
			path:           "/api/products",
			providedKey:    "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "health check bypasses auth",
			path:           "/health",
			providedKey:    "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := APIKeyAuth("secret-key", logger)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set("X-API-Key", tt.providedKey)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestUserContext(t *testing.T) {
	t.Run("header present", func(t *testing.T) {
		var gotID string
		var gotOK bool
		handler := UserContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, gotOK = UserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(UserIDHeader, "user-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.True(t, gotOK)
		assert.Equal(t, "user-1", gotID)
	})

	t.Run("header absent", func(t *testing.T) {
		var gotOK bool
		handler := UserContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, gotOK = UserID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, gotOK)
	})
}

func TestCORS(t *testing.T) {
	handler := CORS(okHandler())

	t.Run("headers added", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-User-ID")
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRecovery(t *testing.T) {
	handler := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "internal server error"}`, rec.Body.String())
}

func TestLogging(t *testing.T) {
	handler := Logging(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// The wrapper must pass the status through untouched.
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

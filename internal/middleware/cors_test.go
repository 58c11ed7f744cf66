package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mysocialapp/backend/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCors(t *testing.T) {
	testCases := []struct {
		name               string
		origin             string
		userAgent          string
		expectedStatusCode int
		expectAllowOrigin  bool
	}{
		{
			name:               "NoOrigin",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "AllowedOrigin",
			origin:             "http://localhost:3000",
			expectedStatusCode: http.StatusOK,
			expectAllowOrigin:  true,
		},
		{
			name:               "AllowedProdOrigin",
			origin:             "https://www.mysocialapp.xyz",
			expectedStatusCode: http.StatusOK,
			expectAllowOrigin:  true,
		},
		{
			name:               "DisallowedOrigin",
			origin:             "https://evil.example.com",
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "DisallowedOriginButCurl",
			origin:             "https://evil.example.com",
			userAgent:          "curl/8.4.0",
			expectedStatusCode: http.StatusOK,
			expectAllowOrigin:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/users", nil)
			require.NoError(t, err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.userAgent != "" {
				req.Header.Set("User-Agent", tc.userAgent)
			}

			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			middleware.Cors()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			if tc.expectAllowOrigin {
				assert.Equal(t, tc.origin, rr.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestLogger_Handler(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "ok", status: http.StatusOK, expectedLevel: "INFO"},
		{name: "implicit ok", status: 0, expectedLevel: "INFO"},
		{name: "bad gateway", status: http.StatusBadGateway, expectedLevel: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			h := New(log).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
			}))

			req := httptest.NewRequest(http.MethodGet, "/12345", nil)
			h.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			expectedStatus := tt.status
			if expectedStatus == 0 {
				expectedStatus = http.StatusOK
			}
			assert.Equal(t, tt.expectedLevel, entry["level"])
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/12345", entry["path"])
			assert.Equal(t, float64(expectedStatus), entry["status"])
			assert.Equal(t, "http_logger", entry["component"])
		})
	}
}

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type fixedCounter int

func (c fixedCounter) Len() int { return int(c) }

func TestHandler_healthCheck(t *testing.T) {
	tests := []struct {
		name           string
		views          ViewCounter
		expectedStatus string
		expectedViews  int
	}{
		{
			name:           "health check returns OK",
			views:          fixedCounter(3),
			expectedStatus: "OK",
			expectedViews:  3,
		},
		{
			name:           "no view counter",
			expectedStatus: "OK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := NewHandler(tt.views, slog.Default(), huma.Middlewares{})

			// Act
			output, err := handler.healthCheck(context.Background(), &Input{})

			// Assert
			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
			assert.Equal(t, tt.expectedViews, output.Body.ActiveViews)
		})
	}
}

func TestHandler_SetupRoutes(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(fixedCounter(1), slog.Default(), nil).SetupRoutes(api)

	resp := api.Get("/api/v1/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var body Response
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, 1, body.ActiveViews)
}

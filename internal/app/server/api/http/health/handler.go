package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// ViewCounter reports how many record views are alive.
type ViewCounter interface {
	Len() int
}

type Handler struct {
	views      ViewCounter
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(views ViewCounter, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		views:      views,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	resp := Response{Status: "OK"}
	if h.views != nil {
		resp.ActiveViews = h.views.Len()
	}

	return &Output{Body: resp}, nil
}

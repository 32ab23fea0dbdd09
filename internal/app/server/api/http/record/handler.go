package record

import (
	"context"
	"errors"

	"checkin/internal/domain/record"
	"checkin/internal/domain/view"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	views      view.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(views view.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		views:      views,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.renderOp(), h.render)
	huma.Register(api, h.updateOp(), h.update)
}

func (h *Handler) find(ctx context.Context, input *findInput) (*viewOutput, error) {
	snap, err := h.views.Mount(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &viewOutput{Body: toViewResponse(snap)}, nil
}

func (h *Handler) render(_ context.Context, input *renderInput) (*viewOutput, error) {
	snap, err := h.views.Render(input.View, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &viewOutput{Body: toViewResponse(snap)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*updateOutput, error) {
	outcome, err := h.views.RequestUpdate(ctx, input.Body.View, input.ID)
	if err != nil && outcome != view.OutcomeFailed {
		return nil, mapError(err)
	}

	switch outcome {
	case view.OutcomeBlocked:
		return nil, huma.Error409Conflict("status is not actionable")
	case view.OutcomeFailed:
		if h.log != nil {
			h.log.Warn("status update failed", slog.String("id", input.ID), slog.String("error", err.Error()))
		}
		return nil, huma.Error502BadGateway("status update failed")
	}

	snap, err := h.views.Render(input.Body.View, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &updateOutput{
		Body: updateResponse{
			Outcome: string(outcome),
			View:    toViewResponse(snap),
		},
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, view.ErrNotFound):
		return huma.Error404NotFound("view not found or expired")
	case errors.Is(err, record.ErrEmptyID):
		return huma.Error400BadRequest("record id is empty")
	default:
		return huma.Error500InternalServerError("internal error", err)
	}
}

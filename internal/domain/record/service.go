package record

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Find(ctx context.Context, id string) (*Record, error)
	UpdateStatus(ctx context.Context, id string) error
}

// Service collapses every upstream failure into one of two error kinds:
// ErrUnavailable for reads and ErrUpdateFailed for writes.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "record_service")),
	}
}

func (s *Service) Find(ctx context.Context, id string) (*Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Warn("record fetch failed", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	rec.ID = id
	s.log.Debug("record fetched", slog.String("id", id), slog.String("status", rec.Status))

	return rec, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}

	if err := s.repo.MarkStatus(ctx, id); err != nil {
		s.log.Warn("record status update failed", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	s.log.Info("record status updated", slog.String("id", id))
	return nil
}

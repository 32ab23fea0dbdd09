package view

import (
	"context"
	"fmt"
	"strings"

	"checkin/internal/domain/record"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Mount(ctx context.Context, id string) (Snapshot, error)
	Render(token, id string) (Snapshot, error)
	RequestUpdate(ctx context.Context, token, id string) (Outcome, error)
	CloseDialog(token, id string) error
}

type Service struct {
	records  record.Servicer
	store    *Store
	sentinel string
	log      *slog.Logger
}

var _ Servicer = (*Service)(nil)

func NewService(records record.Servicer, store *Store, sentinel string, log *slog.Logger) *Service {
	return &Service{
		records:  records,
		store:    store,
		sentinel: sentinel,
		log:      log.With(slog.String("component", "view_service")),
	}
}

// Mount creates a fresh view for id and performs its single initial read.
func (s *Service) Mount(ctx context.Context, id string) (Snapshot, error) {
	if strings.TrimSpace(id) == "" {
		return Snapshot{}, record.ErrEmptyID
	}

	v := newView(uuid.NewString(), id)
	s.store.Put(v)

	s.fetch(ctx, v)

	return s.snapshot(v), nil
}

// Render returns the current state of an existing view without touching
// the upstream.
func (s *Service) Render(token, id string) (Snapshot, error) {
	v, err := s.lookup(token, id)
	if err != nil {
		return Snapshot{}, err
	}

	return s.snapshot(v), nil
}

// RequestUpdate performs the one-time status update. A view whose status is
// not actionable gets the blocking dialog and no upstream call is made.
func (s *Service) RequestUpdate(ctx context.Context, token, id string) (Outcome, error) {
	v, err := s.lookup(token, id)
	if err != nil {
		return "", err
	}

	v.updating.Lock()
	defer v.updating.Unlock()

	v.mu.Lock()
	actionable := v.state == StateLoaded && v.record.Actionable(s.sentinel)
	if !actionable {
		v.dialogOpen = true
	}
	v.mu.Unlock()

	if !actionable {
		s.log.Debug("update blocked", slog.String("view", v.Token), slog.String("id", v.RecordID))
		return OutcomeBlocked, nil
	}

	if err := s.records.UpdateStatus(ctx, v.RecordID); err != nil {
		v.pushNotice(NoticeError)
		return OutcomeFailed, err
	}

	v.pushNotice(NoticeSuccess)
	s.fetch(ctx, v)

	return OutcomeUpdated, nil
}

func (s *Service) CloseDialog(token, id string) error {
	v, err := s.lookup(token, id)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.dialogOpen = false
	v.mu.Unlock()

	return nil
}

func (s *Service) lookup(token, id string) (*View, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	v, ok := s.store.Get(token)
	if !ok {
		return nil, ErrNotFound
	}
	// Токен от другой записи - это новое монтирование, а не повторный рендер.
	if v.RecordID != id {
		return nil, fmt.Errorf("%w: token belongs to another record", ErrNotFound)
	}

	return v, nil
}

// fetch issues one read and applies its result only if no newer read was
// started on the same view in the meantime.
func (s *Service) fetch(ctx context.Context, v *View) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	id := v.RecordID
	v.state = StatePending
	v.mu.Unlock()

	rec, err := s.records.Find(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.generation != gen || v.RecordID != id {
		s.log.Debug("stale read discarded",
			slog.String("view", v.Token),
			slog.String("id", id),
			slog.Uint64("generation", gen),
		)
		return
	}

	if err != nil {
		v.state = StateFailed
		v.err = err
		v.record = nil
		return
	}

	v.state = StateLoaded
	v.record = rec
	v.err = nil
}

func (s *Service) snapshot(v *View) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := Snapshot{
		Token:      v.Token,
		RecordID:   v.RecordID,
		State:      v.state,
		Err:        v.err,
		DialogOpen: v.dialogOpen,
		Notices:    v.notices,
	}
	v.notices = nil

	if v.record != nil {
		rec := *v.record
		snap.Record = &rec
		snap.Actionable = v.state == StateLoaded && rec.Actionable(s.sentinel)
	}

	return snap
}

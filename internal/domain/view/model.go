package view

import (
	"sync"

	"checkin/internal/domain/record"
)

// State of a mounted record view. Exactly one holds at a time.
type State int

const (
	StatePending State = iota
	StateFailed
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient notification shown once.
type Notice struct {
	Kind NoticeKind
}

// Outcome of an update request.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated"
	OutcomeBlocked Outcome = "blocked"
	OutcomeFailed  Outcome = "failed"
)

// View - состояние одного "монтирования" страницы записи.
type View struct {
	Token    string
	RecordID string

	// updating serializes status updates on the same view.
	updating sync.Mutex

	mu         sync.Mutex
	state      State
	record     *record.Record
	err        error
	dialogOpen bool
	notices    []Notice
	generation uint64
}

func newView(token, recordID string) *View {
	return &View{
		Token:    token,
		RecordID: recordID,
		state:    StatePending,
	}
}

func (v *View) pushNotice(kind NoticeKind) {
	v.mu.Lock()
	v.notices = append(v.notices, Notice{Kind: kind})
	v.mu.Unlock()
}

// Snapshot is a point-in-time copy of a view used for rendering.
type Snapshot struct {
	Token      string
	RecordID   string
	State      State
	Record     *record.Record
	Err        error
	DialogOpen bool
	Notices    []Notice
	Actionable bool
}

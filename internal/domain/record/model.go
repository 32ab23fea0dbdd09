package record

// Record - карточка человека, которой владеет внешний сервис.
// Все поля, кроме ID, опциональны: отсутствующие просто не показываются.
type Record struct {
	ID             string `json:"-"`
	Name           string `json:"name,omitempty"`
	City           string `json:"city,omitempty"`
	Phone          string `json:"cell,omitempty"`
	EmergencyPhone string `json:"emergencyCell,omitempty"`
	Status         string `json:"status,omitempty"`
	// IsAdmin only feeds the role label. It is not an authorization signal.
	IsAdmin *bool `json:"isAdmin,omitempty"`
}

// Tone is the visual weight of a status chip.
type Tone string

const (
	ToneDefault   Tone = "default"
	ToneSuccess   Tone = "success"
	ToneSecondary Tone = "secondary"
)

// StatusResponded is the status the upstream sets after a successful update.
const StatusResponded = "responded"

// Actionable reports whether the one-time status update is allowed.
func (r *Record) Actionable(sentinel string) bool {
	return r != nil && r.Status != "" && r.Status == sentinel
}

// StatusTone maps the status to a chip tone.
func (r *Record) StatusTone(sentinel string) Tone {
	switch r.Status {
	case StatusResponded:
		return ToneSuccess
	case sentinel:
		return ToneDefault
	default:
		return ToneSecondary
	}
}

// HasRole is false when the upstream did not send isAdmin at all.
func (r *Record) HasRole() bool {
	return r.IsAdmin != nil
}

func (r *Record) Admin() bool {
	return r.IsAdmin != nil && *r.IsAdmin
}

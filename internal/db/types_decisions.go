package db

import (
	"time"

	"github.com/google/uuid"
)

// Mode is the kind of decision a user makes on a posting.
type Mode string

// Decision modes as stored in the decisions table.
const (
	ModeApply  Mode = "apply"
	ModeIgnore Mode = "ignore"
)

// Decision statuses. An apply starts out Pending; an ignore is terminal.
const (
	StatusPending = "Pending"
	StatusIgnored = "Ignored"
)

// Valid reports whether the mode is one of the two known decision kinds.
func (m Mode) Valid() bool {
	return m == ModeApply || m == ModeIgnore
}

// Status returns the initial status for a decision of this mode.
func (m Mode) Status() string {
	if m == ModeApply {
		return StatusPending
	}
	return StatusIgnored
}

// Action returns the past-tense label shown in decision lists.
func (m Mode) Action() string {
	if m == ModeApply {
		return "Applied"
	}
	return "Ignored"
}

// Decision is one recorded swipe: a user applied to or ignored a job
type Decision struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	JobID     uuid.UUID `json:"jobId"`
	Mode      Mode      `json:"mode"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Application is a decision joined with the posting it concerns, as shown on
// the My Jobs page
type Application struct {
	Decision
	Job Job `json:"jobDetails"`
}

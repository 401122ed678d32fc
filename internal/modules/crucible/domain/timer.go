package domain

import (
	"strings"
	"time"

	apperrors "selfforge/internal/platform/errors"
)

const (
	// SessionSeconds is the fixed length of one forging session.
	SessionSeconds = 600
	// SessionReward is the flat coin grant for one completed session,
	// independent of any timing detail.
	SessionReward = 1
)

// FallbackAdvisory stands in when no oracle line resolved before finalize.
const FallbackAdvisory = "Silence is golden."

type State string

const (
	StateIdle       State = "idle"
	StateConfigured State = "configured"
	StateRunning    State = "running"
	StatePaused     State = "paused"
	StateCompleted  State = "completed"
)

// Timer is the session countdown state machine. Transitions return a new
// value; the zero-ish starting point comes from NewTimer.
type Timer struct {
	TaskName  string
	State     State
	Remaining int
}

func NewTimer() Timer {
	return Timer{State: StateIdle, Remaining: SessionSeconds}
}

// Configure names the task to be resisted. Valid from Idle, and from
// Configured to rename before starting.
func (t Timer) Configure(taskName string) (Timer, error) {
	name := strings.TrimSpace(taskName)
	if name == "" {
		return t, apperrors.ErrTaskNameRequired
	}
	if t.State != StateIdle && t.State != StateConfigured {
		return t, apperrors.ErrInvalidTransition
	}
	t.TaskName = name
	t.State = StateConfigured
	return t, nil
}

// Start begins or resumes the countdown. Valid from Configured or Paused.
func (t Timer) Start() (Timer, error) {
	if t.TaskName == "" {
		return t, apperrors.ErrTaskNameRequired
	}
	if t.State != StateConfigured && t.State != StatePaused {
		return t, apperrors.ErrInvalidTransition
	}
	t.State = StateRunning
	return t, nil
}

// Pause freezes the remaining time. Valid from Running only.
func (t Timer) Pause() (Timer, error) {
	if t.State != StateRunning {
		return t, apperrors.ErrInvalidTransition
	}
	t.State = StatePaused
	return t, nil
}

// Tick consumes one second of a running countdown. Reaching zero moves the
// timer to Completed exactly once; ticks in any other state are no-ops.
func (t Timer) Tick() Timer {
	if t.State != StateRunning {
		return t
	}
	t.Remaining--
	if t.Remaining <= 0 {
		t.Remaining = 0
		t.State = StateCompleted
	}
	return t
}

// Advance applies up to seconds ticks, used to catch a persisted running
// timer up with the wall clock.
func (t Timer) Advance(seconds int) Timer {
	for i := 0; i < seconds && t.State == StateRunning; i++ {
		t = t.Tick()
	}
	return t
}

// Reset returns to Idle with the full duration restored, from any state.
func (t Timer) Reset() Timer {
	return NewTimer()
}

func (t Timer) Completed() bool {
	return t.State == StateCompleted
}

// ActiveCrucible is the durable form of an in-flight session. Remaining is
// frozen at the last transition; for a running crucible the live value is
// reconstructed from ResumedAt.
type ActiveCrucible struct {
	ID        string    `json:"id"`
	TaskName  string    `json:"task_name"`
	State     State     `json:"state"`
	Remaining int       `json:"remaining_seconds"`
	StartedAt time.Time `json:"started_at"`
	ResumedAt time.Time `json:"resumed_at"`
	Advisory  string    `json:"advisory,omitempty"`
}

// Snapshot rebuilds the live timer for the given instant.
func (a ActiveCrucible) Snapshot(now time.Time) Timer {
	t := Timer{TaskName: a.TaskName, State: a.State, Remaining: a.Remaining}
	if a.State != StateRunning {
		return t
	}
	elapsed := int(now.Sub(a.ResumedAt).Seconds())
	if elapsed <= 0 {
		return t
	}
	return t.Advance(elapsed)
}

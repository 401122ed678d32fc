package domain_test

import (
	"errors"
	"testing"
	"time"

	"selfforge/internal/modules/crucible/domain"
	apperrors "selfforge/internal/platform/errors"
)

func mustRunning(t *testing.T, taskName string) domain.Timer {
	t.Helper()
	timer, err := domain.NewTimer().Configure(taskName)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	timer, err = timer.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return timer
}

func TestConfigureRejectsBlankTaskNames(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := domain.NewTimer().Configure(name); !errors.Is(err, apperrors.ErrTaskNameRequired) {
			t.Fatalf("configure(%q): expected ErrTaskNameRequired, got %v", name, err)
		}
	}
	timer, err := domain.NewTimer().Configure("  draft report  ")
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	if timer.TaskName != "draft report" || timer.State != domain.StateConfigured {
		t.Fatalf("unexpected configured timer: %+v", timer)
	}
}

func TestStartRequiresConfiguredOrPaused(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewTimer().Start(); !errors.Is(err, apperrors.ErrTaskNameRequired) {
		t.Fatalf("start from idle: expected ErrTaskNameRequired, got %v", err)
	}
	timer := mustRunning(t, "draft report")
	if _, err := timer.Start(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("start while running: expected ErrInvalidTransition, got %v", err)
	}
	paused, err := timer.Pause()
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	resumed, err := paused.Start()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.State != domain.StateRunning {
		t.Fatalf("expected running after resume, got %s", resumed.State)
	}
}

func TestPauseOnlyFromRunningAndFreezesRemaining(t *testing.T) {
	t.Parallel()
	timer := mustRunning(t, "draft report")
	timer = timer.Advance(42)
	paused, err := timer.Pause()
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Remaining != domain.SessionSeconds-42 {
		t.Fatalf("expected %d remaining, got %d", domain.SessionSeconds-42, paused.Remaining)
	}
	if again := paused.Tick(); again.Remaining != paused.Remaining {
		t.Fatalf("tick while paused must not consume time")
	}
	if _, err := paused.Pause(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("pause while paused: expected ErrInvalidTransition, got %v", err)
	}
}

func TestExactly600TicksCompleteOnceAndExtraTicksAreNoOps(t *testing.T) {
	t.Parallel()
	timer := mustRunning(t, "draft report")
	completions := 0
	for i := 0; i < domain.SessionSeconds; i++ {
		was := timer.State
		timer = timer.Tick()
		if timer.State == domain.StateCompleted && was != domain.StateCompleted {
			completions++
		}
	}
	if completions != 1 {
		t.Fatalf("expected exactly one completion, got %d", completions)
	}
	if timer.State != domain.StateCompleted || timer.Remaining != 0 {
		t.Fatalf("unexpected terminal timer: %+v", timer)
	}
	after := timer.Tick()
	if after != timer {
		t.Fatalf("tick 601 must be a no-op, got %+v", after)
	}
}

func TestResetFromEveryStateRestoresFullDuration(t *testing.T) {
	t.Parallel()
	running := mustRunning(t, "draft report").Advance(100)
	paused, _ := running.Pause()
	completed := running.Advance(domain.SessionSeconds)
	for _, timer := range []domain.Timer{domain.NewTimer(), running, paused, completed} {
		got := timer.Reset()
		if got.State != domain.StateIdle || got.Remaining != domain.SessionSeconds || got.TaskName != "" {
			t.Fatalf("reset from %s: got %+v", timer.State, got)
		}
	}
}

func TestSnapshotReconstructsRunningTimerFromWallClock(t *testing.T) {
	t.Parallel()
	resumedAt := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	active := domain.ActiveCrucible{
		ID:        "cru-1",
		TaskName:  "draft report",
		State:     domain.StateRunning,
		Remaining: domain.SessionSeconds,
		StartedAt: resumedAt,
		ResumedAt: resumedAt,
	}

	live := active.Snapshot(resumedAt.Add(90 * time.Second))
	if live.State != domain.StateRunning || live.Remaining != domain.SessionSeconds-90 {
		t.Fatalf("unexpected live snapshot: %+v", live)
	}

	done := active.Snapshot(resumedAt.Add(2 * time.Hour))
	if done.State != domain.StateCompleted || done.Remaining != 0 {
		t.Fatalf("expected completion after the wall clock passed zero, got %+v", done)
	}

	active.State = domain.StatePaused
	active.Remaining = 300
	frozen := active.Snapshot(resumedAt.Add(24 * time.Hour))
	if frozen.State != domain.StatePaused || frozen.Remaining != 300 {
		t.Fatalf("paused snapshot must ignore the wall clock, got %+v", frozen)
	}
}

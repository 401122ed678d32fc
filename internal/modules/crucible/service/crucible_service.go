package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"selfforge/internal/modules/crucible/domain"
	crucibleout "selfforge/internal/modules/crucible/port/out"
	"selfforge/internal/platform/clock"
	apperrors "selfforge/internal/platform/errors"
	"selfforge/internal/platform/id"
)

const (
	defaultTickInterval = time.Second
	defaultAdvisoryWait = 3 * time.Second
)

// CrucibleService owns the active session: its durable record, the in-process
// tick loop, and the single advisory fetch per completed session.
type CrucibleService struct {
	clock   clock.Clock
	idGen   id.Generator
	store   crucibleout.ActiveCrucibleStore
	advisor crucibleout.AdvisoryProvider

	tickInterval time.Duration
	advisoryWait time.Duration

	mu sync.Mutex
}

type Option func(*CrucibleService)

// WithTickInterval shortens the countdown cadence, used by tests.
func WithTickInterval(d time.Duration) Option {
	return func(s *CrucibleService) { s.tickInterval = d }
}

// WithAdvisoryWait bounds how long finalize may wait for the oracle.
func WithAdvisoryWait(d time.Duration) Option {
	return func(s *CrucibleService) { s.advisoryWait = d }
}

func NewCrucibleService(clk clock.Clock, idGen id.Generator, store crucibleout.ActiveCrucibleStore, advisor crucibleout.AdvisoryProvider, opts ...Option) *CrucibleService {
	s := &CrucibleService{
		clock:        clk,
		idGen:        idGen,
		store:        store,
		advisor:      advisor,
		tickInterval: defaultTickInterval,
		advisoryWait: defaultAdvisoryWait,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start configures and ignites a new crucible. Only one may be active.
func (s *CrucibleService) Start(ctx context.Context, taskName string) (domain.ActiveCrucible, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Load(ctx); err == nil {
		return domain.ActiveCrucible{}, apperrors.ErrCrucibleExists
	} else if !errors.Is(err, apperrors.ErrNoActiveCrucible) {
		return domain.ActiveCrucible{}, err
	}

	timer, err := domain.NewTimer().Configure(taskName)
	if err != nil {
		return domain.ActiveCrucible{}, err
	}
	timer, err = timer.Start()
	if err != nil {
		return domain.ActiveCrucible{}, err
	}

	now := s.clock.Now()
	active := domain.ActiveCrucible{
		ID:        s.idGen.New(),
		TaskName:  timer.TaskName,
		State:     domain.StateRunning,
		Remaining: timer.Remaining,
		StartedAt: now,
		ResumedAt: now,
	}
	if err := s.store.Save(ctx, active); err != nil {
		return domain.ActiveCrucible{}, err
	}
	return active, nil
}

// Status loads the active crucible and reconciles it with the wall clock,
// persisting the completion transition the first time it is observed.
func (s *CrucibleService) Status(ctx context.Context) (domain.ActiveCrucible, domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(ctx)
}

func (s *CrucibleService) statusLocked(ctx context.Context) (domain.ActiveCrucible, domain.Timer, error) {
	active, err := s.store.Load(ctx)
	if err != nil {
		return domain.ActiveCrucible{}, domain.Timer{}, err
	}
	timer := active.Snapshot(s.clock.Now())
	if timer.Completed() && active.State != domain.StateCompleted {
		active.State = domain.StateCompleted
		active.Remaining = 0
		if err := s.store.Save(ctx, active); err != nil {
			return domain.ActiveCrucible{}, domain.Timer{}, err
		}
	}
	return active, timer, nil
}

// Pause freezes the live remaining time.
func (s *CrucibleService) Pause(ctx context.Context) (domain.ActiveCrucible, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, timer, err := s.statusLocked(ctx)
	if err != nil {
		return domain.ActiveCrucible{}, err
	}
	timer, err = timer.Pause()
	if err != nil {
		return domain.ActiveCrucible{}, err
	}
	active.State = domain.StatePaused
	active.Remaining = timer.Remaining
	if err := s.store.Save(ctx, active); err != nil {
		return domain.ActiveCrucible{}, err
	}
	return active, nil
}

// Resume restarts a paused countdown.
func (s *CrucibleService) Resume(ctx context.Context) (domain.ActiveCrucible, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeLocked(ctx)
}

func (s *CrucibleService) resumeLocked(ctx context.Context) (domain.ActiveCrucible, error) {
	active, timer, err := s.statusLocked(ctx)
	if err != nil {
		return domain.ActiveCrucible{}, err
	}
	timer, err = timer.Start()
	if err != nil {
		return domain.ActiveCrucible{}, err
	}
	active.State = domain.StateRunning
	active.Remaining = timer.Remaining
	active.ResumedAt = s.clock.Now()
	if err := s.store.Save(ctx, active); err != nil {
		return domain.ActiveCrucible{}, err
	}
	return active, nil
}

// Reset discards the active crucible, advisory included. Resetting with no
// active crucible is a no-op.
func (s *CrucibleService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx)
}

// Run drives the countdown in-process until completion or cancellation. The
// ticker is stopped synchronously before any state transition so a stale tick
// can never fire after the timer leaves Running. Cancellation freezes the
// remaining time as paused.
func (s *CrucibleService) Run(ctx context.Context) (domain.ActiveCrucible, error) {
	s.mu.Lock()
	active, timer, err := s.statusLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return domain.ActiveCrucible{}, err
	}
	switch timer.State {
	case domain.StateCompleted:
		s.mu.Unlock()
		return s.withAdvisory(ctx, active)
	case domain.StatePaused:
		active, err = s.resumeLocked(ctx)
		if err != nil {
			s.mu.Unlock()
			return domain.ActiveCrucible{}, err
		}
		timer = domain.Timer{TaskName: active.TaskName, State: domain.StateRunning, Remaining: active.Remaining}
	}
	s.mu.Unlock()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			s.mu.Lock()
			active.State = domain.StatePaused
			active.Remaining = timer.Remaining
			saveErr := s.store.Save(context.WithoutCancel(ctx), active)
			s.mu.Unlock()
			if saveErr != nil {
				return active, saveErr
			}
			return active, ctx.Err()
		case <-ticker.C:
			timer = timer.Tick()
			if timer.Completed() {
				ticker.Stop()
				s.mu.Lock()
				active.State = domain.StateCompleted
				active.Remaining = 0
				if err := s.store.Save(ctx, active); err != nil {
					s.mu.Unlock()
					return active, err
				}
				s.mu.Unlock()
				return s.withAdvisory(ctx, active)
			}
		}
	}
}

func (s *CrucibleService) withAdvisory(ctx context.Context, active domain.ActiveCrucible) (domain.ActiveCrucible, error) {
	advisory, err := s.ensureAdvisory(ctx, active.ID)
	if err == nil {
		active.Advisory = advisory
	}
	return active, nil
}

// Advisory resolves the oracle line for the completed active crucible,
// fetching at most once and caching the result on the durable record.
func (s *CrucibleService) Advisory(ctx context.Context) (string, error) {
	s.mu.Lock()
	active, timer, err := s.statusLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if !timer.Completed() {
		return "", apperrors.ErrCrucibleNotCompleted
	}
	return s.ensureAdvisory(ctx, active.ID)
}

// ensureAdvisory performs the single bounded fetch for the given session.
// Results are keyed to the crucible ID so a slow fetch can never attach to a
// later session. Provider failure is absorbed into the fallback line and the
// fallback is deliberately not cached, leaving a later attempt free to retry.
func (s *CrucibleService) ensureAdvisory(ctx context.Context, wantID string) (string, error) {
	s.mu.Lock()
	active, err := s.store.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if active.ID != wantID || active.State != domain.StateCompleted {
		s.mu.Unlock()
		return "", apperrors.ErrAdvisoryUnavailable
	}
	if active.Advisory != "" {
		advisory := active.Advisory
		s.mu.Unlock()
		return advisory, nil
	}
	taskName := active.TaskName
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.advisoryWait)
	defer cancel()
	text, err := s.advisor.Generate(fetchCtx, taskName)
	if err != nil || strings.TrimSpace(text) == "" {
		return domain.FallbackAdvisory, nil
	}
	text = strings.TrimSpace(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.store.Load(ctx)
	if err != nil || current.ID != wantID {
		return text, nil
	}
	current.Advisory = text
	if err := s.store.Save(ctx, current); err != nil {
		return text, nil
	}
	return text, nil
}

// Finalize validates completion and hands back the session data the record is
// built from. Clearing is left to the caller once grant and append succeeded.
func (s *CrucibleService) Finalize(ctx context.Context) (domain.ActiveCrucible, string, error) {
	s.mu.Lock()
	active, timer, err := s.statusLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return domain.ActiveCrucible{}, "", err
	}
	if !timer.Completed() {
		return domain.ActiveCrucible{}, "", apperrors.ErrCrucibleNotCompleted
	}
	advisory, err := s.ensureAdvisory(ctx, active.ID)
	if err != nil || strings.TrimSpace(advisory) == "" {
		advisory = domain.FallbackAdvisory
	}
	return active, advisory, nil
}

// Clear removes the finalized crucible, returning the timer to Idle.
func (s *CrucibleService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx)
}

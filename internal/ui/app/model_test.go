package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	crucibledomain "selfforge/internal/modules/crucible/domain"
	crucibledto "selfforge/internal/modules/crucible/dto"
	journaldto "selfforge/internal/modules/journal/dto"
	ledgerdto "selfforge/internal/modules/ledger/dto"
)

type stubCrucible struct {
	out crucibledto.CrucibleOutput
}

func (s stubCrucible) Start(context.Context, string) (crucibledto.CrucibleOutput, error) {
	return s.out, nil
}

func (s stubCrucible) Status(context.Context) (crucibledto.CrucibleOutput, error) {
	return s.out, nil
}

func (s stubCrucible) Pause(context.Context) (crucibledto.CrucibleOutput, error) {
	return s.out, nil
}

func (s stubCrucible) Resume(context.Context) (crucibledto.CrucibleOutput, error) {
	return s.out, nil
}

func (s stubCrucible) Reset(context.Context) error { return nil }

func (s stubCrucible) Advisory(context.Context) (string, error) { return "", nil }

func (s stubCrucible) Finalize(context.Context, string) (crucibledto.FinalizeOutput, error) {
	return crucibledto.FinalizeOutput{}, nil
}

type stubLedger struct{}

func (stubLedger) State(context.Context) (ledgerdto.StateOutput, error) {
	return ledgerdto.StateOutput{}, nil
}

func (stubLedger) Catalog(context.Context) ([]ledgerdto.ItemOutput, error) { return nil, nil }

func (stubLedger) Purchase(context.Context, string) (ledgerdto.PurchaseOutput, error) {
	return ledgerdto.PurchaseOutput{}, nil
}

type stubJournal struct{}

func (stubJournal) History(context.Context, int) ([]journaldto.EntryOutput, error) {
	return nil, nil
}

func (stubJournal) DailyTotals(context.Context, int) ([]journaldto.DayTotalOutput, error) {
	return nil, nil
}

func (stubJournal) Confidence(context.Context) (journaldto.ConfidenceOutput, error) {
	return journaldto.ConfidenceOutput{}, nil
}

// collect executes a command tree and returns the messages it yields.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msgs := []tea.Msg{}
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func runningSession() crucibledto.CrucibleOutput {
	return crucibledto.CrucibleOutput{
		ID:        "cru-1",
		TaskName:  "draft report",
		State:     string(crucibledomain.StateRunning),
		Remaining: 400,
	}
}

func TestRunningSessionKeepsExactlyOneTickInFlight(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCrucible{out: runningSession()}, stubLedger{}, stubJournal{})
	m.tickEvery = time.Millisecond

	model, cmd := m.Update(crucibleLoadedMsg{crucible: runningSession(), active: true})
	pending := []tea.Cmd{cmd}

	for gen := 0; gen < 8; gen++ {
		if len(pending) > 1 {
			t.Fatalf("generation %d: %d commands in flight, want at most 1", gen, len(pending))
		}
		msgs := []tea.Msg{}
		for _, c := range pending {
			msgs = append(msgs, collect(c)...)
		}
		pending = pending[:0]
		ticks := 0
		for _, msg := range msgs {
			if _, ok := msg.(tickMsg); ok {
				ticks++
			}
			model, cmd = model.Update(msg)
			if cmd != nil {
				pending = append(pending, cmd)
			}
		}
		if ticks > 1 {
			t.Fatalf("generation %d: %d ticks fired, want at most 1", gen, ticks)
		}
	}
}

func TestRefreshWhileTickPendingDoesNotStackAnother(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCrucible{out: runningSession()}, stubLedger{}, stubJournal{})
	m.tickEvery = time.Millisecond

	model, cmd := m.Update(crucibleLoadedMsg{crucible: runningSession(), active: true})
	if cmd == nil {
		t.Fatal("entering running state must schedule a tick")
	}

	// A pause/resume refresh lands before the pending tick fires.
	_, cmd = model.Update(crucibleLoadedMsg{crucible: runningSession(), active: true})
	if cmd != nil {
		t.Fatal("a refresh with a tick already pending must not schedule another")
	}
}

func TestTickChainStopsWhenTheSessionLeavesRunning(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCrucible{out: runningSession()}, stubLedger{}, stubJournal{})
	m.tickEvery = time.Millisecond

	model, _ := m.Update(crucibleLoadedMsg{crucible: runningSession(), active: true})

	paused := runningSession()
	paused.State = string(crucibledomain.StatePaused)
	model, _ = model.Update(crucibleLoadedMsg{crucible: paused, active: true})

	// The in-flight tick arrives after the pause and must not reschedule.
	_, cmd := model.Update(tickMsg(time.Now()))
	if cmd != nil {
		t.Fatal("tick after pause must end the chain")
	}
}

func TestJournalBarsAreClamped(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCrucible{}, stubLedger{}, stubJournal{})
	m.totals = []journaldto.DayTotalOutput{
		{Day: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Label: "Sun", Coins: 500},
	}
	if got := strings.Count(m.viewJournal(), "█"); got > maxBarGlyphs {
		t.Fatalf("bar rendered %d glyphs, cap is %d", got, maxBarGlyphs)
	}
}

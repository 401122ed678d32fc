package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	crucibledomain "selfforge/internal/modules/crucible/domain"
	crucibledto "selfforge/internal/modules/crucible/dto"
	journaldto "selfforge/internal/modules/journal/dto"
	ledgerdto "selfforge/internal/modules/ledger/dto"
	apperrors "selfforge/internal/platform/errors"
	"selfforge/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this presentation layer requires.

type cruciblePort interface {
	Start(ctx context.Context, taskName string) (crucibledto.CrucibleOutput, error)
	Status(ctx context.Context) (crucibledto.CrucibleOutput, error)
	Pause(ctx context.Context) (crucibledto.CrucibleOutput, error)
	Resume(ctx context.Context) (crucibledto.CrucibleOutput, error)
	Reset(ctx context.Context) error
	Advisory(ctx context.Context) (string, error)
	Finalize(ctx context.Context, feeling string) (crucibledto.FinalizeOutput, error)
}

type ledgerPort interface {
	State(ctx context.Context) (ledgerdto.StateOutput, error)
	Catalog(ctx context.Context) ([]ledgerdto.ItemOutput, error)
	Purchase(ctx context.Context, itemID string) (ledgerdto.PurchaseOutput, error)
}

type journalPort interface {
	History(ctx context.Context, limit int) ([]journaldto.EntryOutput, error)
	DailyTotals(ctx context.Context, windowDays int) ([]journaldto.DayTotalOutput, error)
	Confidence(ctx context.Context) (journaldto.ConfidenceOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabForge tabID = iota
	tabCrucible
	tabJournal
	tabShop
	tabCount
)

var tabLabels = [tabCount]string{"Forge", "Crucible", "Journal", "Shop"}

// ─── async messages ──────────────────────────────────────────────────────────

type forgeLoadedMsg struct {
	state      ledgerdto.StateOutput
	confidence journaldto.ConfidenceOutput
	err        error
}

type crucibleLoadedMsg struct {
	crucible crucibledto.CrucibleOutput
	active   bool
	err      error
}

type advisoryMsg struct {
	text string
	err  error
}

type finalizedMsg struct {
	out crucibledto.FinalizeOutput
	err error
}

type journalLoadedMsg struct {
	totals  []journaldto.DayTotalOutput
	entries []journaldto.EntryOutput
	err     error
}

type catalogLoadedMsg struct {
	items []ledgerdto.ItemOutput
	err   error
}

type purchasedMsg struct {
	out ledgerdto.PurchaseOutput
	err error
}

type tickMsg time.Time

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab    key.Binding
	Space  key.Binding
	Reset  key.Binding
	Enter  key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	Space: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
	Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	crucible cruciblePort
	ledger   ledgerPort
	journal  journalPort

	tab    tabID
	width  int
	height int

	taskInput    textinput.Model
	feelingInput textinput.Model
	bar          progress.Model
	help         help.Model

	session         crucibledto.CrucibleOutput
	hasSession      bool
	advisory        string
	advisoryLoading bool
	ticking         bool
	tickEvery       time.Duration

	state      ledgerdto.StateOutput
	confidence journaldto.ConfidenceOutput
	totals     []journaldto.DayTotalOutput
	entries    []journaldto.EntryOutput
	items      []ledgerdto.ItemOutput
	shopIdx    int

	flash string
	err   error
}

func NewModel(crucible cruciblePort, ledger ledgerPort, journal journalPort) Model {
	task := textinput.New()
	task.Placeholder = "what are you avoiding?"
	task.CharLimit = 120
	task.Focus()

	feeling := textinput.New()
	feeling.Placeholder = "how did it feel to push through? (optional)"
	feeling.CharLimit = 240

	return Model{
		crucible:     crucible,
		ledger:       ledger,
		journal:      journal,
		taskInput:    task,
		feelingInput: feeling,
		bar:          progress.New(progress.WithGradient("#d97706", "#fbbf24")),
		help:         help.New(),
		tickEvery:    time.Second,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadForge(), m.loadCrucible(), m.loadJournal(), m.loadCatalog())
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadForge() tea.Cmd {
	ledger, journal := m.ledger, m.journal
	return func() tea.Msg {
		ctx := context.Background()
		state, err := ledger.State(ctx)
		if err != nil {
			return forgeLoadedMsg{err: err}
		}
		confidence, err := journal.Confidence(ctx)
		return forgeLoadedMsg{state: state, confidence: confidence, err: err}
	}
}

func (m Model) loadCrucible() tea.Cmd {
	port := m.crucible
	return func() tea.Msg {
		out, err := port.Status(context.Background())
		if errors.Is(err, apperrors.ErrNoActiveCrucible) {
			return crucibleLoadedMsg{active: false}
		}
		if err != nil {
			return crucibleLoadedMsg{err: err}
		}
		return crucibleLoadedMsg{crucible: out, active: true}
	}
}

func (m Model) loadJournal() tea.Cmd {
	port := m.journal
	return func() tea.Msg {
		ctx := context.Background()
		totals, err := port.DailyTotals(ctx, 7)
		if err != nil {
			return journalLoadedMsg{err: err}
		}
		entries, err := port.History(ctx, 20)
		return journalLoadedMsg{totals: totals, entries: entries, err: err}
	}
}

func (m Model) loadCatalog() tea.Cmd {
	port := m.ledger
	return func() tea.Msg {
		items, err := port.Catalog(context.Background())
		return catalogLoadedMsg{items: items, err: err}
	}
}

func (m Model) startCrucible(task string) tea.Cmd {
	port := m.crucible
	return func() tea.Msg {
		out, err := port.Start(context.Background(), task)
		if err != nil {
			return crucibleLoadedMsg{err: err}
		}
		return crucibleLoadedMsg{crucible: out, active: true}
	}
}

func (m Model) toggleCrucible() tea.Cmd {
	port := m.crucible
	paused := m.session.State == string(crucibledomain.StatePaused)
	return func() tea.Msg {
		var out crucibledto.CrucibleOutput
		var err error
		if paused {
			out, err = port.Resume(context.Background())
		} else {
			out, err = port.Pause(context.Background())
		}
		if err != nil {
			return crucibleLoadedMsg{err: err}
		}
		return crucibleLoadedMsg{crucible: out, active: true}
	}
}

func (m Model) resetCrucible() tea.Cmd {
	port := m.crucible
	return func() tea.Msg {
		if err := port.Reset(context.Background()); err != nil {
			return crucibleLoadedMsg{err: err}
		}
		return crucibleLoadedMsg{active: false}
	}
}

func (m Model) fetchAdvisory() tea.Cmd {
	port := m.crucible
	return func() tea.Msg {
		text, err := port.Advisory(context.Background())
		return advisoryMsg{text: text, err: err}
	}
}

func (m Model) finalizeCrucible(feeling string) tea.Cmd {
	port := m.crucible
	return func() tea.Msg {
		out, err := port.Finalize(context.Background(), feeling)
		return finalizedMsg{out: out, err: err}
	}
}

func (m Model) buySelected() tea.Cmd {
	if m.shopIdx < 0 || m.shopIdx >= len(m.items) {
		return nil
	}
	port := m.ledger
	itemID := m.items[m.shopIdx].ID
	return func() tea.Msg {
		out, err := port.Purchase(context.Background(), itemID)
		return purchasedMsg{out: out, err: err}
	}
}

// tick schedules the next countdown refresh. At most one tick is ever in
// flight; callers go through scheduleTick.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) scheduleTick() (Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.tick()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = min(m.width-12, 48)
		return m, nil

	case tickMsg:
		m.ticking = false
		if m.hasSession && m.session.State == string(crucibledomain.StateRunning) {
			return m, m.loadCrucible()
		}
		return m, nil

	case forgeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.state, m.confidence, m.err = msg.state, msg.confidence, nil
		return m, nil

	case crucibleLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		wasCompleted := m.hasSession && m.session.State == string(crucibledomain.StateCompleted)
		m.hasSession = msg.active
		m.session = msg.crucible
		if !msg.active {
			m.advisory = ""
			m.advisoryLoading = false
			m.taskInput.SetValue("")
			m.taskInput.Focus()
			return m, nil
		}
		switch m.session.State {
		case string(crucibledomain.StateRunning):
			return m.scheduleTick()
		case string(crucibledomain.StateCompleted):
			if !wasCompleted && m.advisory == "" && !m.advisoryLoading {
				m.advisoryLoading = true
				m.feelingInput.Focus()
				return m, m.fetchAdvisory()
			}
		}
		return m, nil

	case advisoryMsg:
		m.advisoryLoading = false
		if msg.err != nil {
			m.advisory = crucibledomain.FallbackAdvisory
			return m, nil
		}
		m.advisory = msg.text
		return m, nil

	case finalizedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.hasSession = false
		m.advisory = ""
		m.feelingInput.SetValue("")
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.flash = fmt.Sprintf("forged %q: +%d coin", msg.out.TaskName, msg.out.CoinsEarned)
		m.tab = tabForge
		return m, tea.Batch(m.loadForge(), m.loadJournal(), m.loadCatalog())

	case journalLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.totals, m.entries, m.err = msg.totals, msg.entries, nil
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items, m.err = msg.items, nil
		if m.shopIdx >= len(m.items) {
			m.shopIdx = 0
		}
		return m, nil

	case purchasedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrInsufficientCoins) {
				m.flash = "not enough coins"
				return m, nil
			}
			m.err = msg.err
			return m, nil
		}
		m.flash = fmt.Sprintf("acquired %s (%d coins left)", msg.out.ItemName, msg.out.Coins)
		return m, tea.Batch(m.loadForge(), m.loadCatalog())

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Tab):
		m.flash = ""
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	}

	switch m.tab {
	case tabCrucible:
		return m.updateCrucibleKeys(msg)
	case tabShop:
		switch {
		case key.Matches(msg, keys.Up):
			if m.shopIdx > 0 {
				m.shopIdx--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.shopIdx < len(m.items)-1 {
				m.shopIdx++
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			return m, m.buySelected()
		}
	}
	return m, nil
}

func (m Model) updateCrucibleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.hasSession {
		if key.Matches(msg, keys.Enter) {
			task := strings.TrimSpace(m.taskInput.Value())
			if task == "" {
				m.flash = "name the task first"
				return m, nil
			}
			return m, m.startCrucible(task)
		}
		var cmd tea.Cmd
		m.taskInput, cmd = m.taskInput.Update(msg)
		return m, cmd
	}

	switch m.session.State {
	case string(crucibledomain.StateCompleted):
		switch {
		case key.Matches(msg, keys.Enter):
			return m, m.finalizeCrucible(strings.TrimSpace(m.feelingInput.Value()))
		case key.Matches(msg, keys.Reset):
			return m, m.resetCrucible()
		}
		var cmd tea.Cmd
		m.feelingInput, cmd = m.feelingInput.Update(msg)
		return m, cmd
	default:
		switch {
		case key.Matches(msg, keys.Space):
			return m, m.toggleCrucible()
		case key.Matches(msg, keys.Reset):
			return m, m.resetCrucible()
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var body string
	switch m.tab {
	case tabForge:
		body = m.viewForge()
	case tabCrucible:
		body = m.viewCrucible()
	case tabJournal:
		body = m.viewJournal()
	case tabShop:
		body = m.viewShop()
	}

	sections := []string{m.viewTabs(), body}
	if m.flash != "" {
		sections = append(sections, theme.Hot.Render(m.flash))
	}
	if m.err != nil {
		sections = append(sections, theme.Danger.Render(m.err.Error()))
	}
	sections = append(sections, m.help.ShortHelpView([]key.Binding{keys.Tab, keys.Space, keys.Reset, keys.Enter, keys.Quit}))
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewTabs() string {
	rendered := make([]string, 0, tabCount)
	for i, label := range tabLabels {
		if tabID(i) == m.tab {
			rendered = append(rendered, theme.Title.Render("["+label+"]"))
		} else {
			rendered = append(rendered, theme.Muted.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewForge() string {
	lines := []string{
		theme.Title.Render("THE SELF-FORGE"),
		theme.Muted.Render("Sublimate anxiety into gold."),
		"",
		fmt.Sprintf("coins   %s", theme.Hot.Render(fmt.Sprintf("%d", m.state.Coins))),
		fmt.Sprintf("streak  %s", theme.Hot.Render(fmt.Sprintf("%d days", m.state.Streak))),
		"",
		fmt.Sprintf("confidence %d%%", m.confidence.Score),
		m.bar.ViewAs(float64(m.confidence.Score) / 100),
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) viewCrucible() string {
	if !m.hasSession {
		lines := []string{
			theme.Title.Render("QUENCHING"),
			theme.Muted.Render("Ten minutes to break the seal of perfectionism."),
			"",
			m.taskInput.View(),
			"",
			theme.Muted.Render("enter to ignite"),
		}
		return theme.PaneActive.Render(strings.Join(lines, "\n"))
	}

	if m.session.State == string(crucibledomain.StateCompleted) {
		oracle := theme.Muted.Render("communing with the oracle...")
		if !m.advisoryLoading && m.advisory != "" {
			oracle = theme.Quote.Render("\"" + m.advisory + "\"")
		}
		lines := []string{
			theme.Title.Render("VICTORY CAST"),
			theme.Muted.Render("You burned the dread away by acting."),
			"",
			oracle,
			"",
			m.feelingInput.View(),
			"",
			theme.Muted.Render("enter to mint your coin · r to discard"),
		}
		return theme.PaneActive.Render(strings.Join(lines, "\n"))
	}

	done := crucibledomain.SessionSeconds - m.session.Remaining
	lines := []string{
		theme.Title.Render("FORGING: " + m.session.TaskName),
		"",
		theme.Hot.Render(formatClock(m.session.Remaining)),
		m.bar.ViewAs(float64(done) / crucibledomain.SessionSeconds),
		"",
		theme.Muted.Render(m.session.State + " · space to pause/resume · r to reset"),
	}
	return theme.PaneActive.Render(strings.Join(lines, "\n"))
}

// maxBarGlyphs caps the daily-total bars so a heavy day cannot wrap the pane.
const maxBarGlyphs = 24

func (m Model) viewJournal() string {
	lines := []string{theme.Title.Render("EXPEDITION LOG"), ""}
	for _, total := range m.totals {
		bar := strings.Repeat("█", min(total.Coins, maxBarGlyphs))
		if bar == "" {
			bar = theme.Muted.Render("·")
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", total.Day.Format("01-02"), total.Label, bar))
	}
	lines = append(lines, "")
	if len(m.entries) == 0 {
		lines = append(lines, theme.Muted.Render("the log is empty; start your first cast"))
	}
	for _, entry := range m.entries {
		lines = append(lines, fmt.Sprintf("%s  %-24s %s",
			theme.Muted.Render(entry.CompletedAt.Format("01-02 15:04")),
			entry.TaskName,
			theme.Hot.Render(fmt.Sprintf("+%d", entry.CoinsEarned))))
		if entry.Advisory != "" {
			lines = append(lines, "  "+theme.Quote.Render("\""+entry.Advisory+"\""))
		}
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) viewShop() string {
	lines := []string{theme.Title.Render("ARMORY"), theme.Muted.Render("Invest your psychological capital."), ""}
	for i, item := range m.items {
		cursor := "  "
		if i == m.shopIdx {
			cursor = theme.Hot.Render("> ")
		}
		price := fmt.Sprintf("%3d coins", item.Cost)
		if !item.Affordable {
			price = theme.Muted.Render(price + " 🔒")
		}
		lines = append(lines, fmt.Sprintf("%s%s %-16s %s  %s", cursor, item.Icon, item.Name, price, theme.Muted.Render(item.Description)))
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

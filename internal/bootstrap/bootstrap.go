package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	crucibleinadapter "selfforge/internal/modules/crucible/adapter/in"
	crucibleoutadapter "selfforge/internal/modules/crucible/adapter/out"
	crucibleservice "selfforge/internal/modules/crucible/service"
	crucibleusecase "selfforge/internal/modules/crucible/usecase"
	journalinadapter "selfforge/internal/modules/journal/adapter/in"
	journaloutadapter "selfforge/internal/modules/journal/adapter/out"
	journalservice "selfforge/internal/modules/journal/service"
	journalusecase "selfforge/internal/modules/journal/usecase"
	ledgerinadapter "selfforge/internal/modules/ledger/adapter/in"
	ledgeroutadapter "selfforge/internal/modules/ledger/adapter/out"
	ledgerservice "selfforge/internal/modules/ledger/service"
	ledgerusecase "selfforge/internal/modules/ledger/usecase"
	"selfforge/internal/platform/clock"
	"selfforge/internal/platform/config"
	"selfforge/internal/platform/id"
	uiapp "selfforge/internal/ui/app"
)

type App struct {
	CrucibleCLI crucibleinadapter.CLIHandler
	LedgerCLI   ledgerinadapter.CLIHandler
	JournalCLI  journalinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	ledgerUC := ledgerusecase.NewInteractor(ledgerservice.NewLedgerService(
		clk,
		ledgeroutadapter.NewFileStateStore(cfg.StatePath),
	))

	projector, err := journaloutadapter.NewSQLiteEntryProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new entry projector: %w", err)
	}
	journalUC := journalusecase.NewInteractor(journalservice.NewJournalService(
		clk,
		ids,
		journaloutadapter.NewFileEntryStore(cfg.JournalPath),
		projector,
		journaloutadapter.NewForgeNoteWriter(cfg.HomePath),
	))

	crucibleUC := crucibleusecase.NewInteractor(
		crucibleservice.NewCrucibleService(
			clk,
			ids,
			crucibleoutadapter.NewFileActiveCrucibleStore(cfg.HomePath),
			crucibleoutadapter.NewGeminiAdvisor(cfg.GeminiAPIKey),
		),
		ledgerUC,
		journalUC,
	)

	return &App{
		CrucibleCLI: crucibleinadapter.NewCLIHandler(crucibleUC),
		LedgerCLI:   ledgerinadapter.NewCLIHandler(ledgerUC),
		JournalCLI:  journalinadapter.NewCLIHandler(journalUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.CrucibleCLI, app.LedgerCLI, app.JournalCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"selfforge/internal/bootstrap"
	"selfforge/internal/platform/config"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "selfforge",
		Short:         "Forge anxiety into gold, ten minutes at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "forge home directory (default ~/.selfforge)")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newCrucibleCmd(&homePath))
	root.AddCommand(newStatusCmd(&homePath))
	root.AddCommand(newShopCmd(&homePath))
	root.AddCommand(newJournalCmd(&homePath))
	return root
}

func loadApp(homePath string) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the forge terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newCrucibleCmd(homePath *string) *cobra.Command {
	crucible := &cobra.Command{Use: "crucible", Short: "Timed forging sessions"}

	crucible.AddCommand(&cobra.Command{
		Use:   "start <task>",
		Short: "Name the resisted task and ignite the countdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Start(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ignited %q: %s remaining\n", out.TaskName, formatClock(out.Remaining))
			return nil
		},
	})

	crucible.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active crucible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %q: %s remaining\n", out.State, out.TaskName, formatClock(out.Remaining))
			return nil
		},
	})

	crucible.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Freeze the countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused %q at %s\n", out.TaskName, formatClock(out.Remaining))
			return nil
		},
	})

	crucible.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a paused countdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Resume(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "resumed %q: %s remaining\n", out.TaskName, formatClock(out.Remaining))
			return nil
		},
	})

	crucible.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Discard the active crucible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.CrucibleCLI.Reset(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "crucible reset")
			return nil
		},
	})

	crucible.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the countdown in the foreground until it completes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Run(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %q\n", out.TaskName)
			if out.Advisory != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "oracle: %s\n", out.Advisory)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "finalize with: selfforge crucible finalize --feeling \"...\"")
			return nil
		},
	})

	var feeling string
	finalize := &cobra.Command{
		Use:   "finalize",
		Short: "Mint the coin for a completed session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.CrucibleCLI.Finalize(context.Background(), feeling)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "forged %q: +%d coin (balance %d, streak %d)\n", out.TaskName, out.CoinsEarned, out.Coins, out.Streak)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "oracle: %s\n", out.Advisory)
			return nil
		},
	}
	finalize.Flags().StringVar(&feeling, "feeling", "", "how it felt to push through (optional)")
	crucible.AddCommand(finalize)

	return crucible
}

func newStatusCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show coins, streak and confidence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			state, err := app.LedgerCLI.State(ctx)
			if err != nil {
				return err
			}
			confidence, err := app.JournalCLI.Confidence(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "coins: %d\nstreak: %d days\nconfidence: %d%%\n", state.Coins, state.Streak, confidence.Score)
			return nil
		},
	}
}

func newShopCmd(homePath *string) *cobra.Command {
	shop := &cobra.Command{Use: "shop", Short: "Spend forged coins"}

	shop.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the armory catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			items, err := app.LedgerCLI.Catalog(context.Background())
			if err != nil {
				return err
			}
			for _, item := range items {
				marker := " "
				if item.Affordable {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-15s %3d coins  %s\n", marker, item.Icon, item.ID, item.Cost, item.Description)
			}
			return nil
		},
	})

	shop.AddCommand(&cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.LedgerCLI.Purchase(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "acquired %s for %d coins (%d remaining)\n", out.ItemName, out.Cost, out.Coins)
			return nil
		},
	})

	return shop
}

func newJournalCmd(homePath *string) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Review forged sessions"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			entries, err := app.JournalCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "the journal is empty; forge your first session")
				return nil
			}
			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s +%d\n", entry.CompletedAt.Format("2006-01-02 15:04"), entry.TaskName, entry.CoinsEarned)
				if entry.Advisory != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "    %q\n", entry.Advisory)
				}
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "max entries to show (0 = all)")
	journal.AddCommand(list)

	var days int
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Daily totals and the confidence score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			ctx := context.Background()
			totals, err := app.JournalCLI.DailyTotals(ctx, days)
			if err != nil {
				return err
			}
			confidence, err := app.JournalCLI.Confidence(ctx)
			if err != nil {
				return err
			}
			for _, total := range totals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", total.Day.Format("01-02"), total.Label, strings.Repeat("█", min(total.Coins, 24)))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "confidence: %d%% (%d coins forged)\n", confidence.Score, confidence.TotalCoins)
			return nil
		},
	}
	stats.Flags().IntVar(&days, "days", 7, "window size in days")
	journal.AddCommand(stats)

	journal.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the journal index from the source document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.JournalCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "journal reindexed")
			return nil
		},
	})

	return journal
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

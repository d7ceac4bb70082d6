package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/l1jgo/arcade/internal/persist"
)

func newScoresCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the best saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			db, _, err := persist.Open(ctx, cfg.Database, log)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			runs, err := persist.NewRunRepo(db).Top(ctx, limit)
			if err != nil {
				return fmt.Errorf("load scores: %w", err)
			}
			printScores(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", persist.DefaultTopLimit, "Number of runs to show")
	return cmd
}

func printScores(w io.Writer, runs []persist.RunRow) {
	printSection(w, "leaderboard")
	if len(runs) == 0 {
		fmt.Fprintln(w, "  no runs saved yet")
		return
	}
	fmt.Fprintf(w, "  %3s  %9s  %-4s  %10s  %-10s  %-5s  %s\n", "#", "score", "won", "duration", "difficulty", "agent", "played")
	for i, r := range runs {
		won, agentUsed := "", ""
		if r.Won {
			won = "yes"
		}
		if r.AgentUsed {
			agentUsed = "yes"
		}
		fmt.Fprintf(w, "  %3d  %9d  %-4s  %10s  %-10s  %-5s  %s\n",
			i+1, r.Score, won, r.Duration.Round(time.Millisecond), r.Difficulty, agentUsed,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(flags)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			db, err := persist.NewDB(ctx, cfg.Database, log)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			defer db.Close()

			before, err := persist.SchemaVersion(ctx, db.Pool, log)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			after, err := persist.RunMigrations(ctx, db.Pool, log)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			w := cmd.OutOrStdout()
			printSection(w, "database")
			if after == before {
				printOK(w, "schema up to date")
			} else {
				printOK(w, fmt.Sprintf("migrated from version %d", before))
			}
			printReady(w, fmt.Sprintf("schema version %d", after))
			return nil
		},
	}
}

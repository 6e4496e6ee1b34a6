package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkanyo/topograph/internal/config"
	"github.com/mkanyo/topograph/internal/store"
)

func NewHistoryCmd() *cobra.Command {
	var historyPath string
	var limit int
	var runID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !cmd.Flags().Changed("history") {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				if cfg.HistoryPath != "" {
					historyPath = cfg.HistoryPath
				}
			}

			db, err := store.Open(historyPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if runID > 0 {
				findings, err := db.Findings(ctx, runID)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, f := range findings {
					fmt.Fprintf(tw, "[%s]\t%s\t%s\n", f.Severity, f.Location, f.Message)
				}
				return tw.Flush()
			}

			runs, err := db.Runs(ctx, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tSOURCE\tACCOUNT\tTGWS\tVPCS\tFINDINGS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source, r.AccountID,
					r.TGWCount, r.VPCCount, r.FindingCount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "topograph.db", "sqlite history file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")
	cmd.Flags().Int64Var(&runID, "run", 0, "show the findings of one recorded run")

	return cmd
}

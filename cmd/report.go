package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkanyo/topograph/internal/analyze"
	"github.com/mkanyo/topograph/internal/config"
	"github.com/mkanyo/topograph/internal/report"
	"github.com/mkanyo/topograph/internal/store"
)

func NewReportCmd() *cobra.Command {
	var src sourceFlags
	var output string
	var historyPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reconstruct the topology and print a full analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cat, source, err := buildCatalog(ctx, src)
			if err != nil {
				return err
			}

			findings := analyze.New(cat).FindIssues()

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating report file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := report.Write(w, cat, findings, source); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if path := cfg.History(historyPath); path != "" {
				db, err := store.Open(path)
				if err != nil {
					return err
				}
				defer db.Close()
				if _, err := db.SaveRun(ctx, source, cat, findings); err != nil {
					return err
				}
			}
			return nil
		},
	}

	registerSourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&historyPath, "history", "", "sqlite file to record this run in (falls back to history_path in the config file)")

	return cmd
}

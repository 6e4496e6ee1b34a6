package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkanyo/topograph/internal/analyze"
	"github.com/mkanyo/topograph/internal/domain"
)

// NewCheckCmd builds the CI-oriented command: findings only, exit
// status 1 when any error-severity finding is present.
func NewCheckCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:           "check",
		Short:         "Analyze the topology and fail on error-severity findings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cat, _, err := buildCatalog(ctx, src)
			if err != nil {
				return err
			}

			findings := analyze.New(cat).FindIssues()

			errorCount := 0
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, f := range findings {
				if f.Severity == domain.SeverityError {
					errorCount++
				}
				fmt.Fprintf(tw, "[%s]\t%s\t%s\n", f.Severity, f.Location, f.Message)
			}
			tw.Flush()

			if errorCount > 0 {
				return fmt.Errorf("%d error finding(s)", errorCount)
			}
			return nil
		},
	}

	registerSourceFlags(cmd, &src)
	return cmd
}

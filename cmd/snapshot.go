package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	awsclient "github.com/mkanyo/topograph/internal/aws"
	"github.com/mkanyo/topograph/internal/classify"
	"github.com/mkanyo/topograph/internal/config"
	"github.com/mkanyo/topograph/internal/correlate"
	"github.com/mkanyo/topograph/internal/domain"
	"github.com/mkanyo/topograph/internal/ingest"
)

// sourceFlags are the snapshot-source flags shared by report and
// check.
type sourceFlags struct {
	input   string
	live    bool
	profile string
	region  string
	roleARN string
}

func registerSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "directory of AWS CLI JSON exports")
	cmd.Flags().BoolVar(&f.live, "live", false, "collect directly from AWS APIs")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "AWS profile to use")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "AWS region to query")
	cmd.Flags().StringVar(&f.roleARN, "role-arn", "", "role to assume before collecting")
}

// buildCatalog loads a snapshot from either an export directory or
// live describe calls, then correlates and classifies it. The returned
// source is "export" or "live".
func buildCatalog(ctx context.Context, f sourceFlags) (*domain.Catalog, string, error) {
	snap, source, err := loadSnapshot(ctx, f)
	if err != nil {
		return nil, "", err
	}

	correlate.Link(snap)
	classify.Subnets(snap.Catalog)
	return snap.Catalog, source, nil
}

func loadSnapshot(ctx context.Context, f sourceFlags) (*domain.Snapshot, string, error) {
	if f.live {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", fmt.Errorf("loading config: %w", err)
		}
		profile, region, roleARN := cfg.Merge(f.profile, f.region, f.roleARN)

		awsCfg, err := awsclient.LoadConfig(ctx, profile, region)
		if err != nil {
			return nil, "", err
		}
		if roleARN != "" {
			awsCfg, err = awsclient.AssumeRole(ctx, awsCfg, roleARN)
			if err != nil {
				return nil, "", err
			}
		}

		accountID := awsclient.AccountID(ctx, awsCfg)
		collector := awsclient.NewCollector(awsclient.NewClient(awsCfg), accountID)
		snap, err := collector.Collect(ctx)
		if err != nil {
			if snap == nil {
				return nil, "", err
			}
			fmt.Fprintf(os.Stderr, "warning: partial collection: %v\n", err)
		}
		return snap, "live", nil
	}

	if f.input == "" {
		return nil, "", fmt.Errorf("either --input or --live is required")
	}
	in, err := ingest.Load(f.input)
	if err != nil {
		return nil, "", err
	}
	return ingest.Build(in), "export", nil
}

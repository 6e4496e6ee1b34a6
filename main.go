package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkanyo/topograph/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "topograph",
		Short: "Reconstruct and analyze AWS network topology",
	}

	rootCmd.AddCommand(cmd.NewReportCmd())
	rootCmd.AddCommand(cmd.NewCheckCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

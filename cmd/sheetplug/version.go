package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplug-go/internal/gitinfo"
)

func newVersionCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and git revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetplug %s\n", Version)
			if sha, err := gitinfo.CurrentSHA(".", !full); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "commit %s\n", sha)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the full commit hash")

	return cmd
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/verify"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every table for structural issues",
		Long: `verify loads the dataset and checks every table for missing columns,
duplicated column names and malformed rows. It fails on any issue unless
--mode warn is given.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}

	cmd.Flags().String("data", "", "Input workbook, CSV file or directory")
	cmd.Flags().String("mode", string(verify.ModeFail), "Verification mode: warn or fail")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	if cfg.Data == "" {
		return errors.New("missing input: set --data or data in the config file")
	}

	// The config file's verify.mode governs the extract pipeline; this
	// command is strict unless the flag says otherwise.
	mode := verify.ModeFail
	if cmd.Flags().Changed("mode") {
		var err error
		if mode, err = verify.ParseMode(cfg.Verify.Mode); err != nil {
			return err
		}
	}

	ds, err := sheetplug.LoadDataset(cfg.Data, loadOptions(cfg))
	if err != nil {
		return err
	}

	if _, err := verify.NewVerifyStep(verify.Config{Mode: mode, Logger: logger}, "").Run(ds); err != nil {
		return err
	}

	if issues := verify.Check(ds); len(issues) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Verification finished with %d issue(s).\n", len(issues))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Verification OK.")
	return nil
}

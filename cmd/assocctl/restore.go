package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

func init() {
	rootCmd.AddCommand(newRestoreCmd())
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file.reg>",
		Short: "Re-apply UserChoice records from a .reg file",
		Long: `The restore command reads ProgIds from an exported .reg file and writes
each of them again with a fresh hash. Stored hashes are not reused.

Example:
  assocctl restore backup.reg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(args)
		},
	}
}

func runRestore(args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	outcomes, err := assoc.Restore(data, newOptions())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return reportOutcomes(outcomes)
}

// reportOutcomes prints one line per outcome and fails if any write did.
func reportOutcomes(outcomes []assoc.Outcome) error {
	failed := 0
	type row struct {
		Assoc  string `json:"assoc"`
		ProgID string `json:"progid"`
		Result string `json:"result"`
		Error  string `json:"error,omitempty"`
	}
	rows := make([]row, 0, len(outcomes))
	for _, o := range outcomes {
		r := row{Assoc: o.AssocID, ProgID: o.ProgID, Result: o.Result.String()}
		if o.Err != nil {
			r.Error = o.Err.Error()
			failed++
		}
		rows = append(rows, r)
	}

	if jsonOut {
		if err := printJSON(rows); err != nil {
			return err
		}
	} else {
		for _, r := range rows {
			if r.Error != "" {
				printInfo("✗ %s -> %s: %s\n", r.Assoc, r.ProgID, r.Error)
				continue
			}
			printInfo("✓ %s -> %s\n", r.Assoc, r.ProgID)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d association(s) failed", failed, len(outcomes))
	}
	return nil
}

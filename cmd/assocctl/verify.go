package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

var verifySID string

func init() {
	cmd := newVerifyCmd()
	cmd.Flags().StringVar(&verifySID, "sid", "", "User SID the record was written for (default: current user)")
	rootCmd.AddCommand(cmd)
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <assoc>...",
		Short: "Check stored UserChoice hashes",
		Long: `The verify command recomputes each stored hash from its ProgId and the
UserChoice key's last-write time and compares it with the stored value.

Example:
  assocctl verify .txt .pdf https`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
}

func runVerify(args []string) error {
	opts := newOptions()
	sid := verifySID
	if sid == "" && opts.User == nil {
		var err error
		if sid, err = resolveSID(""); err != nil {
			return err
		}
	}

	type row struct {
		Assoc  string `json:"assoc"`
		Result string `json:"result"`
		Error  string `json:"error,omitempty"`
	}
	rows := make([]row, 0, len(args))
	failed := 0
	for _, id := range args {
		res, err := assoc.VerifyStoredAssociationHash(id, sid, opts)
		r := row{Assoc: id, Result: res.String()}
		if err != nil {
			r.Error = err.Error()
		}
		if res != assoc.VerifyMatch {
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
				printInfo("%-12s %s (%s)\n", r.Assoc, r.Result, r.Error)
				continue
			}
			printInfo("%-12s %s\n", r.Assoc, r.Result)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d association(s) did not verify", failed, len(args))
	}
	return nil
}

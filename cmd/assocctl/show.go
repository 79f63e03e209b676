package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
	"github.com/joshuapare/userchoice/userchoice/reg"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <assoc>...",
		Short: "Show stored UserChoice records",
		Long: `The show command prints the stored ProgId, Hash and last-write time.

Example:
  assocctl show .txt https`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
}

func runShow(args []string) error {
	opts := newOptions()

	type row struct {
		Assoc     string `json:"assoc"`
		ProgID    string `json:"progid,omitempty"`
		Hash      string `json:"hash,omitempty"`
		LastWrite string `json:"last_write,omitempty"`
		Set       bool   `json:"set"`
	}
	rows := make([]row, 0, len(args))
	for _, id := range args {
		c, err := assoc.ReadChoice(id, opts)
		if errors.Is(err, reg.ErrNotExist) {
			rows = append(rows, row{Assoc: id})
			continue
		}
		if err != nil {
			return err
		}
		rows = append(rows, row{
			Assoc:     id,
			ProgID:    c.ProgID,
			Hash:      c.Hash,
			LastWrite: c.LastWrite.UTC().Format(time.RFC3339),
			Set:       true,
		})
	}

	if jsonOut {
		return printJSON(rows)
	}
	for _, r := range rows {
		if !r.Set {
			printInfo("%s: not set\n", r.Assoc)
			continue
		}
		printInfo("%s:\n  ProgId:     %s\n  Hash:       %s\n  Last write: %s\n", r.Assoc, r.ProgID, r.Hash, r.LastWrite)
	}
	return nil
}

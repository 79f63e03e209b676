package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

var (
	hashSID  string
	hashTime string
)

func init() {
	cmd := newHashCmd()
	cmd.Flags().StringVar(&hashSID, "sid", "", "User SID (default: current user)")
	cmd.Flags().StringVar(&hashTime, "time", "", "Timestamp, RFC 3339 (default: now)")
	rootCmd.AddCommand(cmd)
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <assoc> <progid>",
		Short: "Compute a UserChoice hash",
		Long: `The hash command prints the Hash value Windows expects for a record,
without touching the registry.

Example:
  assocctl hash .txt txtfile
  assocctl hash http ChromeHTML --sid S-1-5-21-1-2-3-1001 --time 2024-03-01T10:15:00Z`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(args)
		},
	}
}

func runHash(args []string) error {
	assocID, progID := args[0], args[1]
	sid, err := resolveSID(hashSID)
	if err != nil {
		return err
	}
	ts := time.Now()
	if hashTime != "" {
		ts, err = time.Parse(time.RFC3339, hashTime)
		if err != nil {
			return fmt.Errorf("invalid --time: %w", err)
		}
	}

	h, err := assoc.ComputeAssociationHash(assocID, sid, progID, ts)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(map[string]any{
			"assoc":  assocID,
			"progid": progID,
			"sid":    sid,
			"minute": ts.UTC().Truncate(time.Minute).Format(time.RFC3339),
			"hash":   h,
		})
	}
	printVerbose("input minute: %s\n", ts.UTC().Truncate(time.Minute).Format(time.RFC3339))
	printInfo("%s\n", h)
	return nil
}

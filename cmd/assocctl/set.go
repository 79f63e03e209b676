package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

var (
	setCheckProgID bool
	setNoNotify    bool
	setSkipVersion bool
	setThreshold   time.Duration
	setMaxAttempts int
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().BoolVar(&setCheckProgID, "check-progid", true, "Refuse ProgIDs not registered under HKEY_CLASSES_ROOT")
	cmd.Flags().BoolVar(&setNoNotify, "no-notify", false, "Do not broadcast the association change")
	cmd.Flags().BoolVar(&setSkipVersion, "skip-version-check", false, "Write even on Windows older than 10 1703")
	cmd.Flags().DurationVar(&setThreshold, "threshold", 0, "Time that must be left in the minute after hashing (default 1s)")
	cmd.Flags().IntVar(&setMaxAttempts, "attempts", 0, "Minute-boundary retry bound (default 3)")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <assoc> <progid>",
		Short: "Set the default handler for an extension or scheme",
		Long: `The set command writes a hashed UserChoice record for the current user.

Example:
  assocctl set .txt txtfile
  assocctl set https ChromeHTML
  assocctl set .log MyEditor.log --check-progid=false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
}

func runSet(args []string) error {
	assocID, progID := args[0], args[1]

	opts := newOptions()
	opts.DisableNotify = opts.DisableNotify || setNoNotify
	opts.SkipVersionCheck = opts.SkipVersionCheck || setSkipVersion
	opts.WriteThreshold = setThreshold
	opts.MaxAttempts = setMaxAttempts

	if setCheckProgID {
		ok, err := assoc.CheckProgIDExists(progID, opts)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", progID, err)
		}
		if !ok {
			return fmt.Errorf("ProgID %s is not registered (use --check-progid=false to write anyway)", progID)
		}
	}

	printVerbose("Setting %s to %s\n", assocID, progID)
	res, err := assoc.SetAssociationAndHash(assocID, progID, opts)

	if jsonOut {
		out := map[string]any{
			"assoc":  assocID,
			"progid": progID,
			"result": res.String(),
		}
		if err != nil {
			out["error"] = err.Error()
		}
		if jerr := printJSON(out); jerr != nil {
			return jerr
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to set %s (%s): %w", assocID, res, err)
	}
	printInfo("✓ %s now opens with %s\n", assocID, progID)
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

func init() {
	rootCmd.AddCommand(newApplyCmd())
}

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <plan.yaml>",
		Short: "Apply every association in a YAML plan",
		Long: `The apply command sets each association listed in a plan file:

  associations:
    - id: .txt
      progid: txtfile
    - id: https
      progid: ChromeHTML
  write_threshold: 2s
  max_attempts: 3
  notify: true

Example:
  assocctl apply defaults.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(args)
		},
	}
}

func runApply(args []string) error {
	plan, err := assoc.LoadPlan(args[0])
	if err != nil {
		return err
	}
	printVerbose("Applying %d association(s) from %s\n", len(plan.Associations), args[0])
	return reportOutcomes(assoc.Apply(plan, newOptions()))
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
	"github.com/joshuapare/userchoice/userchoice"
)

func init() {
	rootCmd.AddCommand(newPathCmd())
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <assoc>",
		Short: "Print the registry key of an association",
		Long: `The path command prints the association key below HKEY_CURRENT_USER.
Ids starting with a dot are extensions; anything else is a URI scheme.

Example:
  assocctl path .txt
  assocctl path mailto`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(args)
		},
	}
}

func runPath(args []string) error {
	assocID := args[0]
	if err := userchoice.ValidateAssocID(assocID); err != nil {
		return err
	}
	p := assoc.ComputeAssociationKeyRegistryPath(assocID, !userchoice.IsExtension(assocID))
	if jsonOut {
		return printJSON(map[string]any{"assoc": assocID, "path": p})
	}
	printInfo("HKEY_CURRENT_USER\\%s\n", p)
	return nil
}

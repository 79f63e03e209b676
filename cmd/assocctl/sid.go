package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "sid",
		Short: "Print the current user's SID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sid, err := assoc.CurrentUserSID()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(map[string]string{"sid": sid})
			}
			printInfo("%s\n", sid)
			return nil
		},
	})
}

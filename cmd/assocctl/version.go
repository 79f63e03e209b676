package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/internal/osver"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("assocctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		v := osver.Current()
		fmt.Printf("  os: %s (hashed UserChoice: %v)\n", v, v.SupportsUserChoiceHash())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

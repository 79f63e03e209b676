package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/pkg/assoc"
)

var exportUTF8 bool

func init() {
	cmd := newExportCmd()
	cmd.Flags().BoolVar(&exportUTF8, "utf8", false, "Write UTF-8 instead of UTF-16LE")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.reg> <assoc>...",
		Short: "Export UserChoice records to a .reg file",
		Long: `The export command saves the stored records of the given associations.
Use - as the file name to write to stdout.

Example:
  assocctl export backup.reg .txt .pdf https`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
}

func runExport(args []string) error {
	file, ids := args[0], args[1:]
	data, n, err := assoc.Export(ids, newOptions(), assoc.ExportOptions{UTF8: exportUTF8})
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if file == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	printInfo("Exported %d of %d association(s) to %s\n", n, len(ids), file)
	return nil
}

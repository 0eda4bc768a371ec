package main

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write the sorted GND identifiers found in the author table",
	Long: `Extract reads the author CSV, collects the distinct non-blank values of
the identifier columns, and writes them sorted to the identifier list,
one per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := extractIDs(loadConfig().Extraction, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

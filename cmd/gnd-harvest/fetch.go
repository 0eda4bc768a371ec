package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/gnd-harvest/internal/authors"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [identifiers...]",
	Short: "Fetch GND records and write the JSON and CSV dumps",
	Long: `Fetch retrieves the authority record for each identifier, one request
at a time, and writes the JSON and CSV dumps. Identifiers are taken from
the arguments or, when none are given, from the identifier list.
Failed identifiers are reported and skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ids := args
		if len(ids) == 0 {
			var err error
			ids, err = authors.ReadIDs(cfg.Extraction.IDsFile)
			if err != nil {
				return err
			}
		}
		return fetchAndWrite(cmd.Context(), ids, cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gnd-harvest CLI. With no
// subcommand it runs the whole harvest: extract identifiers from the
// author table, fetch each GND record, and write the JSON and CSV dumps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the gnd-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "gnd-harvest",
	Short: "Harvest GND authority records for an author table",
	Long: `gnd-harvest reads GND identifiers from an author CSV, fetches each
authority record from lobid.org one request at a time, and writes the
records as a JSON array and a flattened CSV table.

Run without a subcommand to perform every stage. The extract and fetch
subcommands run a single stage.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHarvest(cmd.Context(), loadConfig(), cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./gnd-harvest.yaml or ~/.config/gnd-harvest/config.yaml)")
	flags.String("authors", defaultAuthorsCSV, "author table to read GND identifiers from")
	flags.StringSlice("columns", defaultColumns, "author table columns holding GND identifiers")
	flags.String("ids", defaultIDsFile, "identifier list to write (extract) or read (fetch)")
	flags.String("json", defaultJSONFile, "JSON dump of fetched records")
	flags.String("url", defaultURLTemplate, "record URL template; {} is replaced by the identifier")
	flags.Duration("delay", defaultDelay, "pause after each successful fetch")
	flags.Duration("timeout", 0, "HTTP request timeout (0 means none)")
	flags.String("user-agent", defaultUserAgent, "User-Agent header for API requests")
	flags.String("db", "", "also mirror records into this SQLite database")
	flags.String("summary", "", "also write a YAML run summary to this file")

	for _, name := range configKeys {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gnd-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gnd-harvest"))
		}
	}

	viper.SetEnvPrefix("GND_HARVEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

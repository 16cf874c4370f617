/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/jobdeck/jobdeck/config"
	"github.com/jobdeck/jobdeck/internal/client/cli"
	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/spf13/cobra"
)

// clientCmd represents the client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Starts the interactive jobdeck client",
	Long: `Starts the interactive jobdeck client. The client restores any
persisted session, then accepts commands for logging in, applying to
jobs, and bookmarking them. Usage:

	jobdeck client
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		log := logging.Default()

		app := cli.NewApp(cfg.Client, log, os.Stdin, os.Stdout)
		app.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
}

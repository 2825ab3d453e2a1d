// Package root contains the root command for the application
package root

import (
	"fjacquet/yonder-ynab/internal/config"
	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/server"
	"fjacquet/yonder-ynab/internal/telegram"
	"fjacquet/yonder-ynab/internal/yonderparser"
	"fjacquet/yonder-ynab/internal/ynab"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "yonder-ynab",
		Short: "Import Yonder CSV exports into YNAB.",
		Long: `yonder-ynab imports transaction exports from the Yonder card app into YNAB.
It can convert an export to a YNAB-importable CSV, push it straight to the
YNAB API, or run as a service fed by a Telegram bot or an HTTP webhook.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to yonder-ynab!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Set the configured logger everywhere
			yonderparser.SetLogger(Log)
			ynab.SetLogger(Log)
			importer.SetLogger(Log)
			server.SetLogger(Log)
			telegram.SetLogger(Log)
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before processing")
}

// Package push handles one-shot imports of local files to the YNAB API
package push

import (
	"fmt"
	"os"

	"fjacquet/yonder-ynab/cmd/root"
	"fjacquet/yonder-ynab/internal/config"
	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/yonderparser"
	"fjacquet/yonder-ynab/internal/ynab"

	"github.com/spf13/cobra"
)

// Cmd represents the push command
var Cmd = &cobra.Command{
	Use:   "push",
	Short: "Import a Yonder CSV export straight to the YNAB API",
	Long: `Import a local Yonder CSV export into YNAB through the API, using the
same pipeline as the Telegram and webhook ingress paths.`,
	Run: pushFunc,
}

func pushFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Push command called")
	root.Log.Infof("Input Yonder CSV file: %s", root.SharedFlags.Input)

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("--input is required")
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.ValidateYNAB(); err != nil {
		root.Log.Fatalf("Invalid configuration: %v", err)
	}

	if root.SharedFlags.Validate {
		root.Log.Info("Validating Yonder CSV format...")
		valid, err := yonderparser.ValidateFormat(root.SharedFlags.Input)
		if err != nil {
			root.Log.Fatalf("Error validating file: %v", err)
		}
		if !valid {
			root.Log.Fatal("The file is not a valid Yonder CSV export")
		}
		root.Log.Info("Validation successful.")
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	client := ynab.NewClient(cfg.YNAB.APIKey).WithBaseURL(cfg.YNAB.BaseURL)
	imp := importer.New(client, cfg.YNAB.BudgetID, cfg.YNAB.AccountID)

	result, err := imp.Import(cmd.Context(), data)
	if err != nil {
		root.Log.Fatalf("Error importing transactions: %v", err)
	}

	fmt.Println(result.String())
}

// Package convert handles Yonder CSV file conversion commands
package convert

import (
	"fjacquet/yonder-ynab/cmd/root"
	"fjacquet/yonder-ynab/internal/yonderparser"
	"fjacquet/yonder-ynab/internal/ynab"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Yonder CSV export to a YNAB-importable CSV",
	Long: `Convert a Yonder CSV export to the YNAB File-Based Import format
(Date,Payee,Memo,Amount) for manual imports without an API token.`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called")
	root.Log.Infof("Input Yonder CSV file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output YNAB CSV file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Both --input and --output are required")
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

	transactions, err := yonderparser.ParseFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error parsing Yonder CSV file: %v", err)
	}

	// File-based imports carry no account id; YNAB infers it from the
	// account the file is imported into.
	batch := ynab.BuildTransactions(transactions, "")
	if err := ynab.WriteCSVFile(batch, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Error writing YNAB CSV file: %v", err)
	}

	root.Log.Info("Yonder to YNAB CSV conversion completed successfully!")
}

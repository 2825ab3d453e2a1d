// Package importer runs the Yonder-to-YNAB import pipeline: parse the CSV,
// map the rows, submit one batch to the API and summarize the outcome.
// Both ingress channels (Telegram document, HTTP webhook) and the CLI feed
// the same pipeline.
package importer

import (
	"bytes"
	"context"

	"github.com/sirupsen/logrus"

	"fjacquet/yonder-ynab/internal/models"
	"fjacquet/yonder-ynab/internal/yonderparser"
	"fjacquet/yonder-ynab/internal/ynab"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TransactionCreator is the slice of the YNAB client the importer needs.
type TransactionCreator interface {
	CreateTransactions(ctx context.Context, budgetID string, transactions []ynab.Transaction) (*ynab.TransactionsResponse, error)
}

// Importer holds the destination identifiers and the client. It keeps no
// state across imports; every call is a self-contained batch.
type Importer struct {
	client    TransactionCreator
	budgetID  string
	accountID string
}

// New creates an Importer targeting one budget and account.
func New(client TransactionCreator, budgetID, accountID string) *Importer {
	return &Importer{
		client:    client,
		budgetID:  budgetID,
		accountID: accountID,
	}
}

// Import parses raw Yonder CSV bytes and forwards the whole batch to YNAB.
// Sequencing is strict: the CSV is parsed completely and mapped completely
// before anything is submitted, so a malformed row on any line means no API
// call at all. A header-only file is a no-op success.
func (i *Importer) Import(ctx context.Context, data []byte) (models.ImportResult, error) {
	transactions, err := yonderparser.Parse(bytes.NewReader(data))
	if err != nil {
		return models.ImportResult{}, err
	}

	if len(transactions) == 0 {
		log.Info("CSV contained no data rows, nothing to import")
		return models.ImportResult{}, nil
	}

	batch := ynab.BuildTransactions(transactions, i.accountID)

	resp, err := i.client.CreateTransactions(ctx, i.budgetID, batch)
	if err != nil {
		return models.ImportResult{}, err
	}

	result := models.ImportResult{
		Imported:   len(resp.Data.TransactionIDs),
		Duplicates: len(resp.Data.DuplicateImportIDs),
	}

	log.WithFields(logrus.Fields{
		"imported":   result.Imported,
		"duplicates": result.Duplicates,
	}).Info("Import completed")

	return result, nil
}

package ynab

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"fjacquet/yonder-ynab/internal/models"
)

// CSVRow is one line of a YNAB-importable CSV file
// (File-Based Import format: Date,Payee,Memo,Amount).
// It uses struct tags for gocsv marshaling.
type CSVRow struct {
	Date   string `csv:"Date"`
	Payee  string `csv:"Payee"`
	Memo   string `csv:"Memo"`
	Amount string `csv:"Amount"`
}

// ToCSVRow converts an API transaction into its file-import equivalent.
// The milliunit amount is scaled back to a signed decimal with two places.
func ToCSVRow(tx Transaction) CSVRow {
	return CSVRow{
		Date:   tx.Date,
		Payee:  tx.PayeeName,
		Memo:   tx.Memo,
		Amount: models.FromMilliunits(tx.Amount).StringFixed(2),
	}
}

// WriteCSVFile writes transactions to a YNAB-importable CSV file. This is the
// offline alternative to the API client for users without an access token.
func WriteCSVFile(transactions []Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing YNAB CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]CSVRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, ToCSVRow(tx))
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		log.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithField("file", csvFile).Info("Successfully wrote YNAB CSV file")
	return nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

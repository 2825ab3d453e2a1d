// Package yonderparser provides functionality to parse Yonder CSV export files.
// It handles the extraction of transaction data from the fixed eight-column
// schema produced by the Yonder app.
package yonderparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/yonder-ynab/internal/models"
	"fjacquet/yonder-ynab/internal/parsererror"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// fieldCount is the number of columns in a Yonder CSV export:
// Date/Time of transaction, Description, Amount (GBP),
// Amount (in Charged Currency), Currency, Category, Debit or Credit, Country.
const fieldCount = 8

// timestampLayout matches the export's ISO-8601 local timestamps.
// time.Parse accepts the fractional seconds the export carries even though
// the layout does not name them.
const timestampLayout = "2006-01-02T15:04:05"

// Parse reads Yonder CSV data and returns one transaction per data row,
// in row order. The header row (line 1) is skipped by position only; its
// column names are not validated. A header-only input yields an empty
// slice. The first malformed row aborts the parse with a ParseError
// naming the offending line, so a bad file never produces a partial batch.
func Parse(r io.Reader) ([]models.YonderTransaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var transactions []models.YonderTransaction
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &parsererror.ParseError{
					Line:  csvErr.Line,
					Field: "record",
					Err:   csvErr.Err,
				}
			}
			return nil, fmt.Errorf("error reading CSV record: %w", err)
		}
		if line == 1 {
			// Header row, skipped by position.
			continue
		}

		tx, err := parseRecord(record, line)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	log.WithField("count", len(transactions)).Debug("Parsed Yonder CSV data")
	return transactions, nil
}

// parseRecord converts one CSV record into a YonderTransaction.
func parseRecord(record []string, line int) (models.YonderTransaction, error) {
	if len(record) != fieldCount {
		return models.YonderTransaction{}, &parsererror.ParseError{
			Line:  line,
			Field: "record",
			Err:   fmt.Errorf("expected %d fields, got %d", fieldCount, len(record)),
		}
	}

	dateTime, err := time.Parse(timestampLayout, record[0])
	if err != nil {
		return models.YonderTransaction{}, &parsererror.ParseError{
			Line:  line,
			Field: "date/time",
			Value: record[0],
			Err:   err,
		}
	}

	amountGBP, err := models.ParseAmount(record[2])
	if err != nil {
		return models.YonderTransaction{}, &parsererror.ParseError{
			Line:  line,
			Field: "amount (GBP)",
			Value: record[2],
			Err:   err,
		}
	}

	amountCharged, err := models.ParseAmount(record[3])
	if err != nil {
		return models.YonderTransaction{}, &parsererror.ParseError{
			Line:  line,
			Field: "amount (charged)",
			Value: record[3],
			Err:   err,
		}
	}

	direction, err := models.ParseDirection(record[6])
	if err != nil {
		return models.YonderTransaction{}, &parsererror.ParseError{
			Line:  line,
			Field: "direction",
			Value: record[6],
			Err:   err,
		}
	}

	return models.YonderTransaction{
		DateTime:      dateTime,
		Description:   record[1],
		AmountGBP:     amountGBP,
		AmountCharged: amountCharged,
		Currency:      record[4],
		Category:      record[5],
		Direction:     direction,
		Country:       record[7],
	}, nil
}

// ParseFile parses a Yonder CSV file on disk.
// This is the entry point used by the CLI commands.
func ParseFile(filePath string) ([]models.YonderTransaction, error) {
	log.WithField("file", filePath).Info("Parsing Yonder CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open Yonder CSV file")
		return nil, fmt.Errorf("error opening Yonder CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	transactions, err := Parse(file)
	if err != nil {
		log.WithError(err).Error("Failed to parse Yonder CSV file")
		return nil, err
	}

	log.WithField("count", len(transactions)).Info("Successfully parsed Yonder CSV file")
	return transactions, nil
}

// ValidateFormat checks whether the file structurally looks like a Yonder
// CSV export: the header row must carry exactly eight columns. Column
// names are deliberately not checked, matching the parser's skip-by-position
// policy.
func ValidateFormat(filePath string) (bool, error) {
	log.WithField("file", filePath).Info("Validating Yonder CSV format")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open file for validation")
		return false, fmt.Errorf("error opening file for validation: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		log.Info("File is empty")
		return false, nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to read CSV header")
		return false, fmt.Errorf("error reading CSV header: %w", err)
	}

	if len(header) != fieldCount {
		log.WithField("columns", len(header)).Info("Header column count does not match Yonder CSV format")
		return false, nil
	}

	log.Info("File looks like a valid Yonder CSV")
	return true, nil
}

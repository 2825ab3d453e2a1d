package ynab

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/yonder-ynab/internal/models"
)

func yonderTx(t *testing.T, ts, description, amount, category string, direction models.Direction) models.YonderTransaction {
	t.Helper()
	dateTime, err := time.Parse("2006-01-02T15:04:05", ts)
	require.NoError(t, err)
	amt, err := models.ParseAmount(amount)
	require.NoError(t, err)
	return models.YonderTransaction{
		DateTime:      dateTime,
		Description:   description,
		AmountGBP:     amt,
		AmountCharged: amt,
		Currency:      "GBP",
		Category:      category,
		Direction:     direction,
		Country:       "GBR",
	}
}

func TestBuildTransactionDebitFixture(t *testing.T) {
	tx := yonderTx(t, "2026-01-01T10:34:50.211697", "TFL - Transport for London", "3.00", "Transport", models.DirectionDebit)

	got := BuildTransaction(tx, "account-1")

	assert.Equal(t, "account-1", got.AccountID)
	assert.Equal(t, "2026-01-01", got.Date)
	assert.Equal(t, int64(-3000), got.Amount)
	assert.Equal(t, "TFL - Transport for London", got.PayeeName)
	assert.Contains(t, got.Memo, "Transport")
	assert.Equal(t, ClearedCleared, got.Cleared)
	assert.NotEmpty(t, got.ImportID)
}

func TestBuildTransactionSignConvention(t *testing.T) {
	debit := BuildTransaction(yonderTx(t, "2026-01-01T10:00:00", "Shop", "12.34", "Shopping", models.DirectionDebit), "a")
	credit := BuildTransaction(yonderTx(t, "2026-01-01T10:00:00", "Shop", "12.34", "Shopping", models.DirectionCredit), "a")

	assert.Equal(t, int64(-12340), debit.Amount)
	assert.Equal(t, int64(12340), credit.Amount)
	assert.Equal(t, -debit.Amount, credit.Amount)
}

func TestBuildTransactionRoundTrip(t *testing.T) {
	tx := yonderTx(t, "2026-03-15T23:59:59", "Late night corner shop", "7.25", "Groceries", models.DirectionDebit)
	got := BuildTransaction(tx, "a")

	// The calendar date and the absolute amount must be recoverable.
	assert.Equal(t, tx.DateTime.Format("2006-01-02"), got.Date)
	recovered := models.FromMilliunits(got.Amount).Abs()
	assert.True(t, recovered.Equal(tx.AmountGBP), "got %s, want %s", recovered, tx.AmountGBP)
}

func TestBuildTransactionMemo(t *testing.T) {
	withCategory := BuildTransaction(yonderTx(t, "2026-01-01T10:00:00", "TFL", "3.00", "Transport", models.DirectionDebit), "a")
	assert.Equal(t, "TFL (Transport)", withCategory.Memo)

	withoutCategory := BuildTransaction(yonderTx(t, "2026-01-01T10:00:00", "TFL", "3.00", "", models.DirectionDebit), "a")
	assert.Equal(t, "TFL", withoutCategory.Memo)
}

func TestBuildTransactionPayeeTruncation(t *testing.T) {
	longDescription := strings.Repeat("x", maxPayeeNameLen+50)
	got := BuildTransaction(yonderTx(t, "2026-01-01T10:00:00", longDescription, "3.00", "Misc", models.DirectionDebit), "a")

	assert.Len(t, got.PayeeName, maxPayeeNameLen)
	assert.Equal(t, longDescription[:maxPayeeNameLen], got.PayeeName)
}

func TestBuildTransactionsPreservesOrder(t *testing.T) {
	txs := []models.YonderTransaction{
		yonderTx(t, "2026-01-03T10:00:00", "Third", "3.00", "c", models.DirectionDebit),
		yonderTx(t, "2026-01-01T10:00:00", "First", "1.00", "a", models.DirectionDebit),
		yonderTx(t, "2026-01-02T10:00:00", "Second", "2.00", "b", models.DirectionCredit),
	}

	got := BuildTransactions(txs, "a")
	require.Len(t, got, 3)
	assert.Equal(t, "Third", got[0].PayeeName)
	assert.Equal(t, "First", got[1].PayeeName)
	assert.Equal(t, "Second", got[2].PayeeName)
}

func TestImportIDStable(t *testing.T) {
	tx := yonderTx(t, "2026-01-01T10:34:50.211697", "TFL - Transport for London", "3.00", "Transport", models.DirectionDebit)

	assert.Equal(t, ImportID(tx), ImportID(tx), "same row must yield the same import id")

	other := tx
	other.Description = "Something else"
	assert.NotEqual(t, ImportID(tx), ImportID(other), "description must contribute to the id")

	shifted := tx
	shifted.DateTime = tx.DateTime.Add(time.Second)
	assert.NotEqual(t, ImportID(tx), ImportID(shifted), "timestamp must contribute to the id")

	repriced := tx
	repriced.AmountGBP = decimal.RequireFromString("4.00")
	assert.NotEqual(t, ImportID(tx), ImportID(repriced), "amount must contribute to the id")
}

func TestImportIDLength(t *testing.T) {
	txs := []models.YonderTransaction{
		yonderTx(t, "2026-01-01T10:34:50.211697", "TFL - Transport for London", "3.00", "Transport", models.DirectionDebit),
		yonderTx(t, "2026-12-31T23:59:59.999999", strings.Repeat("very long description ", 20), "123456.78", "Misc", models.DirectionCredit),
	}

	for _, tx := range txs {
		id := ImportID(tx)
		assert.Less(t, len(id), maxImportIDLen, "import_id %q must be shorter than %d characters", id, maxImportIDLen)
	}
}

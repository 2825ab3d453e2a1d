package ynab

import (
	"fmt"
	"hash/fnv"

	"fjacquet/yonder-ynab/internal/models"
)

// Limits from the YNAB create-transactions contract.
const (
	// maxPayeeNameLen is the maximum payee_name length accepted by the API.
	maxPayeeNameLen = 200
	// maxMemoLen is the maximum memo length accepted by the API.
	maxMemoLen = 500
	// maxImportIDLen is the maximum import_id length accepted by the API.
	maxImportIDLen = 36
)

// dateLayout is the calendar-date format the API expects; YNAB works with
// dates, not instants.
const dateLayout = "2006-01-02"

// BuildTransaction maps one Yonder row onto a YNAB transaction.
//
// Sign convention: YNAB treats outflows as negative, so a Debit row maps to
// a negative amount and a Credit row to a positive one. The GBP amount is
// scaled to integer milliunits. The timestamp is truncated to its calendar
// date; the export's timestamps are already local to the account.
func BuildTransaction(tx models.YonderTransaction, accountID string) Transaction {
	amount := models.Milliunits(tx.AmountGBP)
	if tx.Direction == models.DirectionDebit {
		amount = -amount
	}

	memo := tx.Description
	if tx.Category != "" {
		memo = fmt.Sprintf("%s (%s)", tx.Description, tx.Category)
	}

	return Transaction{
		AccountID: accountID,
		Date:      tx.DateTime.Format(dateLayout),
		Amount:    amount,
		PayeeName: truncateRunes(tx.Description, maxPayeeNameLen),
		Memo:      truncateRunes(memo, maxMemoLen),
		Cleared:   ClearedCleared,
		ImportID:  ImportID(tx),
	}
}

// BuildTransactions maps a whole batch, preserving row order.
func BuildTransactions(txs []models.YonderTransaction, accountID string) []Transaction {
	result := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		result = append(result, BuildTransaction(tx, accountID))
	}
	return result
}

// ImportID derives a stable dedup key from the row's timestamp, amount and
// description. Re-submitting the same file yields identical ids, which YNAB
// reports back as duplicate_import_ids instead of creating transactions
// again. The id must stay under the API's 36-character limit, so the
// description contributes a short hash rather than its text.
func ImportID(tx models.YonderTransaction) string {
	h := fnv.New32a()
	h.Write([]byte(tx.Description))
	return fmt.Sprintf("YN:%s:%d:%06x",
		tx.AmountGBP.String(),
		tx.DateTime.UnixMilli(),
		h.Sum32()&0xffffff)
}

// truncateRunes truncates s to at most n runes, keeping multi-byte
// characters intact.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Package ynab provides the client and the mapping logic for the YNAB
// create-transactions endpoint (https://api.ynab.com/v1#/Transactions).
package ynab

// Transaction is a single transaction in a create-transactions request.
type Transaction struct {
	AccountID string `json:"account_id"`
	Date      string `json:"date"`
	Amount    int64  `json:"amount"`
	PayeeName string `json:"payee_name,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Cleared   string `json:"cleared,omitempty"`
	ImportID  string `json:"import_id,omitempty"`
}

// ClearedStatus values accepted by the API.
const (
	ClearedCleared    = "cleared"
	ClearedUncleared  = "uncleared"
	ClearedReconciled = "reconciled"
)

// TransactionsPayload is the request body for POST /budgets/{budget_id}/transactions.
type TransactionsPayload struct {
	Transactions []Transaction `json:"transactions"`
}

// TransactionsResponse is the subset of the create-transactions response the
// importer needs: what was created and what YNAB skipped as a duplicate
// import id.
type TransactionsResponse struct {
	Data struct {
		TransactionIDs     []string `json:"transaction_ids"`
		DuplicateImportIDs []string `json:"duplicate_import_ids"`
	} `json:"data"`
}

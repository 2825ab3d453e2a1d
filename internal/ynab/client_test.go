package ynab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactions(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload TransactionsPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"transaction_ids":["id-1","id-2"],"duplicate_import_ids":["dup-1"]}}`))
	}))
	defer server.Close()

	client := NewClient("secret-token").WithBaseURL(server.URL)
	resp, err := client.CreateTransactions(context.Background(), "budget-1", []Transaction{
		{AccountID: "a", Date: "2026-01-01", Amount: -3000},
		{AccountID: "a", Date: "2026-01-02", Amount: 1000},
	})
	require.NoError(t, err)

	assert.Equal(t, "/budgets/budget-1/transactions", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Len(t, gotPayload.Transactions, 2)
	assert.Equal(t, 2, len(resp.Data.TransactionIDs))
	assert.Equal(t, 1, len(resp.Data.DuplicateImportIDs))
}

func TestCreateTransactionsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"id":"401","name":"unauthorized"}}`))
	}))
	defer server.Close()

	client := NewClient("bad-token").WithBaseURL(server.URL)
	_, err := client.CreateTransactions(context.Background(), "budget-1", nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "unauthorized")
}

func TestCreateTransactionsErrorBodyTruncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer server.Close()

	client := NewClient("token").WithBaseURL(server.URL)
	_, err := client.CreateTransactions(context.Background(), "budget-1", nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.LessOrEqual(t, len(apiErr.Body), maxErrorBodyLen+3)
}

func TestCreateTransactionsTransportError(t *testing.T) {
	client := NewClient("token").WithBaseURL("http://127.0.0.1:0")
	_, err := client.CreateTransactions(context.Background(), "budget-1", nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "token", "transport errors must not leak the token")
}

package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultBaseURL is the production YNAB API endpoint.
const DefaultBaseURL = "https://api.ynab.com/v1"

// maxErrorBodyLen bounds how much of an error response body is kept in an
// APIError, so replies relayed to the user stay short.
const maxErrorBodyLen = 512

// APIError is returned when YNAB answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ynab api returned status %d: %s", e.StatusCode, e.Body)
}

// Client is a minimal YNAB API client scoped to the create-transactions call.
// It performs no retries; retry policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client authenticating with the given personal access token.
func NewClient(token string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests and
// self-hosted proxies.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// CreateTransactions submits one batched create-transactions call for the
// given budget. The whole batch goes out in a single request so YNAB can
// report created vs duplicate-skipped rows in one response.
func (c *Client) CreateTransactions(ctx context.Context, budgetID string, transactions []Transaction) (*TransactionsResponse, error) {
	payload := TransactionsPayload{Transactions: transactions}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding transactions payload: %w", err)
	}

	url := fmt.Sprintf("%s/budgets/%s/transactions", c.baseURL, budgetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	log.WithFields(logrus.Fields{
		"budget": budgetID,
		"count":  len(transactions),
	}).Info("Submitting transactions to YNAB")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling YNAB API: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading YNAB response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Error("YNAB API rejected the batch")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBodyLen),
		}
	}

	var result TransactionsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("error decoding YNAB response: %w", err)
	}

	log.WithFields(logrus.Fields{
		"created":    len(result.Data.TransactionIDs),
		"duplicates": len(result.Data.DuplicateImportIDs),
	}).Info("YNAB accepted the batch")

	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

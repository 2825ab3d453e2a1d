package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.ynab.com/v1", cfg.YNAB.BaseURL)
	assert.Equal(t, "last-used", cfg.YNAB.BudgetID)
}

func TestInitializeConfigSecretsFromEnv(t *testing.T) {
	t.Setenv("YNAB_API_KEY", "ynab-secret")
	t.Setenv("YNAB_BUDGET_ID", "budget-1")
	t.Setenv("YNAB_ACCOUNT_ID", "5e2ce1a8-91cf-46e8-9f0a-2f6bb08c0e1b")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-secret")
	t.Setenv("WEBHOOK_API_KEY", "hook-secret")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "ynab-secret", cfg.YNAB.APIKey)
	assert.Equal(t, "budget-1", cfg.YNAB.BudgetID)
	assert.Equal(t, "5e2ce1a8-91cf-46e8-9f0a-2f6bb08c0e1b", cfg.YNAB.AccountID)
	assert.Equal(t, "bot-secret", cfg.Telegram.BotToken)
	assert.Equal(t, "hook-secret", cfg.Webhook.APIKey)
}

func TestInitializeConfigRejectsBadAccountID(t *testing.T) {
	t.Setenv("YNAB_ACCOUNT_ID", "not-a-uuid")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account_id")
}

func TestInitializeConfigRejectsBadLogLevel(t *testing.T) {
	t.Setenv("YONDER_LOG_LEVEL", "chatty")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestValidateYNAB(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.ValidateYNAB())

	cfg.YNAB.APIKey = "key"
	assert.Error(t, cfg.ValidateYNAB())

	cfg.YNAB.BudgetID = "last-used"
	assert.Error(t, cfg.ValidateYNAB())

	cfg.YNAB.AccountID = "5e2ce1a8-91cf-46e8-9f0a-2f6bb08c0e1b"
	assert.NoError(t, cfg.ValidateYNAB())
}

func TestValidateIngressSecrets(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.ValidateTelegram())
	assert.Error(t, cfg.ValidateWebhook())

	cfg.Telegram.BotToken = "bot"
	cfg.Webhook.APIKey = "hook"
	assert.NoError(t, cfg.ValidateTelegram())
	assert.NoError(t, cfg.ValidateWebhook())
}

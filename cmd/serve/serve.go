// Package serve runs the HTTP ingress: the CSV webhook and, when a bot
// token is configured, the Telegram webhook.
package serve

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"fjacquet/yonder-ynab/cmd/root"
	"fjacquet/yonder-ynab/internal/config"
	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/server"
	"fjacquet/yonder-ynab/internal/telegram"
	"fjacquet/yonder-ynab/internal/ynab"
)

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook HTTP server",
	Long: `Run the HTTP server exposing POST /import for authenticated CSV uploads
and POST /telegram/<token> as the Telegram webhook endpoint.`,
	Run: serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.ValidateYNAB(); err != nil {
		root.Log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.ValidateWebhook(); err != nil {
		root.Log.Fatalf("Invalid configuration: %v", err)
	}

	client := ynab.NewClient(cfg.YNAB.APIKey).WithBaseURL(cfg.YNAB.BaseURL)
	imp := importer.New(client, cfg.YNAB.BudgetID, cfg.YNAB.AccountID)

	var tg *telegram.Handler
	if cfg.Telegram.BotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			root.Log.Fatalf("Error initializing Telegram bot: %v", err)
		}
		tg = telegram.NewHandler(api, cfg.Telegram.BotToken, imp)
		root.Log.Infof("Telegram webhook enabled for @%s", api.Self.UserName)
	} else {
		root.Log.Info("No Telegram bot token configured, serving CSV webhook only")
	}

	srv := server.New(imp, cfg.Webhook.APIKey, tg, cfg.Telegram.BotToken)
	if err := srv.Run(cfg.Server.Addr); err != nil {
		root.Log.Fatalf("HTTP server failed: %v", err)
	}
}

// Package bot runs the Telegram ingress in long-polling mode, for
// deployments without a public URL.
package bot

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"fjacquet/yonder-ynab/cmd/root"
	"fjacquet/yonder-ynab/internal/config"
	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/telegram"
	"fjacquet/yonder-ynab/internal/ynab"
)

// Cmd represents the bot command
var Cmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with long polling",
	Long: `Run the Telegram bot using long polling. Documents sent to the bot are
imported into YNAB and the outcome is posted back to the chat.`,
	Run: botFunc,
}

func botFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	if err := cfg.ValidateTelegram(); err != nil {
		root.Log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.ValidateYNAB(); err != nil {
		root.Log.Fatalf("Invalid configuration: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		root.Log.Fatalf("Error initializing Telegram bot: %v", err)
	}
	api.Debug = false

	client := ynab.NewClient(cfg.YNAB.APIKey).WithBaseURL(cfg.YNAB.BaseURL)
	imp := importer.New(client, cfg.YNAB.BudgetID, cfg.YNAB.AccountID)
	handler := telegram.NewHandler(api, cfg.Telegram.BotToken, imp)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	root.Log.Infof("Bot started as @%s", api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			root.Log.Info("Shutting down")
			return
		case upd := <-updates:
			handler.HandleUpdate(ctx, upd)
		}
	}
}

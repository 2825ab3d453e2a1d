// Package telegram implements the chat ingress: a bot that accepts Yonder
// CSV exports as document attachments and replies with the import outcome.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const helpReply = "Send a Yonder CSV export as a document and I will import it into YNAB."

// maxDocumentBytes caps how much of an attached document is read.
const maxDocumentBytes = 10 << 20

// BotAPI is the slice of the Telegram Bot API the handler uses.
// *tgbotapi.BotAPI satisfies it.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// Handler processes inbound Telegram updates. It is shared by the
// long-polling bot and the webhook ingress.
type Handler struct {
	api        BotAPI
	token      string
	importer   *importer.Importer
	httpClient *http.Client
}

// NewHandler creates a Handler. The token is needed to build document
// download links against the Bot API file endpoint.
func NewHandler(api BotAPI, token string, imp *importer.Importer) *Handler {
	return &Handler{
		api:      api,
		token:    token,
		importer: imp,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HandleUpdate handles one inbound update. Non-document messages get a help
// reply; documents run through the import pipeline and the outcome, success
// or failure, is relayed to the originating chat. Errors never escape this
// boundary.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message

	if msg.Document == nil {
		h.reply(msg.Chat.ID, helpReply)
		return
	}

	log.WithFields(logrus.Fields{
		"chat": msg.Chat.ID,
		"file": msg.Document.FileName,
	}).Info("Received document")

	result, err := h.importDocument(ctx, msg.Document.FileID)
	if err != nil {
		h.reply(msg.Chat.ID, fmt.Sprintf("Failed to import transactions:\n\n%v", err))
		return
	}

	h.reply(msg.Chat.ID, result.String())
}

// importDocument downloads the attached file and runs the import pipeline.
func (h *Handler) importDocument(ctx context.Context, fileID string) (models.ImportResult, error) {
	file, err := h.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("error resolving document on Telegram: %w", err)
	}

	data, err := h.download(ctx, file.Link(h.token))
	if err != nil {
		return models.ImportResult{}, err
	}

	return h.importer.Import(ctx, data)
}

// download fetches the document bytes. The download URL embeds the bot
// token, so transport errors are reported without the underlying error text
// to keep the token out of chat replies.
func (h *Handler) download(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("error building download request")
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		log.Error("Failed to download document from Telegram")
		return nil, fmt.Errorf("error downloading document from Telegram")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading document from Telegram (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading document from Telegram")
	}
	return data, nil
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.WithError(err).WithField("chat", chatID).Error("Failed to send reply")
	}
}

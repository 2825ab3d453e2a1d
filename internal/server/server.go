// Package server exposes the HTTP ingress: an authenticated webhook that
// accepts raw Yonder CSV bodies, and optionally the Telegram webhook.
package server

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"fjacquet/yonder-ynab/internal/importer"
	"fjacquet/yonder-ynab/internal/parsererror"
	"fjacquet/yonder-ynab/internal/telegram"
	"fjacquet/yonder-ynab/internal/ynab"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// maxBodyBytes caps the accepted CSV body size.
const maxBodyBytes = 10 << 20

// Server wires the webhook routes onto a gin engine.
type Server struct {
	engine     *gin.Engine
	importer   *importer.Importer
	webhookKey string
	telegram   *telegram.Handler
	botToken   string
}

// New creates a Server. The Telegram handler is optional; when nil only the
// CSV webhook is exposed.
func New(imp *importer.Importer, webhookKey string, tg *telegram.Handler, botToken string) *Server {
	s := &Server{
		engine:     gin.New(),
		importer:   imp,
		webhookKey: webhookKey,
		telegram:   tg,
		botToken:   botToken,
	}

	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/import", s.requireAPIKey(), s.handleImport)
	if tg != nil {
		s.engine.POST("/telegram/:token", s.handleTelegram)
	}

	return s
}

// Router exposes the engine for tests and custom listeners.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	log.WithField("addr", addr).Info("Starting HTTP server")
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireAPIKey authenticates webhook callers against the pre-shared key,
// supplied either as an X-API-Key header or an api_key query parameter.
// It fails closed: a missing or mismatched key rejects the request before
// any of the body is processed.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.webhookKey == "" {
			log.Warn("Webhook API key is not configured, rejecting request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "webhook API key is not set"})
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(s.webhookKey)) != 1 {
			log.Warn("Webhook call with invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}

// handleImport reads the request body as Yonder CSV and runs the import
// pipeline. Parse failures map to 400 with line detail, destination and
// transport failures to 502. Nothing is retried here.
func (s *Server) handleImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	result, err := s.importer.Import(c.Request.Context(), body)
	if err != nil {
		var parseErr *parsererror.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
			return
		}
		var apiErr *ynab.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
			return
		}
		log.WithError(err).Error("Import failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to import transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": result.String()})
}

// handleTelegram receives Telegram webhook updates. The path token must
// match the bot token, which is the secret Telegram embeds in the webhook
// URL it was registered with.
func (s *Server) handleTelegram(c *gin.Context) {
	token := c.Param("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.botToken)) != 1 {
		log.Warn("Telegram webhook call with invalid path token")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	s.telegram.HandleUpdate(c.Request.Context(), update)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// README: Telegram webhook handler; normalizes updates into dialogue turns.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	applog "saina/internal/log"
)

// Replier delivers the reply back to the originating chat.
type Replier interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

type WebhookHandler struct {
	dialogue Dialogue
	replier  Replier
	botToken string
	log      zerolog.Logger
}

func NewWebhookHandler(dialogue Dialogue, replier Replier, botToken string) *WebhookHandler {
	return &WebhookHandler{
		dialogue: dialogue,
		replier:  replier,
		botToken: botToken,
		log:      applog.Component("webhook"),
	}
}

// telegramUpdate is the slice of the Bot API update envelope the core needs.
type telegramUpdate struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// Handle processes POST /telegram/:token. Telegram is always answered with
// 200 {"ok":true} once the token matches; failures are logged, never
// surfaced, so Telegram does not retry a turn we already ran.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if c.Param("token") != h.botToken {
		c.Status(http.StatusNotFound)
		return
	}

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		writeError(c, http.StatusBadRequest, "invalid update")
		return
	}

	// Non-text updates (joins, stickers, edits) are acknowledged and ignored.
	if update.Message == nil || update.Message.Text == "" {
		writeJSON(c, http.StatusOK, gin.H{"ok": true})
		return
	}

	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	reply, err := h.dialogue.ProcessTurn(c.Request.Context(), chatID, update.Message.Text)
	if err != nil {
		h.log.Error().Err(err).Str("chat_id", chatID).Msg("dialogue turn failed")
		writeJSON(c, http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.replier.SendMessage(c.Request.Context(), chatID, reply); err != nil {
		h.log.Error().Err(err).Str("chat_id", chatID).Msg("reply delivery failed")
	}

	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}

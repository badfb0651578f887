// README: Transport-agnostic chat handler for one dialogue turn.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Dialogue runs one conversation turn and returns the reply text.
type Dialogue interface {
	ProcessTurn(ctx context.Context, conversationID, text string) (string, error)
}

type ChatHandler struct {
	dialogue Dialogue
}

func NewChatHandler(dialogue Dialogue) *ChatHandler {
	return &ChatHandler{dialogue: dialogue}
}

type chatReq struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.ConversationID = strings.TrimSpace(req.ConversationID)
	if req.ConversationID == "" || strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing conversation_id or message")
		return
	}

	reply, err := h.dialogue.ProcessTurn(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(c, http.StatusOK, map[string]any{"reply": reply})
}

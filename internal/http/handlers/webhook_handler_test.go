// README: Webhook and chat handler tests.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeDialogue struct {
	lastID   string
	lastText string
	reply    string
	err      error
	calls    int
}

func (f *fakeDialogue) ProcessTurn(_ context.Context, conversationID, text string) (string, error) {
	f.calls++
	f.lastID = conversationID
	f.lastText = text
	return f.reply, f.err
}

type fakeReplier struct {
	chatID string
	text   string
	err    error
}

func (f *fakeReplier) SendMessage(_ context.Context, chatID, text string) error {
	f.chatID = chatID
	f.text = text
	return f.err
}

func newTestRouter(dialogue *fakeDialogue, replier *fakeReplier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	webhook := NewWebhookHandler(dialogue, replier, "secret-token")
	router.POST("/telegram/:token", webhook.Handle)
	chat := NewChatHandler(dialogue)
	router.POST("/api/chat", chat.Chat)
	return router
}

func TestWebhookRunsTurnAndReplies(t *testing.T) {
	dialogue := &fakeDialogue{reply: "سلام"}
	replier := &fakeReplier{}
	router := newTestRouter(dialogue, replier)

	body := `{"message":{"chat":{"id":12345},"text":"پرواز از شیراز به دبی"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram/secret-token", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if dialogue.lastID != "12345" || dialogue.lastText != "پرواز از شیراز به دبی" {
		t.Errorf("turn = (%q, %q)", dialogue.lastID, dialogue.lastText)
	}
	if replier.chatID != "12345" || replier.text != "سلام" {
		t.Errorf("reply = (%q, %q)", replier.chatID, replier.text)
	}

	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp["ok"] {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestWebhookRejectsWrongToken(t *testing.T) {
	dialogue := &fakeDialogue{}
	router := newTestRouter(dialogue, &fakeReplier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram/wrong", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if dialogue.calls != 0 {
		t.Error("dialogue ran despite bad token")
	}
}

func TestWebhookIgnoresNonTextUpdates(t *testing.T) {
	dialogue := &fakeDialogue{}
	router := newTestRouter(dialogue, &fakeReplier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram/secret-token", strings.NewReader(`{"message":{"chat":{"id":1}}}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if dialogue.calls != 0 {
		t.Error("dialogue ran for a non-text update")
	}
}

func TestWebhookAcksWhenTurnFails(t *testing.T) {
	// Telegram must never see an error, or it retries the same update.
	dialogue := &fakeDialogue{err: errors.New("redis down")}
	replier := &fakeReplier{}
	router := newTestRouter(dialogue, replier)

	body := `{"message":{"chat":{"id":7},"text":"hi"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram/secret-token", strings.NewReader(body))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if replier.text != "" {
		t.Error("reply sent despite failed turn")
	}
}

func TestChatEndpoint(t *testing.T) {
	dialogue := &fakeDialogue{reply: "پاسخ"}
	router := newTestRouter(dialogue, &fakeReplier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"conversation_id":"c1","message":"هتل در دبی"}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp["reply"] != "پاسخ" {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestChatEndpointValidation(t *testing.T) {
	dialogue := &fakeDialogue{}
	router := newTestRouter(dialogue, &fakeReplier{})

	cases := []string{
		`{"conversation_id":"","message":"hi"}`,
		`{"conversation_id":"c1","message":"  "}`,
		`not json`,
	}
	for _, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if dialogue.calls != 0 {
		t.Error("dialogue ran for invalid request")
	}
}

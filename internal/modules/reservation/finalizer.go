// README: Reservation finalizer; fans out to log sinks and agent notification, all best-effort.
package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	applog "saina/internal/log"
	"saina/internal/modules/session"
)

// LogStore records a finalized reservation.
type LogStore interface {
	Insert(ctx context.Context, e Entry) error
}

// AgentNotifier alerts a human agent about a new reservation.
type AgentNotifier interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Finalizer writes the reservation to every configured sink. Every sink is
// best-effort: failures are logged and swallowed, and the caller returns the
// user-facing confirmation regardless.
type Finalizer struct {
	store       LogStore
	webhookURL  string
	http        *http.Client
	notifier    AgentNotifier
	agentChatID string
	log         zerolog.Logger
}

// NewFinalizer wires the configured sinks. store, webhookURL, and notifier
// may each be zero-valued; missing sinks are skipped.
func NewFinalizer(store LogStore, webhookURL string, notifier AgentNotifier, agentChatID string, timeout time.Duration) *Finalizer {
	return &Finalizer{
		store:       store,
		webhookURL:  webhookURL,
		http:        &http.Client{Timeout: timeout},
		notifier:    notifier,
		agentChatID: agentChatID,
		log:         applog.Component("reservation"),
	}
}

// Finalize builds the log payload from the session and fans it out.
func (f *Finalizer) Finalize(ctx context.Context, sess session.Session) {
	entry := BuildEntry(sess)

	if f.store != nil {
		if err := f.store.Insert(ctx, entry); err != nil {
			f.log.Error().Err(err).Str("reservation_id", entry.ID).Msg("reservation insert failed")
		}
	}

	if f.webhookURL != "" {
		if err := f.postWebhook(ctx, entry); err != nil {
			f.log.Error().Err(err).Str("reservation_id", entry.ID).Msg("log webhook failed")
		}
	}

	if f.notifier != nil && f.agentChatID != "" {
		if err := f.notifier.SendMessage(ctx, f.agentChatID, agentMessage(entry)); err != nil {
			f.log.Error().Err(err).Str("reservation_id", entry.ID).Msg("agent notification failed")
		}
	}

	f.log.Info().Str("reservation_id", entry.ID).Str("category", entry.Category).Msg("reservation finalized")
}

func (f *Finalizer) postWebhook(ctx context.Context, entry Entry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func agentMessage(e Entry) string {
	return fmt.Sprintf(
		"رزرو جدید ثبت شد ✅\nدسته: %s\nنام: %s\nتلفن: %s\nمبدأ: %s\nمقصد: %s\nتاریخ: %s\nبزرگسال: %s | کودک: %s | نوزاد: %s",
		e.Category, e.Name, e.Phone, e.Origin, e.Destination, e.TravelDate,
		e.Adults, e.Children, e.Infants,
	)
}

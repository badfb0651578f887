// README: Finalizer and payload tests (placeholders, best-effort sinks).
package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saina/internal/modules/session"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestBuildEntryRendersPlaceholders(t *testing.T) {
	sess := session.Session{
		Intent:      session.IntentFlight,
		Origin:      strPtr("شیراز"),
		Destination: strPtr("دبی"),
		Adults:      intPtr(2),
	}
	e := BuildEntry(sess)

	if e.ID == "" {
		t.Error("entry id not generated")
	}
	if e.Category != "flight" {
		t.Errorf("category = %q", e.Category)
	}
	if e.Origin != "شیراز" || e.Destination != "دبی" {
		t.Errorf("locations = %q / %q", e.Origin, e.Destination)
	}
	if e.Adults != "2" {
		t.Errorf("adults = %q", e.Adults)
	}
	// Missing slots render as the placeholder, never blank.
	for name, got := range map[string]string{
		"name":     e.Name,
		"phone":    e.Phone,
		"date":     e.TravelDate,
		"children": e.Children,
		"infants":  e.Infants,
	} {
		if got != Placeholder {
			t.Errorf("%s = %q, want placeholder", name, got)
		}
	}
	if e.Confirmed != ConfirmedMark {
		t.Errorf("confirmed = %q", e.Confirmed)
	}
}

func TestBuildEntryUnclassifiedCategory(t *testing.T) {
	e := BuildEntry(session.Session{Intent: session.IntentUnknown})
	if e.Category != Placeholder {
		t.Errorf("category = %q, want placeholder", e.Category)
	}
}

type fakeNotifier struct {
	chatID string
	text   string
	err    error
}

func (f *fakeNotifier) SendMessage(_ context.Context, chatID, text string) error {
	f.chatID = chatID
	f.text = text
	return f.err
}

type failingStore struct{ calls int }

func (s *failingStore) Insert(context.Context, Entry) error {
	s.calls++
	return errors.New("db down")
}

func TestFinalizePostsWebhookPayload(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}))
	defer srv.Close()

	notifier := &fakeNotifier{}
	f := NewFinalizer(nil, srv.URL, notifier, "agent-chat", time.Second)
	f.Finalize(context.Background(), session.Session{
		Intent: session.IntentHotel,
		Origin: strPtr("تهران"),
	})

	if payload["category"] != "hotel" {
		t.Errorf("payload category = %v", payload["category"])
	}
	if payload["from"] != "تهران" {
		t.Errorf("payload from = %v", payload["from"])
	}
	if payload["to"] != Placeholder {
		t.Errorf("payload to = %v, want placeholder", payload["to"])
	}
	if notifier.chatID != "agent-chat" || notifier.text == "" {
		t.Errorf("agent not notified: %+v", notifier)
	}
}

func TestFinalizeSwallowsSinkFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := &failingStore{}
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	f := NewFinalizer(store, srv.URL, notifier, "agent-chat", time.Second)

	// Must not panic or surface any error; confirmation is unconditional.
	f.Finalize(context.Background(), session.Session{Intent: session.IntentFlight})

	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
}

func TestFinalizeSkipsUnconfiguredSinks(t *testing.T) {
	f := NewFinalizer(nil, "", nil, "", time.Second)
	f.Finalize(context.Background(), session.Session{})
}

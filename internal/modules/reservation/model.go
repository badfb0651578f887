// README: Reservation log entry and payload construction.
package reservation

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"saina/internal/modules/session"
)

// Placeholder marks a slot the user never provided. The log payload always
// carries every field; unknowns are rendered, never omitted.
const Placeholder = "نامشخص"

// ConfirmedMark is the mark written into the confirmation column.
const ConfirmedMark = "✅"

// Entry is one finalized reservation request, shaped like a sheet row: every
// field is rendered text so the payload is never blank.
type Entry struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Category    string    `json:"category"`
	Origin      string    `json:"from"`
	Destination string    `json:"to"`
	TravelDate  string    `json:"date"`
	Adults      string    `json:"adults"`
	Children    string    `json:"children"`
	Infants     string    `json:"infants"`
	Confirmed   string    `json:"confirmed"`
}

// BuildEntry renders the current session into a log entry. A reservation can
// fire mid-collection, so any slot may still be unknown here.
func BuildEntry(sess session.Session) Entry {
	category := Placeholder
	if sess.Intent.Recognized() {
		category = string(sess.Intent)
	}
	return Entry{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Name:        renderSlot(sess.ContactName),
		Phone:       renderSlot(sess.ContactPhone),
		Category:    category,
		Origin:      renderSlot(sess.Origin),
		Destination: renderSlot(sess.Destination),
		TravelDate:  renderSlot(sess.TravelDate),
		Adults:      renderCount(sess.Adults),
		Children:    renderCount(sess.Children),
		Infants:     renderCount(sess.Infants),
		Confirmed:   ConfirmedMark,
	}
}

func renderSlot(v *string) string {
	if v == nil || *v == "" {
		return Placeholder
	}
	return *v
}

func renderCount(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}

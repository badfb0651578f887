package ai

import (
	"context"

	"saina/internal/modules/session"
)

// Offer is one catalog record as fetched from the sheet webhook. The schema
// is opaque to the core; it is only rendered into the summary prompt.
type Offer = map[string]any

// Provider defines the language-understanding contract for the dialogue core.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type Provider interface {
	// Classify maps free text to a travel category. Malformed or unexpected
	// model output normalizes to IntentUnknown; classification never fails
	// the turn.
	Classify(ctx context.Context, text string) session.Intent

	// Extract pulls trip slots out of free text. On any model or parse
	// failure it returns an empty patch; extraction is best-effort and never
	// blocks the conversation.
	Extract(ctx context.Context, text string) session.SlotPatch

	// PromptMissing asks the model for a polite follow-up question covering
	// only the slots still missing from the session.
	PromptMissing(ctx context.Context, sess session.Session) (string, error)

	// Summarize asks the model for a short listing of the given offers,
	// ending with the reservation call-to-action.
	Summarize(ctx context.Context, offers []Offer, sess session.Session) (string, error)
}

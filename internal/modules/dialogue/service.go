// README: Dialogue orchestrator; per-turn state machine over the conversation session.
package dialogue

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"saina/internal/ai"
	applog "saina/internal/log"
	"saina/internal/modules/catalog"
	"saina/internal/modules/session"
)

// maxOffersShown caps how many catalog offers reach summarization, in
// catalog order.
const maxOffersShown = 3

// SessionStore is the per-conversation session registry.
type SessionStore interface {
	GetOrCreate(ctx context.Context, id string) (session.Session, error)
	Save(ctx context.Context, id string, sess session.Session) error
	Reset(ctx context.Context, id string) (session.Session, error)
}

// OfferFetcher returns catalog offers for a category.
type OfferFetcher interface {
	Fetch(ctx context.Context, category catalog.Category) ([]catalog.Offer, error)
}

// Finalizer records a confirmed reservation and alerts an agent.
type Finalizer interface {
	Finalize(ctx context.Context, sess session.Session)
}

// Service runs one dialogue turn at a time per conversation. Turns for the
// same conversation id are serialized; different conversations run in
// parallel.
type Service struct {
	sessions    SessionStore
	provider    ai.Provider
	offers      OfferFetcher
	finalizer   Finalizer
	callTimeout time.Duration
	log         zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(sessions SessionStore, provider ai.Provider, offers OfferFetcher, finalizer Finalizer, callTimeout time.Duration) *Service {
	return &Service{
		sessions:    sessions,
		provider:    provider,
		offers:      offers,
		finalizer:   finalizer,
		callTimeout: callTimeout,
		log:         applog.Component("dialogue"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// ProcessTurn runs the state machine for one inbound message and returns the
// reply text. An error is returned only when the session registry itself is
// unreachable; every external collaborator failure degrades to a fixed reply.
func (s *Service) ProcessTurn(ctx context.Context, conversationID, text string) (string, error) {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	// Reset command, before everything including the reservation keyword.
	if strings.EqualFold(strings.TrimSpace(text), ResetCommand) {
		if _, err := s.sessions.Reset(ctx, conversationID); err != nil {
			return "", err
		}
		return welcomeMessage, nil
	}

	sess, err := s.sessions.GetOrCreate(ctx, conversationID)
	if err != nil {
		return "", err
	}

	// Reservation keyword short-circuits the rest of the turn in any state.
	// The payload carries whatever is known; unknowns become placeholders.
	if strings.Contains(text, ReserveKeyword) {
		callCtx, cancel := s.callContext(ctx)
		s.finalizer.Finalize(callCtx, sess)
		cancel()

		sess.Reserved = true
		if err := s.sessions.Save(ctx, conversationID, sess); err != nil {
			return "", err
		}
		return confirmationMessage, nil
	}

	// Intent is classified once per session lifetime and never re-run.
	if sess.Intent == session.IntentUnset {
		callCtx, cancel := s.callContext(ctx)
		sess.Intent = s.provider.Classify(callCtx, text)
		cancel()

		if err := s.sessions.Save(ctx, conversationID, sess); err != nil {
			return "", err
		}
		s.log.Info().
			Str("conversation_id", conversationID).
			Str("intent", string(sess.Intent)).
			Msg("intent classified")
	}

	if !sess.Intent.Recognized() {
		return outOfScopeMessage, nil
	}

	callCtx, cancel := s.callContext(ctx)
	patch := s.provider.Extract(callCtx, text)
	cancel()

	sess = session.Merge(sess, patch)
	if err := s.sessions.Save(ctx, conversationID, sess); err != nil {
		return "", err
	}

	if !sess.ReadyToSearch() {
		return s.askForMissing(ctx, sess), nil
	}

	category, _ := catalog.CategoryForIntent(sess.Intent)

	callCtx, cancel = s.callContext(ctx)
	offers, err := s.offers.Fetch(callCtx, category)
	cancel()
	if err != nil {
		s.log.Error().Err(err).Str("category", string(category)).Msg("catalog fetch failed")
		return noDataMessage, nil
	}
	if len(offers) == 0 {
		return noDataMessage, nil
	}

	callCtx, cancel = s.callContext(ctx)
	summary, err := s.provider.Summarize(callCtx, catalog.Top(offers, maxOffersShown), sess)
	cancel()
	if err != nil || strings.TrimSpace(summary) == "" {
		s.log.Error().Err(err).Msg("offer summary failed")
		return noDataMessage, nil
	}
	return summary, nil
}

func (s *Service) askForMissing(ctx context.Context, sess session.Session) string {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	prompt, err := s.provider.PromptMissing(callCtx, sess)
	if err != nil || strings.TrimSpace(prompt) == "" {
		s.log.Warn().Err(err).Msg("missing-info prompt failed, using fallback")
		return missingInfoFallback
	}
	return prompt
}

func (s *Service) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.callTimeout)
}

// conversationLock returns the mutex owning the given conversation id.
func (s *Service) conversationLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

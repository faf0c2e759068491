package assistantService

import (
	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/internal/entity"
	contextPkg "PawPalGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// NavigateBack pops one level of navigation. Resolution order: restore the
// snapshot if one exists; otherwise restore a stored history that differs
// from the live log; otherwise collapse the thread back to the seed greeting;
// otherwise there is nothing left and the hosting surface should close.
func (s *assistantService) NavigateBack(ctx context.Context, sessionID string) (*assistant.BackResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	state, ok := s.store.get(sessionID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.closed {
		return nil, assistant.ErrSessionNotFound
	}

	sess := state.sess
	snap := sess.Snapshot
	closeHost := false

	switch {
	case snap != nil && snap.PreviousView != nil:
		// The snapshot is restored exactly as recorded. Undoing a
		// browse-more reset re-enters the chat view over a seed-only log,
		// which is the one place the view is not derived from log length.
		s.invalidatePendingLocked(state)
		sess.View = *snap.PreviousView
		if len(snap.PreviousMessages) > 0 {
			sess.Messages = snap.PreviousMessages
		}
		sess.Snapshot = nil

	case snap != nil && len(snap.PreviousMessages) > 0 && !sameHistory(snap.PreviousMessages, sess.Messages):
		s.invalidatePendingLocked(state)
		sess.Messages = snap.PreviousMessages
		sess.View = entity.ViewChat
		sess.Snapshot = nil

	case len(sess.Messages) > 1:
		s.invalidatePendingLocked(state)
		s.truncateToSeedLocked(state)
		sess.View = entity.ViewInitial
		sess.Snapshot = nil

	default:
		closeHost = true
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"view":       sess.View.String(),
		"close_host": closeHost,
	}).Debug("Back navigation resolved")

	return &assistant.BackResponse{
		CloseHost: closeHost,
		Session:   *s.sessionResponseLocked(state),
	}, nil
}

// ResetSession is the "browse more FAQs" action: the thread collapses to the
// seed greeting and the FAQ list is shown again, with the chat view recorded
// as the snapshot so back-navigation can return to it. Idempotent.
func (s *assistantService) ResetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	state, ok := s.store.get(sessionID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.closed {
		return nil, assistant.ErrSessionNotFound
	}

	s.invalidatePendingLocked(state)
	s.truncateToSeedLocked(state)

	previousView := entity.ViewChat
	state.sess.Snapshot = &entity.NavigationSnapshot{PreviousView: &previousView}
	state.sess.View = entity.ViewInitial
	state.sess.CurrentTopic = ""

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Info("Assistant session reset to FAQ browse")

	return s.sessionResponseLocked(state), nil
}

func (s *assistantService) truncateToSeedLocked(state *sessionState) {
	if len(state.sess.Messages) > 1 {
		state.sess.Messages = cloneMessages(state.sess.Messages[:1])
	}
}

// sameHistory reports whether two logs are materially the same: equal length
// and the same message ids in the same order.
func sameHistory(a, b []entity.Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

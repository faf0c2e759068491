package assistantService

import (
	"encoding/json"
	"fmt"
	"strings"

	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/internal/entity"
	contextPkg "PawPalGolang/pkg/context"
	"PawPalGolang/pkg/nlp"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// SendMessage runs a typed utterance through the full pipeline: input
// validation, help-intent shortcut, relevance check against the active topic,
// then the oracle lookup.
func (s *assistantService) SendMessage(ctx context.Context, sessionID string, text string) (*assistant.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	state, ok := s.store.get(sessionID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	if state.closed {
		state.mu.Unlock()
		return nil, assistant.ErrSessionNotFound
	}
	if state.sess.IsLoading {
		state.mu.Unlock()
		return nil, assistant.ErrSessionBusy
	}

	if !nlp.IsValid(text) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Debug("Dropping degenerate input")
		resp := s.sessionResponseLocked(state)
		state.mu.Unlock()
		return resp, nil
	}

	s.appendUserMessageLocked(state, text)
	state.sess.View = entity.ViewChat

	if nlp.IsHelpRequest(text) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Info("Help intent detected, short-circuiting to contact info")
		s.appendBotMessageLocked(state, contactInfoText, false, nil)
		resp := s.sessionResponseLocked(state)
		state.mu.Unlock()
		return resp, nil
	}

	if topic := state.sess.CurrentTopic; topic != "" && !nlp.IsRelated(text, topic) {
		s.handleOffTopicLocked(state, text)
		resp := s.sessionResponseLocked(state)
		state.mu.Unlock()
		return resp, nil
	}

	return s.askOracleLocked(ctx, state, text)
}

// SelectQuestion handles a curated question, either from the FAQ list or from
// a follow-up suggestion. The text is pre-validated content, so the input
// validator is skipped, and selecting a question always starts a new topic,
// so the relevance check is skipped too. The current view and log are
// snapshotted for back-navigation before the thread is replaced.
func (s *assistantService) SelectQuestion(ctx context.Context, sessionID string, question string) (*assistant.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(question) == "" {
		return nil, assistant.ErrEmptyQuestion
	}

	state, ok := s.store.get(sessionID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	if state.closed {
		state.mu.Unlock()
		return nil, assistant.ErrSessionNotFound
	}
	if state.sess.IsLoading {
		state.mu.Unlock()
		return nil, assistant.ErrSessionBusy
	}

	previousView := state.sess.View
	state.sess.Snapshot = &entity.NavigationSnapshot{
		PreviousView:     &previousView,
		PreviousMessages: cloneMessages(state.sess.Messages),
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"question":   question,
	}).Info("Question selected")

	s.appendUserMessageLocked(state, question)
	state.sess.View = entity.ViewChat

	if nlp.IsHelpRequest(question) {
		s.appendBotMessageLocked(state, contactInfoText, false, nil)
		resp := s.sessionResponseLocked(state)
		state.mu.Unlock()
		return resp, nil
	}

	return s.askOracleLocked(ctx, state, question)
}

// askOracleLocked is entered with the state lock held and releases it around
// the oracle round-trip, holding IsLoading as the re-entrancy guard for the
// duration. On success the answer pipeline replaces any pending follow-up
// message, records the answer and schedules fresh suggestions.
func (s *assistantService) askOracleLocked(ctx context.Context, state *sessionState, question string) (*assistant.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	sessionID := state.sess.ID

	state.sess.IsLoading = true
	gen := state.gen
	state.mu.Unlock()

	answerText, relevantInfo, answerErr := s.lookupAnswer(ctx, sessionID, question)

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.closed {
		return nil, assistant.ErrSessionNotFound
	}

	// Reset or back-navigation replaced the log while the lookup was out.
	// The answer belongs to the abandoned thread, so drop it; the loading
	// guard was already released (and may be held by a newer lookup).
	if state.gen != gen {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Debug("Discarding answer for an abandoned thread")
		return s.sessionResponseLocked(state), nil
	}

	state.sess.IsLoading = false

	if answerErr {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Warn("Oracle lookup failed, degrading to apology message")
		s.appendBotMessageLocked(state, answerText, true, nil)
		return s.sessionResponseLocked(state), nil
	}

	s.removeFollowUpOptionsLocked(state)
	s.appendBotMessageLocked(state, answerText, false, relevantInfo)
	state.sess.CurrentTopic = question

	s.schedule(state, taskFollowUp, func() {
		s.appendFollowUpOptionsLocked(state, nlp.Suggest(question))
	})

	return s.sessionResponseLocked(state), nil
}

// lookupAnswer resolves the question via the answer cache or the oracle. The
// returned bool marks a degraded (error) answer; oracle failures never
// propagate past this point.
func (s *assistantService) lookupAnswer(ctx context.Context, sessionID string, question string) (string, json.RawMessage, bool) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.answerCache != nil {
		if cached, err := s.answerCache.GetAnswer(ctx, question); err == nil && cached != "" {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
			}).Debug("Answer served from cache")
			return cached, nil, false
		}
	}

	answer, err := s.oracle.Ask(ctx, question, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Oracle call failed")
		return apologyText, nil, true
	}

	if s.answerCache != nil {
		if err := s.answerCache.SetAnswer(ctx, question, answer.Text, answerCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      err.Error(),
			}).Warn("Failed to cache answer")
		}
	}

	return answer.Text, answer.RelevantInfo, false
}

// handleOffTopicLocked answers an utterance that drifted off the active topic
// with a clarifying message naming the detected category of the new message,
// then offers the FAQ list after the usual delay.
func (s *assistantService) handleOffTopicLocked(state *sessionState, text string) {
	var clarification string
	if categoryID, ok := nlp.Classify(text); ok {
		if category, found := nlp.CategoryByID(categoryID); found {
			clarification = fmt.Sprintf(
				"It looks like you're asking about %s, which is a bit outside what we were discussing. You can pick a new question from the FAQ list.",
				category.Title,
			)
		}
	}
	if clarification == "" {
		clarification = "That seems to be about something different from what we were discussing. You can pick a new question from the FAQ list."
	}

	s.appendBotMessageLocked(state, clarification, false, nil)

	s.schedule(state, taskBrowseOffer, func() {
		s.appendBotMessageLocked(state, browseOfferText, false, nil)
	})
}

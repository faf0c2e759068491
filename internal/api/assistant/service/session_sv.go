package assistantService

import (
	"encoding/json"
	"sync"
	"time"

	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/internal/entity"
	contextPkg "PawPalGolang/pkg/context"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Scheduled-task keys, one pending task per key per session.
const (
	taskFollowUp    = "follow-up"
	taskBrowseOffer = "browse-offer"
)

// sessionState wraps a session with its lock and pending timers. All mutation
// of the wrapped session happens with mu held; timers re-acquire it when they
// fire and no-op once the session is closed. gen increments whenever the log
// is replaced out from under an in-flight operation, so a continuation that
// captured an older gen knows its result belongs to a log that no longer
// exists.
type sessionState struct {
	mu     sync.Mutex
	sess   *entity.Session
	timers map[string]*time.Timer
	gen    uint64
	closed bool
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*sessionState),
	}
}

func (st *sessionStore) add(state *sessionState) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[state.sess.ID] = state
}

func (st *sessionStore) get(sessionID string) (*sessionState, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	state, ok := st.sessions[sessionID]
	return state, ok
}

func (st *sessionStore) remove(sessionID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, sessionID)
}

func (s *assistantService) CreateSession(ctx context.Context) (*assistant.SessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate session ID")
		return nil, err
	}

	now := time.Now()
	seed, err := s.newMessage(entity.MessageKindBot, seedGreeting)
	if err != nil {
		return nil, err
	}

	state := &sessionState{
		sess: &entity.Session{
			ID:           sessionID,
			Messages:     []entity.Message{seed},
			View:         entity.ViewInitial,
			CreatedAt:    now,
			LastActivity: now,
		},
		timers: make(map[string]*time.Timer),
	}
	s.store.add(state)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Info("Assistant session created")

	state.mu.Lock()
	defer state.mu.Unlock()
	return s.sessionResponseLocked(state), nil
}

func (s *assistantService) GetSession(ctx context.Context, sessionID string) (*assistant.SessionResponse, error) {
	state, ok := s.store.get(sessionID)
	if !ok {
		return nil, assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.closed {
		return nil, assistant.ErrSessionNotFound
	}
	return s.sessionResponseLocked(state), nil
}

func (s *assistantService) CloseSession(ctx context.Context, sessionID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	state, ok := s.store.get(sessionID)
	if !ok {
		return assistant.ErrSessionNotFound
	}

	state.mu.Lock()
	state.closed = true
	s.cancelTimersLocked(state)
	state.mu.Unlock()

	s.store.remove(sessionID)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Info("Assistant session closed")

	return nil
}

// schedule runs fn after the configured follow-up delay, replacing any task
// pending under the same key. A non-positive delay runs fn inline, which keeps
// tests deterministic. Callers hold the state lock; fn runs with it held too.
func (s *assistantService) schedule(state *sessionState, key string, fn func()) {
	if s.followUpDelay <= 0 {
		fn()
		return
	}

	if old, ok := state.timers[key]; ok {
		old.Stop()
	}

	// A fired timer parked on the lock survives Stop, so the callback also
	// re-checks the generation it was scheduled under.
	gen := state.gen
	state.timers[key] = time.AfterFunc(s.followUpDelay, func() {
		state.mu.Lock()
		defer state.mu.Unlock()
		if state.closed || state.gen != gen {
			return
		}
		delete(state.timers, key)
		fn()
	})
}

// cancelTimersLocked drops every pending scheduled task. Called on close,
// reset and back-navigation so a stale timer can never touch a log it no
// longer belongs to.
func (s *assistantService) cancelTimersLocked(state *sessionState) {
	for key, timer := range state.timers {
		timer.Stop()
		delete(state.timers, key)
	}
}

// invalidatePendingLocked abandons everything still in flight for the session:
// pending timers are cancelled, an outstanding answer lookup will find the
// generation changed and drop its result, and the loading guard is released so
// the next message starts a fresh lookup.
func (s *assistantService) invalidatePendingLocked(state *sessionState) {
	state.gen++
	s.cancelTimersLocked(state)
	state.sess.IsLoading = false
}

func (s *assistantService) newMessage(kind entity.MessageKind, content string) (entity.Message, error) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Message{}, err
	}

	return entity.Message{
		ID:        id,
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	}, nil
}

func (s *assistantService) appendUserMessageLocked(state *sessionState, text string) {
	msg, err := s.newMessage(entity.MessageKindUser, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": state.sess.ID,
			"error":      err.Error(),
		}).Error("Failed to generate message ID")
		return
	}
	state.sess.Messages = append(state.sess.Messages, msg)
	state.sess.LastActivity = time.Now()
}

func (s *assistantService) appendBotMessageLocked(state *sessionState, text string, isError bool, relevantInfo json.RawMessage) {
	msg, err := s.newMessage(entity.MessageKindBot, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": state.sess.ID,
			"error":      err.Error(),
		}).Error("Failed to generate message ID")
		return
	}
	msg.IsError = isError
	msg.RelevantInfo = relevantInfo
	state.sess.Messages = append(state.sess.Messages, msg)
	state.sess.LastActivity = time.Now()
}

// appendFollowUpOptionsLocked appends the suggestions message, first removing
// any previous one: at most one follow-up-options message lives in the log.
func (s *assistantService) appendFollowUpOptionsLocked(state *sessionState, options []string) {
	s.removeFollowUpOptionsLocked(state)

	msg, err := s.newMessage(entity.MessageKindFollowUpOptions, followUpPrompt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": state.sess.ID,
			"error":      err.Error(),
		}).Error("Failed to generate message ID")
		return
	}
	msg.Options = options
	state.sess.Messages = append(state.sess.Messages, msg)
	state.sess.LastActivity = time.Now()
}

func (s *assistantService) removeFollowUpOptionsLocked(state *sessionState) {
	messages := state.sess.Messages[:0]
	for _, msg := range state.sess.Messages {
		if msg.Kind == entity.MessageKindFollowUpOptions {
			continue
		}
		messages = append(messages, msg)
	}
	state.sess.Messages = messages
}

func cloneMessages(messages []entity.Message) []entity.Message {
	cloned := make([]entity.Message, len(messages))
	copy(cloned, messages)
	return cloned
}

func (s *assistantService) sessionResponseLocked(state *sessionState) *assistant.SessionResponse {
	sess := state.sess

	messages := make([]assistant.MessageResponse, 0, len(sess.Messages))
	for _, msg := range sess.Messages {
		out := assistant.MessageResponse{
			ID:           msg.ID,
			Kind:         string(msg.Kind),
			Content:      msg.Content,
			Timestamp:    msg.Timestamp,
			Options:      msg.Options,
			RelevantInfo: msg.RelevantInfo,
			IsError:      msg.IsError,
		}
		if msg.Kind == entity.MessageKindFollowUpOptions {
			out.Actions = []string{assistant.ActionBrowseMoreFAQs, assistant.ActionReturnToParent}
		}
		messages = append(messages, out)
	}

	return &assistant.SessionResponse{
		SessionID:    sess.ID,
		View:         sess.View.String(),
		CurrentTopic: sess.CurrentTopic,
		IsLoading:    sess.IsLoading,
		Messages:     messages,
	}
}

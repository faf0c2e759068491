package assistantService

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/pkg/nlp"
	"PawPalGolang/pkg/oracle"
	"PawPalGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	mu      sync.Mutex
	queries []string
	answer  oracle.Answer
	err     error
	block   chan struct{}
}

func (o *stubOracle) Ask(_ context.Context, query string, _ string) (oracle.Answer, error) {
	o.mu.Lock()
	o.queries = append(o.queries, query)
	o.mu.Unlock()

	if o.block != nil {
		<-o.block
	}
	if o.err != nil {
		return oracle.Answer{}, o.err
	}
	return o.answer, nil
}

func (o *stubOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queries)
}

type stubCache struct {
	mu      sync.Mutex
	answers map[string]string
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{answers: make(map[string]string)}
}

func (c *stubCache) GetAnswer(_ context.Context, query string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if answer, ok := c.answers[query]; ok {
		return answer, nil
	}
	return "", errors.New("cache miss")
}

func (c *stubCache) SetAnswer(_ context.Context, query string, answer string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[query] = answer
	c.sets++
	return nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// newTestService wires the service with a zero follow-up delay so scheduled
// messages land synchronously.
func newTestService(t *testing.T, stub *stubOracle) IAssistantService {
	t.Helper()
	return NewAssistantService(newTestLogger(), stub, nil, utils.New(), 0)
}

func createSession(t *testing.T, svc IAssistantService) string {
	t.Helper()
	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	return session.SessionID
}

func messageKinds(session *assistant.SessionResponse) []string {
	kinds := make([]string, 0, len(session.Messages))
	for _, msg := range session.Messages {
		kinds = append(kinds, msg.Kind)
	}
	return kinds
}

func TestCreateSessionStartsInitial(t *testing.T) {
	svc := newTestService(t, &stubOracle{answer: oracle.Answer{Text: "ok"}})

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "initial", session.View)
	assert.Empty(t, session.CurrentTopic)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "bot", session.Messages[0].Kind)
	assert.Equal(t, seedGreeting, session.Messages[0].Content)
}

func TestSelectQuestionEndToEnd(t *testing.T) {
	const question = "What are your room options for pets?"
	stub := &stubOracle{answer: oracle.Answer{Text: "We have standard kennels and deluxe suites."}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	session, err := svc.SelectQuestion(context.Background(), id, question)
	require.NoError(t, err)

	assert.Equal(t, "chat", session.View)
	assert.Equal(t, question, session.CurrentTopic)
	assert.Equal(t, []string{"bot", "user", "bot", "follow_up_options"}, messageKinds(session))

	answer := session.Messages[2]
	assert.Equal(t, "We have standard kennels and deluxe suites.", answer.Content)
	assert.False(t, answer.IsError)

	followUp := session.Messages[3]
	assert.Equal(t, nlp.Suggest(question), followUp.Options)
	assert.Equal(t, []string{assistant.ActionBrowseMoreFAQs, assistant.ActionReturnToParent}, followUp.Actions)

	assert.Equal(t, 1, stub.callCount())
}

func TestHelpShortCircuitsOracle(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "never used"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	session, err := svc.SendMessage(context.Background(), id, "help")
	require.NoError(t, err)

	assert.Equal(t, 0, stub.callCount())
	assert.Empty(t, session.CurrentTopic)
	assert.Equal(t, "chat", session.View)

	last := session.Messages[len(session.Messages)-1]
	assert.Equal(t, "bot", last.Kind)
	assert.Equal(t, contactInfoText, last.Content)
}

func TestHelpDoesNotDisturbActiveTopic(t *testing.T) {
	const question = "How much does grooming cost?"
	stub := &stubOracle{answer: oracle.Answer{Text: "Grooming starts at $30."}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, question)
	require.NoError(t, err)

	session, err := svc.SendMessage(context.Background(), id, "I want to speak with a human")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, question, session.CurrentTopic)
	assert.Equal(t, contactInfoText, session.Messages[len(session.Messages)-1].Content)
}

func TestInvalidInputIsSilentlyDropped(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "never used"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	for _, text := range []string{"", "a", "...", "aaaa"} {
		session, err := svc.SendMessage(context.Background(), id, text)
		require.NoError(t, err)
		assert.Equal(t, "initial", session.View, "input %q", text)
		assert.Len(t, session.Messages, 1, "input %q", text)
	}

	assert.Equal(t, 0, stub.callCount())
}

func TestOffTopicDriftGetsClarification(t *testing.T) {
	const question = "What are your room options for pets?"
	stub := &stubOracle{answer: oracle.Answer{Text: "Suites and kennels."}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, question)
	require.NoError(t, err)

	session, err := svc.SendMessage(context.Background(), id,
		"do you send invoices by postal mail every single month to owners")
	require.NoError(t, err)

	// One oracle call for the question, none for the drifted message.
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, question, session.CurrentTopic)

	// Clarification plus the delayed browse offer (inline at zero delay).
	browseOffer := session.Messages[len(session.Messages)-1]
	clarification := session.Messages[len(session.Messages)-2]
	assert.Equal(t, browseOfferText, browseOffer.Content)
	assert.Contains(t, clarification.Content, "FAQ list")
}

func TestRelatedFollowUpReachesOracle(t *testing.T) {
	const question = "What are your room options for pets?"
	stub := &stubOracle{answer: oracle.Answer{Text: "Suites and kennels."}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, question)
	require.NoError(t, err)

	session, err := svc.SendMessage(context.Background(), id,
		"do the rooms have enough space inside them for a large animal")
	require.NoError(t, err)

	assert.Equal(t, 2, stub.callCount())
	assert.Equal(t, "do the rooms have enough space inside them for a large animal", session.CurrentTopic)
}

func TestFollowUpOptionsMessageIsReplaced(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)
	session, err := svc.SelectQuestion(context.Background(), id, "What room sizes do you have?")
	require.NoError(t, err)

	followUps := 0
	for _, msg := range session.Messages {
		if msg.Kind == "follow_up_options" {
			followUps++
		}
	}
	assert.Equal(t, 1, followUps)
}

func TestOracleFailureDegradesToApology(t *testing.T) {
	stub := &stubOracle{err: errors.New("connection refused")}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	session, err := svc.SendMessage(context.Background(), id, "do you accept rabbits")
	require.NoError(t, err)

	last := session.Messages[len(session.Messages)-1]
	assert.True(t, last.IsError)
	assert.Equal(t, apologyText, last.Content)
	assert.Empty(t, session.CurrentTopic)
	assert.False(t, session.IsLoading)

	// The session stays usable after a failure.
	stub.err = nil
	stub.answer = oracle.Answer{Text: "Yes, rabbits are welcome."}
	session, err = svc.SendMessage(context.Background(), id, "do you accept rabbits")
	require.NoError(t, err)
	assert.Equal(t, "Yes, rabbits are welcome.", session.Messages[len(session.Messages)-2].Content)
}

func TestSecondMessageWhileLoadingIsRejected(t *testing.T) {
	block := make(chan struct{})
	stub := &stubOracle{answer: oracle.Answer{Text: "slow answer"}, block: block}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.SendMessage(context.Background(), id, "do you accept rabbits")
	}()

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(context.Background(), id)
		return err == nil && session.IsLoading
	}, time.Second, 5*time.Millisecond)

	_, err := svc.SendMessage(context.Background(), id, "and what about birds")
	assert.ErrorIs(t, err, assistant.ErrSessionBusy)

	close(block)
	<-done

	session, err := svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, session.IsLoading)
}

func TestStaleLookupDoesNotReleaseNewGuard(t *testing.T) {
	block := make(chan struct{})
	stub := &stubOracle{answer: oracle.Answer{Text: "the answer"}, block: block}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	first := make(chan struct{})
	go func() {
		defer close(first)
		_, _ = svc.SendMessage(context.Background(), id, "do you accept rabbits")
	}()

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(context.Background(), id)
		return err == nil && session.IsLoading
	}, time.Second, 5*time.Millisecond)

	// Resetting abandons the first lookup and releases the guard, so a new
	// message may start its own lookup while the old one is still out.
	_, err := svc.ResetSession(context.Background(), id)
	require.NoError(t, err)

	second := make(chan struct{})
	go func() {
		defer close(second)
		_, _ = svc.SendMessage(context.Background(), id, "which animals do you accept")
	}()

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(context.Background(), id)
		return err == nil && session.IsLoading
	}, time.Second, 5*time.Millisecond)

	close(block)
	<-first
	<-second

	// Only the second lookup may touch the log; the abandoned one must
	// neither append nor release the second one's guard out from under it.
	session, err := svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, session.IsLoading)
	assert.Equal(t, "which animals do you accept", session.CurrentTopic)

	var userMessages []string
	for _, msg := range session.Messages {
		if msg.Kind == "user" {
			userMessages = append(userMessages, msg.Content)
		}
	}
	assert.Equal(t, []string{"which animals do you accept"}, userMessages)
}

func TestAnswerCacheSkipsOracle(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "from oracle"}}
	cache := newStubCache()
	svc := NewAssistantService(newTestLogger(), stub, cache, utils.New(), 0)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "Do you groom cats as well?")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.callCount())
	assert.Equal(t, 1, cache.sets)

	id2 := createSession(t, svc)
	session, err := svc.SelectQuestion(context.Background(), id2, "Do you groom cats as well?")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.callCount(), "second ask should be served from cache")
	assert.Equal(t, "from oracle", session.Messages[2].Content)
}

func TestDelayedFollowUpIsCancelledOnClose(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := NewAssistantService(newTestLogger(), stub, nil, utils.New(), 30*time.Millisecond)
	id := createSession(t, svc)

	session, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)
	assert.Equal(t, []string{"bot", "user", "bot"}, messageKinds(session),
		"follow-up must not be present before the delay elapses")

	require.NoError(t, svc.CloseSession(context.Background(), id))

	// Give a cancelled timer a chance to misfire before asserting teardown.
	time.Sleep(80 * time.Millisecond)
	_, err = svc.GetSession(context.Background(), id)
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
}

func TestDelayedFollowUpArrives(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := NewAssistantService(newTestLogger(), stub, nil, utils.New(), 10*time.Millisecond)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(context.Background(), id)
		if err != nil {
			return false
		}
		last := session.Messages[len(session.Messages)-1]
		return last.Kind == "follow_up_options"
	}, time.Second, 5*time.Millisecond)
}

func TestSelectQuestionRejectsBlankText(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "never used"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "   ")
	assert.ErrorIs(t, err, assistant.ErrEmptyQuestion)
	assert.Equal(t, 0, stub.callCount())
}

func TestUnknownSessionErrors(t *testing.T) {
	svc := newTestService(t, &stubOracle{})

	_, err := svc.SendMessage(context.Background(), "01NOTHERE", "hello there friends")
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)

	_, err = svc.GetSession(context.Background(), "01NOTHERE")
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
}

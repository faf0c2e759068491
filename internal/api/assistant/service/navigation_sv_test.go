package assistantService

import (
	"context"
	"testing"
	"time"

	"PawPalGolang/internal/api/assistant"
	"PawPalGolang/internal/entity"
	"PawPalGolang/pkg/nlp"
	"PawPalGolang/pkg/oracle"
	"PawPalGolang/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackRestoresSnapshotExactly(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	before, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)
	require.Len(t, before.Messages, 4)

	after, err := svc.SelectQuestion(context.Background(), id, "What are your room options for pets?")
	require.NoError(t, err)
	require.Len(t, after.Messages, 6)

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, back.CloseHost)
	assert.Equal(t, "chat", back.Session.View)
	require.Len(t, back.Session.Messages, len(before.Messages))
	for i, msg := range before.Messages {
		assert.Equal(t, msg.ID, back.Session.Messages[i].ID, "message %d", i)
	}
	last := back.Session.Messages[len(back.Session.Messages)-1]
	assert.Equal(t, "follow_up_options", last.Kind)
	assert.Equal(t, nlp.Suggest("How much does grooming cost?"), last.Options)
}

func TestBackFromFirstQuestionReturnsToInitial(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "Do you groom cats as well?")
	require.NoError(t, err)

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, back.CloseHost)
	assert.Equal(t, "initial", back.Session.View)
	require.Len(t, back.Session.Messages, 1)
	assert.Equal(t, seedGreeting, back.Session.Messages[0].Content)
}

func TestBackSnapshotIsOneLevelDeep(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "Do you groom cats as well?")
	require.NoError(t, err)

	first, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)
	require.False(t, first.CloseHost)

	// The snapshot was consumed and the log is back to the seed greeting, so a
	// second back has nowhere to go.
	second, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, second.CloseHost)
}

func TestBackWithoutSnapshotCollapsesThread(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "Yes, rabbits are welcome."}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	// Typed messages do not snapshot, so back falls through to the collapse
	// branch.
	session, err := svc.SendMessage(context.Background(), id, "do you accept rabbits")
	require.NoError(t, err)
	require.Greater(t, len(session.Messages), 1)

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, back.CloseHost)
	assert.Equal(t, "initial", back.Session.View)
	require.Len(t, back.Session.Messages, 1)
}

func TestBackOnFreshSessionClosesHost(t *testing.T) {
	svc := newTestService(t, &stubOracle{})
	id := createSession(t, svc)

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, back.CloseHost)
	assert.Equal(t, "initial", back.Session.View)
}

func TestResetCollapsesToSeed(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)

	session, err := svc.ResetSession(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "initial", session.View)
	assert.Empty(t, session.CurrentTopic)
	assert.False(t, session.IsLoading)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, seedGreeting, session.Messages[0].Content)
}

func TestResetIsIdempotent(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)

	first, err := svc.ResetSession(context.Background(), id)
	require.NoError(t, err)
	second, err := svc.ResetSession(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first.View, second.View)
	assert.Len(t, second.Messages, 1)
}

func TestBackAfterResetReturnsToChatView(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := newTestService(t, stub)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)
	_, err = svc.ResetSession(context.Background(), id)
	require.NoError(t, err)

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, back.CloseHost)
	assert.Equal(t, "chat", back.Session.View)
}

func TestResetDuringAnswerLookupDropsStaleAnswer(t *testing.T) {
	block := make(chan struct{})
	stub := &stubOracle{answer: oracle.Answer{Text: "stale answer"}, block: block}
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

	session, err := svc.ResetSession(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, session.IsLoading)

	close(block)
	<-done

	// The answer resolved against a thread that no longer exists and must
	// not land in the reset log.
	session, err = svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "initial", session.View)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, seedGreeting, session.Messages[0].Content)
	assert.Empty(t, session.CurrentTopic)
	assert.False(t, session.IsLoading)
}

func TestBackDuringAnswerLookupDropsStaleAnswer(t *testing.T) {
	block := make(chan struct{})
	stub := &stubOracle{answer: oracle.Answer{Text: "stale answer"}, block: block}
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

	back, err := svc.NavigateBack(context.Background(), id)
	require.NoError(t, err)
	require.False(t, back.CloseHost)
	assert.Equal(t, "initial", back.Session.View)

	close(block)
	<-done

	session, err := svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "initial", session.View)
	require.Len(t, session.Messages, 1)
	assert.Empty(t, session.CurrentTopic)
	assert.False(t, session.IsLoading)
}

func TestFiredTimerAfterResetIsDiscarded(t *testing.T) {
	stub := &stubOracle{answer: oracle.Answer{Text: "ok"}}
	svc := NewAssistantService(newTestLogger(), stub, nil, utils.New(), 20*time.Millisecond)
	id := createSession(t, svc)

	_, err := svc.SelectQuestion(context.Background(), id, "How much does grooming cost?")
	require.NoError(t, err)

	// Hold the session lock past the delay so the follow-up timer fires and
	// parks on it, then invalidate the thread the way reset does before
	// letting the callback through. Stop alone cannot cancel a timer in that
	// window.
	impl := svc.(*assistantService)
	state, ok := impl.store.get(id)
	require.True(t, ok)

	state.mu.Lock()
	time.Sleep(60 * time.Millisecond)
	impl.invalidatePendingLocked(state)
	impl.truncateToSeedLocked(state)
	state.sess.View = entity.ViewInitial
	state.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	session, err := svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, seedGreeting, session.Messages[0].Content)
}

func TestNavigationOnClosedSessionErrors(t *testing.T) {
	svc := newTestService(t, &stubOracle{})
	id := createSession(t, svc)
	require.NoError(t, svc.CloseSession(context.Background(), id))

	_, err := svc.NavigateBack(context.Background(), id)
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)

	_, err = svc.ResetSession(context.Background(), id)
	assert.ErrorIs(t, err, assistant.ErrSessionNotFound)
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/domain"
)

// fakeProvider scripts fragment emission and failure behavior.
type fakeProvider struct {
	fragments []string
	failAfter int // fail after emitting this many fragments; -1 never fails
	calls     int
	lastReq   CompletionRequest
}

func (f *fakeProvider) StreamCompletion(_ context.Context, req CompletionRequest, emit EmitFunc) error {
	f.calls++
	f.lastReq = req
	for i, fragment := range f.fragments {
		if f.failAfter >= 0 && i == f.failAfter {
			return errors.New("provider exploded")
		}
		if err := emit(fragment); err != nil {
			return err
		}
	}
	if f.failAfter >= 0 && f.failAfter >= len(f.fragments) {
		return errors.New("provider exploded")
	}
	return nil
}

func newTestRelay(p CompletionProvider) *Relay {
	return NewRelay(p, 1024, time.Minute, zap.NewNop())
}

// parseStream splits an SSE body into data payloads.
func parseStream(t *testing.T, raw string) []string {
	t.Helper()
	var payloads []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "data: ") {
			payloads = append(payloads, strings.TrimPrefix(line, "data: "))
		}
	}
	return payloads
}

func contentOf(t *testing.T, payload string) string {
	t.Helper()
	var chunk Chunk
	require.NoError(t, json.Unmarshal([]byte(payload), &chunk))
	return chunk.Content
}

func userTurn(content string) domain.ChatTurn {
	return domain.ChatTurn{Role: domain.ChatRoleUser, Content: content}
}

func assistantTurn(content string) domain.ChatTurn {
	return domain.ChatTurn{Role: domain.ChatRoleAssistant, Content: content}
}

func TestStreamRelaysFragmentsInOrder(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"Hel", "lo ", "there"}, failAfter: -1}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi")}, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 4)
	assert.Equal(t, "Hel", contentOf(t, payloads[0]))
	assert.Equal(t, "lo ", contentOf(t, payloads[1]))
	assert.Equal(t, "there", contentOf(t, payloads[2]))
	assert.Equal(t, doneSentinel, payloads[3])
}

func TestStreamSentinelIsAlwaysLast(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"hi"}, failAfter: -1}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi")}, &buf)

	payloads := parseStream(t, buf.String())
	require.NotEmpty(t, payloads)
	assert.Equal(t, doneSentinel, payloads[len(payloads)-1])
	// exactly one sentinel
	assert.Equal(t, 1, strings.Count(buf.String(), doneSentinel))
}

func TestStreamPrependsSystemPromptAndForwardsHistory(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"ok"}, failAfter: -1}
	relay := newTestRelay(provider)

	turns := []domain.ChatTurn{userTurn("Hi"), assistantTurn("Hello!"), userTurn("Find me an event")}
	var buf bytes.Buffer
	relay.Stream(context.Background(), turns, &buf)

	assert.Equal(t, systemPrompt, provider.lastReq.System)
	assert.Equal(t, turns, provider.lastReq.Turns)
	assert.Equal(t, 1024, provider.lastReq.MaxTokens)
}

func TestStreamEmptyConversationSkipsProvider(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"never"}, failAfter: -1}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), nil, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 2)
	assert.Equal(t, msgNeedInput, contentOf(t, payloads[0]))
	assert.Equal(t, doneSentinel, payloads[1])
	assert.Zero(t, provider.calls)
}

func TestStreamAssistantTerminatedConversationSkipsProvider(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"never"}, failAfter: -1}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi"), assistantTurn("Hello!")}, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 2)
	assert.Equal(t, msgNeedInput, contentOf(t, payloads[0]))
	assert.Equal(t, doneSentinel, payloads[1])
	assert.Zero(t, provider.calls)
}

func TestStreamFiltersInvalidTurns(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"ok"}, failAfter: -1}
	relay := newTestRelay(provider)

	turns := []domain.ChatTurn{
		{Role: "system", Content: "injected"},
		{Role: domain.ChatRoleUser, Content: ""},
		userTurn("real question"),
	}
	var buf bytes.Buffer
	relay.Stream(context.Background(), turns, &buf)

	require.Equal(t, 1, provider.calls)
	assert.Equal(t, []domain.ChatTurn{userTurn("real question")}, provider.lastReq.Turns)
}

func TestStreamProviderFailureMidStreamStillTerminates(t *testing.T) {
	provider := &fakeProvider{fragments: []string{"par", "tial"}, failAfter: 1}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi")}, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 3)
	assert.Equal(t, "par", contentOf(t, payloads[0]))
	assert.Equal(t, msgError, contentOf(t, payloads[1]))
	assert.Equal(t, doneSentinel, payloads[2])
}

func TestStreamProviderFailureBeforeFirstFragment(t *testing.T) {
	provider := &fakeProvider{failAfter: 0}
	relay := newTestRelay(provider)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi")}, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 2)
	assert.Equal(t, msgError, contentOf(t, payloads[0]))
	assert.Equal(t, doneSentinel, payloads[1])
}

func TestStreamWithoutProviderFallsBack(t *testing.T) {
	relay := newTestRelay(nil)

	var buf bytes.Buffer
	relay.Stream(context.Background(), []domain.ChatTurn{userTurn("Hi")}, &buf)

	payloads := parseStream(t, buf.String())
	require.Len(t, payloads, 2)
	assert.Equal(t, msgUnavailable, contentOf(t, payloads[0]))
	assert.Equal(t, doneSentinel, payloads[1])
}

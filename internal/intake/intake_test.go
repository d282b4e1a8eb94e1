package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mentra/group-booking/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeChat struct {
	err   error
	calls int
}

func (f *fakeChat) Chat(_ context.Context, message string, history []model.ConversationMessage) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("reply %d", len(history)), nil
}

type fakeExtractor struct {
	mu      sync.Mutex
	calls   int
	lastLen int
	err     error
}

func (f *fakeExtractor) Insights(_ context.Context, history []model.ConversationMessage) (*model.InsightProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastLen = len(history)
	if f.err != nil {
		return nil, f.err
	}
	return &model.InsightProfile{MainConcern: "worry"}, nil
}

func TestState_Advance(t *testing.T) {
	var s State
	var triggers int
	for i := 0; i < 8; i++ {
		var fire bool
		s, fire = s.Advance()
		if fire {
			triggers++
		}
		assert.LessOrEqual(t, s.CurrentStep, LastStep)
	}

	assert.Equal(t, 1, triggers)
	assert.Equal(t, LastStep, s.CurrentStep)
	assert.True(t, s.Complete)
}

func TestController_FiveMessagesExtractOnce(t *testing.T) {
	ext := &fakeExtractor{}
	c := NewController(&fakeChat{}, ext)
	ctx := context.Background()

	var completedOn int
	for i := 1; i <= 5; i++ {
		turn, err := c.Send(ctx, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
		if turn.Profile != nil {
			require.Zero(t, completedOn, "profile delivered twice")
			completedOn = i
		}
	}

	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, 4, completedOn)
	assert.Equal(t, 8, ext.lastLen, "extraction sees the transcript including the reply")

	s := c.State()
	assert.True(t, s.Complete)
	assert.Equal(t, 4, s.CurrentStep)
	assert.Len(t, s.History, 10)

	for i := 0; i < 3; i++ {
		turn, err := c.Send(ctx, "more")
		require.NoError(t, err)
		assert.Nil(t, turn.Profile)
	}
	assert.Equal(t, 1, ext.calls)
}

func TestController_ExtractionFailureKeepsLatch(t *testing.T) {
	ext := &fakeExtractor{err: errors.New("parse")}
	c := NewController(&fakeChat{}, ext)

	var failures int
	for i := 0; i < 6; i++ {
		turn, err := c.Send(context.Background(), "hi")
		require.NoError(t, err)
		if turn.ProfileErr != nil {
			failures++
		}
	}

	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, ext.calls)
	assert.True(t, c.State().Complete)
}

func TestController_ChatFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("offline")}
	c := NewController(chat, &fakeExtractor{})

	_, err := c.Send(context.Background(), "hello")
	assert.Error(t, err)

	s := c.State()
	assert.Equal(t, 1, s.CurrentStep)
	require.Len(t, s.History, 1)
	assert.Equal(t, model.RoleUser, s.History[0].Role)
}

func TestController_EmptyMessage(t *testing.T) {
	chat := &fakeChat{}
	c := NewController(chat, &fakeExtractor{})

	_, err := c.Send(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, 0, chat.calls)
	assert.Equal(t, 0, c.State().CurrentStep)
}

func TestController_StateIsACopy(t *testing.T) {
	c := NewController(&fakeChat{}, &fakeExtractor{})
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)

	s := c.State()
	s.History[0].Content = "changed"

	assert.Equal(t, "hello", c.State().History[0].Content)
}

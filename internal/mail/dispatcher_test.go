package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/testutil"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []model.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Message(nil), m.sent...)
}

func closeCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, testutil.MakeNoopLogger(), 10)
	d.Start(context.Background())

	d.Dispatch(model.Message{To: "a@example.com", Subject: "Welcome"})
	d.Dispatch(model.Message{To: "b@example.com", Subject: "Welcome"})

	require.NoError(t, d.Close(closeCtx(t)))

	sent := mailer.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@example.com", sent[0].To)
	assert.Equal(t, "b@example.com", sent[1].To)
}

func TestDispatcher_FailureIsNotFatal(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, testutil.MakeNoopLogger(), 10)
	d.Start(context.Background())

	assert.NotPanics(t, func() {
		d.Dispatch(model.Message{To: "a@example.com"})
	})
	require.NoError(t, d.Close(closeCtx(t)))
	assert.Empty(t, mailer.messages())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, testutil.MakeNoopLogger(), 1)

	d.Dispatch(model.Message{To: "first@example.com"})
	d.Dispatch(model.Message{To: "second@example.com"})

	d.Start(context.Background())
	require.NoError(t, d.Close(closeCtx(t)))

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "first@example.com", sent[0].To)
}

func TestDispatcher_DispatchAfterClose(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, testutil.MakeNoopLogger(), 10)
	d.Start(context.Background())
	require.NoError(t, d.Close(closeCtx(t)))

	assert.NotPanics(t, func() {
		d.Dispatch(model.Message{To: "late@example.com"})
	})
	require.NoError(t, d.Close(closeCtx(t)))
	assert.Empty(t, mailer.messages())
}

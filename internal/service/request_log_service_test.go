package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/domain"
	"github.com/Sidnaik04/YT-Assistant/internal/events"
)

type fakeRequestLogRepo struct {
	created []domain.RequestLog
	err     error
}

func (f *fakeRequestLogRepo) Create(_ context.Context, log *domain.RequestLog) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *log)
	return nil
}

func publishRequestLogged(t *testing.T, d events.Dispatcher, payload interface{}) {
	t.Helper()
	require.NoError(t, d.Publish(context.Background(), events.Event{
		ID:        "e1",
		Type:      events.EventRequestLogged,
		Timestamp: time.Now(),
		Payload:   payload,
	}))
}

func TestRequestLogService_PersistsEvents(t *testing.T) {
	t.Parallel()

	repo := &fakeRequestLogRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewRequestLogService(dispatcher, repo, zap.NewNop())
	svc.RegisterHandlers()

	publishRequestLogged(t, dispatcher, events.RequestLoggedPayload{
		UserID:   42,
		VideoURL: "https://youtu.be/abc",
		Action:   domain.ActionSummarize,
	})

	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(42), repo.created[0].UserID)
	assert.Equal(t, domain.ActionSummarize, repo.created[0].Action)
}

func TestRequestLogService_IgnoresUnexpectedPayload(t *testing.T) {
	t.Parallel()

	repo := &fakeRequestLogRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewRequestLogService(dispatcher, repo, zap.NewNop())
	svc.RegisterHandlers()

	publishRequestLogged(t, dispatcher, "not a payload")
	assert.Empty(t, repo.created)
}

func TestRequestLogService_InsertFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	repo := &fakeRequestLogRepo{err: errors.New("db down")}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewRequestLogService(dispatcher, repo, zap.NewNop())
	svc.RegisterHandlers()

	// publish must not surface the insert error
	publishRequestLogged(t, dispatcher, events.RequestLoggedPayload{
		UserID: 1, VideoURL: "u", Action: domain.ActionDownload,
	})
}

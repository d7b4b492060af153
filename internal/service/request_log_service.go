package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/domain"
	"github.com/Sidnaik04/YT-Assistant/internal/events"
	"github.com/Sidnaik04/YT-Assistant/internal/repository"
)

// RequestLogService persists request_logged events. Insert failures are
// logged, never surfaced to the request that emitted the event.
type RequestLogService struct {
	dispatcher events.Dispatcher
	logs       repository.RequestLogRepository
	logger     *zap.Logger
}

// NewRequestLogService creates the service.
func NewRequestLogService(dispatcher events.Dispatcher, logs repository.RequestLogRepository, logger *zap.Logger) *RequestLogService {
	return &RequestLogService{
		dispatcher: dispatcher,
		logs:       logs,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *RequestLogService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventRequestLogged, s.handleRequestLogged)
}

func (s *RequestLogService) handleRequestLogged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestLoggedPayload)
	if !ok {
		s.logger.Warn("unexpected request_logged payload", zap.Any("payload", event.Payload))
		return nil
	}

	log := &domain.RequestLog{
		UserID:   payload.UserID,
		VideoURL: payload.VideoURL,
		Action:   payload.Action,
	}
	if err := s.logs.Create(ctx, log); err != nil {
		s.logger.Error("persist request log",
			zap.Int64("user_id", payload.UserID),
			zap.String("action", string(payload.Action)),
			zap.Error(err))
	}
	return nil
}

package worker

import (
	"github.com/Sidnaik04/YT-Assistant/internal/service"
)

// StartRequestLogWorker registers request log handlers.
func StartRequestLogWorker(requestLogService *service.RequestLogService) {
	if requestLogService == nil {
		return
	}
	requestLogService.RegisterHandlers()
}

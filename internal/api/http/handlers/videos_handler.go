package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sidnaik04/YT-Assistant/internal/api/dto"
	"github.com/Sidnaik04/YT-Assistant/internal/auth"
	"github.com/Sidnaik04/YT-Assistant/internal/domain"
	"github.com/Sidnaik04/YT-Assistant/internal/events"
	"github.com/Sidnaik04/YT-Assistant/internal/service"
	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

// VideosHandler exposes the video download, transcript and summarization
// endpoints. All of them require an authenticated caller.
type VideosHandler struct {
	videos     *service.VideoService
	summaries  *service.SummaryService
	dispatcher events.Dispatcher
}

// NewVideosHandler constructs handler.
func NewVideosHandler(videoService *service.VideoService, summaryService *service.SummaryService, dispatcher events.Dispatcher) *VideosHandler {
	return &VideosHandler{
		videos:     videoService,
		summaries:  summaryService,
		dispatcher: dispatcher,
	}
}

// Download handles POST /download.
func (h *VideosHandler) Download(c *fiber.Ctx) error {
	principal, req, err := h.parseVideoRequest(c)
	if err != nil {
		return err
	}

	result, err := h.videos.Download(c.Context(), req.URL)
	if err != nil {
		return err
	}

	h.publishRequestLogged(c, principal.UserID, req.URL, domain.ActionDownload)

	return c.JSON(dto.DownloadResponse{
		Status:     "downloaded",
		VideoID:    result.VideoID,
		Title:      result.Title,
		Resolution: result.Resolution,
		Filesize:   result.Filesize,
		Ext:        result.Ext,
		Path:       result.Path,
	})
}

// Transcript handles POST /transcript.
func (h *VideosHandler) Transcript(c *fiber.Ctx) error {
	principal, req, err := h.parseVideoRequest(c)
	if err != nil {
		return err
	}

	result, err := h.videos.Transcript(c.Context(), req.URL)
	if err != nil {
		return err
	}

	h.publishRequestLogged(c, principal.UserID, req.URL, domain.ActionTranscript)

	return c.JSON(dto.TranscriptResponse{
		Status:     "success",
		VideoID:    result.VideoID,
		Title:      result.Title,
		Transcript: h.videos.ClipTranscript(result.Transcript),
	})
}

// Summarize handles POST /summarize.
func (h *VideosHandler) Summarize(c *fiber.Ctx) error {
	principal, req, err := h.parseVideoRequest(c)
	if err != nil {
		return err
	}

	transcript, err := h.videos.Transcript(c.Context(), req.URL)
	if err != nil {
		return err
	}

	summary, err := h.summaries.Summarize(c.Context(), transcript.VideoID, transcript.Transcript)
	if err != nil {
		return err
	}

	h.publishRequestLogged(c, principal.UserID, req.URL, domain.ActionSummarize)

	return c.JSON(dto.SummaryResponse{
		Status:  "success",
		VideoID: transcript.VideoID,
		Title:   transcript.Title,
		Summary: summary,
	})
}

func (h *VideosHandler) parseVideoRequest(c *fiber.Ctx) (*auth.Principal, *dto.VideoRequest, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, nil, apperrors.NewUnauthorized("authentication required")
	}

	var req dto.VideoRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.URL == "" {
		return nil, nil, apperrors.NewValidationError("url required", nil)
	}
	return principal, &req, nil
}

func (h *VideosHandler) publishRequestLogged(c *fiber.Ctx, userID int64, videoURL string, action domain.RequestAction) {
	if h.dispatcher == nil {
		return
	}
	_ = h.dispatcher.Publish(c.Context(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRequestLogged,
		Timestamp: time.Now(),
		Payload: events.RequestLoggedPayload{
			UserID:   userID,
			VideoURL: videoURL,
			Action:   action,
		},
	})
}

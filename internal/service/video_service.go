package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/config"
	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

// DownloadResult describes a completed video download.
type DownloadResult struct {
	VideoID    string
	Title      string
	Resolution string
	Filesize   int64
	Ext        string
	Path       string
}

// TranscriptResult carries the full transcript text; callers clip it for
// response payloads.
type TranscriptResult struct {
	VideoID    string
	Title      string
	Transcript string
}

// videoInfo is the subset of yt-dlp's JSON output we care about.
type videoInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Resolution string `json:"resolution"`
	Filesize   int64  `json:"filesize"`
	Ext        string `json:"ext"`
}

// VideoService drives the yt-dlp binary for downloads and transcript
// extraction.
type VideoService struct {
	cfg    config.VideoConfig
	logger *zap.Logger
}

// NewVideoService creates the service and ensures the download directory exists.
func NewVideoService(cfg config.VideoConfig, logger *zap.Logger) (*VideoService, error) {
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	return &VideoService{cfg: cfg, logger: logger}, nil
}

// Download fetches the best available video+audio rendition merged to mp4.
func (s *VideoService) Download(ctx context.Context, url string) (*DownloadResult, error) {
	args := []string{
		"-f", "bestvideo+bestaudio/best",
		"--merge-output-format", "mp4",
		"-o", filepath.Join(s.cfg.DownloadDir, "%(id)s.%(ext)s"),
		"--no-warnings",
		"--print-json",
		url,
	}

	info, err := s.runYTDLP(ctx, args)
	if err != nil {
		return nil, apperrors.NewDomainError("DOWNLOAD_FAILED",
			fmt.Sprintf("download failed: %v", err), 400, nil)
	}

	return &DownloadResult{
		VideoID:    info.ID,
		Title:      info.Title,
		Resolution: info.Resolution,
		Filesize:   info.Filesize,
		Ext:        info.Ext,
		Path:       filepath.Join(s.cfg.DownloadDir, info.ID+".mp4"),
	}, nil
}

// Transcript extracts English subtitles (manual or auto-generated) without
// downloading the video itself.
func (s *VideoService) Transcript(ctx context.Context, url string) (*TranscriptResult, error) {
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", s.cfg.SubtitleLangs,
		"-o", filepath.Join(s.cfg.DownloadDir, "%(id)s"),
		"--no-warnings",
		"--print-json",
		url,
	}

	info, err := s.runYTDLP(ctx, args)
	if err != nil {
		return nil, apperrors.NewDomainError("TRANSCRIPT_FAILED",
			fmt.Sprintf("transcript extraction failed: %v", err), 400, nil)
	}

	subtitleFile, err := s.findSubtitleFile(info.ID)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(subtitleFile)
	if err != nil {
		return nil, apperrors.NewDomainError("TRANSCRIPT_FAILED",
			fmt.Sprintf("read transcript: %v", err), 400, nil)
	}

	return &TranscriptResult{
		VideoID:    info.ID,
		Title:      info.Title,
		Transcript: string(content),
	}, nil
}

// ClipTranscript bounds a transcript for response payloads.
func (s *VideoService) ClipTranscript(transcript string) string {
	if s.cfg.MaxTranscript > 0 && len(transcript) > s.cfg.MaxTranscript {
		return transcript[:s.cfg.MaxTranscript]
	}
	return transcript
}

func (s *VideoService) runYTDLP(ctx context.Context, args []string) (*videoInfo, error) {
	cmd := exec.CommandContext(ctx, s.cfg.YTDLPPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		s.logger.Warn("yt-dlp failed",
			zap.Strings("args", args),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	var info videoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}
	return &info, nil
}

func (s *VideoService) findSubtitleFile(videoID string) (string, error) {
	entries, err := os.ReadDir(s.cfg.DownloadDir)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, videoID) && strings.HasSuffix(name, ".vtt") {
			return filepath.Join(s.cfg.DownloadDir, name), nil
		}
	}
	return "", apperrors.NewNotFound("transcript", map[string]any{"video_id": videoID})
}

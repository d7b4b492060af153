package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/config"
)

const summaryCacheKeyPrefix = "summary:"

// SummaryService condenses transcripts with a map-reduce pass over the LLM
// and caches the final summary per video.
type SummaryService struct {
	cfg     config.SummaryConfig
	encoder TokenEncoder
	llm     LLMClient
	cache   *redis.Client
	logger  *zap.Logger
}

// NewSummaryService builds the service. cache may be nil, disabling caching.
func NewSummaryService(cfg config.SummaryConfig, encoder TokenEncoder, llm LLMClient, cache *redis.Client, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		cfg:     cfg,
		encoder: encoder,
		llm:     llm,
		cache:   cache,
		logger:  logger,
	}
}

// Summarize produces a single summary for a transcript. Each chunk is
// summarized independently, then the merged chunk summaries get a final
// pass. Cache failures degrade to a cache miss; they never fail the request.
func (s *SummaryService) Summarize(ctx context.Context, videoID, transcript string) (string, error) {
	if cached, ok := s.cacheGet(ctx, videoID); ok {
		return cached, nil
	}

	chunks := ChunkText(s.encoder, transcript, s.cfg.ChunkMaxTokens)
	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.summarizeText(chunk)
		if err != nil {
			return "", err
		}
		summaries = append(summaries, summary)
	}

	merged := strings.Join(summaries, " ")
	final, err := s.summarizeText(merged)
	if err != nil {
		return "", err
	}

	s.cacheSet(ctx, videoID, final)
	return final, nil
}

func (s *SummaryService) summarizeText(text string) (string, error) {
	prompt := fmt.Sprintf("Summarize the following transcript concisely:\n\n%s", text)
	return s.llm.Complete(prompt)
}

func (s *SummaryService) cacheGet(ctx context.Context, videoID string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, err := s.cache.Get(ctx, summaryCacheKeyPrefix+videoID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("summary cache read failed", zap.String("video_id", videoID), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

func (s *SummaryService) cacheSet(ctx context.Context, videoID, summary string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKeyPrefix+videoID, summary, s.cfg.CacheTTL()).Err(); err != nil {
		s.logger.Warn("summary cache write failed", zap.String("video_id", videoID), zap.Error(err))
	}
}

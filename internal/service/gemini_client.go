package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Sidnaik04/YT-Assistant/internal/config"
)

// LLMClient produces a completion for a prompt.
type LLMClient interface {
	Complete(prompt string) (string, error)
}

// GeminiClient talks to Gemini through its OpenAI-compatible chat
// completions endpoint.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGeminiClient builds a client from summary configuration.
func NewGeminiClient(cfg config.SummaryConfig) *GeminiClient {
	return &GeminiClient{
		baseURL: cfg.GeminiBaseURL,
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.Model,
		timeout: 60 * time.Second,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-turn chat completion request.
func (g *GeminiClient) Complete(prompt string) (string, error) {
	agent := fiber.Post(g.baseURL + "/chat/completions")
	agent.Timeout(g.timeout)
	agent.Set("Authorization", "Bearer "+g.apiKey)
	agent.JSON(chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", errs[0]
	}
	if code != fiber.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", code)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("gemini returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"morningquest/internal/config"
	"morningquest/internal/logging"
	"morningquest/internal/mission"
)

var ErrDisabled = errors.New("generator is disabled")

// FallbackComment is used as the medal comment whenever the comment call
// fails or the generator is disabled.
const FallbackComment = "Amazing work! You got ready on time again and again. Keep it up!"

// ScheduleGenerator proposes a task list from free text.
type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, prompt string) ([]mission.Task, error)
}

// CommentGenerator writes a short congratulation for a reward.
type CommentGenerator interface {
	GenerateComment(ctx context.Context, childName string, recent []mission.MissionLog) (string, error)
}

// chatAPI is the part of *openai.Client the generator uses.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client talks to any OpenAI-compatible chat completion endpoint.
type Client struct {
	api     chatAPI
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a Client for cfg, or a Disabled generator when cfg is off.
func New(cfg config.GeneratorConfig) Generator {
	if !cfg.Enabled {
		return Disabled{}
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey())
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return newClient(openai.NewClientWithConfig(clientConfig), cfg.Model, cfg.Timeout)
}

func newClient(api chatAPI, model string, timeout time.Duration) *Client {
	return &Client{
		api:     api,
		model:   model,
		timeout: timeout,
		log:     logging.Component("generator"),
	}
}

// Generator is both halves of the text-generation collaborator.
type Generator interface {
	ScheduleGenerator
	CommentGenerator
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req.Model = c.model

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn().Err(err).Dur("took", time.Since(start)).Msg("chat completion failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	c.log.Debug().Dur("took", time.Since(start)).Int("tokens", resp.Usage.TotalTokens).Msg("chat completion")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) GenerateSchedule(ctx context.Context, prompt string) ([]mission.Task, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	content, err := c.complete(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: scheduleSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.4,
	})
	if err != nil {
		return nil, err
	}

	raw, err := ParseSchedule(content)
	if err != nil {
		return nil, err
	}
	return BuildTasks(raw)
}

func (c *Client) GenerateComment(ctx context.Context, childName string, recent []mission.MissionLog) (string, error) {
	content, err := c.complete(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: commentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: commentUserPrompt(childName, recent)},
		},
		MaxTokens:   120,
		Temperature: 0.8,
	})
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("chat completion: empty comment")
	}
	return content, nil
}

// Disabled is the generator used when no endpoint is configured.
type Disabled struct{}

func (Disabled) GenerateSchedule(context.Context, string) ([]mission.Task, error) {
	return nil, ErrDisabled
}

func (Disabled) GenerateComment(context.Context, string, []mission.MissionLog) (string, error) {
	return "", ErrDisabled
}

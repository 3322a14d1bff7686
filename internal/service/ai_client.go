package service

import (
	"context"

	"propchat/internal/model"
)

// AIClient is the interface to the language model provider
type AIClient interface {
	// Interpret turns the user's latest message into raw extraction
	// JSON, given the filter currently applied to the conversation.
	Interpret(ctx context.Context, utterance string, prior *model.EffectiveFilter) (string, error)

	// Summarize writes a short conversational reply describing a
	// sample of matched properties.
	Summarize(ctx context.Context, utterance string, sample []model.PropertyRecord) (string, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)

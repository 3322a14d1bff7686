package service

import (
	"context"
	"log"

	"propchat/internal/model"
)

// Canned replies for turns the model cannot or should not narrate.
const (
	emptyResultReply = "Unfortunately, no properties matched your search criteria. Please try adjusting your filters."
	fallbackReply    = "Here are the properties I found based on your search."
	parseFailedReply = "Sorry, I couldn't understand that. Your previous filters and results are unchanged."
	resetReply       = "Sure, let's start over. What kind of property are you looking for?"
)

// Summarizer narrates one turn's matches in natural language. Like
// extraction it never fails the turn: a disabled client, a model error
// or a blank reply all fall back to a canned sentence.
type Summarizer struct {
	client     AIClient
	sampleSize int
}

// NewSummarizer creates a new summarizer
func NewSummarizer(client AIClient, sampleSize int) *Summarizer {
	if sampleSize <= 0 {
		sampleSize = 3
	}
	return &Summarizer{client: client, sampleSize: sampleSize}
}

// Summarize produces the reply text for a match result. The model only
// ever sees a small sample of the matches, so its reply cannot state a
// trustworthy total; the count travels separately in the response.
func (s *Summarizer) Summarize(ctx context.Context, utterance string, result *model.MatchResult) string {
	if result.Count == 0 {
		return emptyResultReply
	}
	if s.client == nil || !s.client.IsEnabled() {
		return fallbackReply
	}

	sample := result.Records
	if len(sample) > s.sampleSize {
		sample = sample[:s.sampleSize]
	}

	reply, err := s.client.Summarize(ctx, utterance, sample)
	if err != nil {
		log.Printf("AI summary failed: %v, using canned reply", err)
		return fallbackReply
	}
	if reply == "" {
		return fallbackReply
	}
	return reply
}

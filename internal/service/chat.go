package service

import (
	"context"
	"time"

	"propchat/internal/model"
	"propchat/internal/repository"
	"propchat/internal/utils"
)

// ChatService runs the extract, merge, apply, summarize pipeline for
// conversational turns
type ChatService struct {
	dataset    *repository.Dataset
	extractor  *Extractor
	summarizer *Summarizer
	sessions   *SessionManager
	maxCards   int
}

// NewChatService creates a new chat service
func NewChatService(
	dataset *repository.Dataset,
	extractor *Extractor,
	summarizer *Summarizer,
	sessions *SessionManager,
	maxCards int,
) *ChatService {
	if maxCards <= 0 {
		maxCards = 6
	}
	return &ChatService{
		dataset:    dataset,
		extractor:  extractor,
		summarizer: summarizer,
		sessions:   sessions,
		maxCards:   maxCards,
	}
}

// ChatEventCallback is called for streaming turn events
type ChatEventCallback func(event string, data any) error

// HandleTurn processes one conversational turn
func (s *ChatService) HandleTurn(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	return s.handleTurn(ctx, req, nil)
}

// HandleTurnStream processes one turn, emitting progress events as the
// pipeline advances. A callback error aborts the turn before it is
// recorded, so a dropped client never half-applies a turn.
func (s *ChatService) HandleTurnStream(ctx context.Context, req *model.ChatRequest, callback ChatEventCallback) (*model.ChatResponse, error) {
	return s.handleTurn(ctx, req, callback)
}

func (s *ChatService) handleTurn(ctx context.Context, req *model.ChatRequest, callback ChatEventCallback) (*model.ChatResponse, error) {
	startTime := time.Now()

	emit := func(event string, data any) error {
		if callback == nil {
			return nil
		}
		return callback(event, data)
	}

	// The session lock serializes turns for this conversation.
	session := s.sessions.GetOrCreate(req.SessionID)
	prior := session.BeginTurn()
	defer session.EndTurn()

	if err := emit("start", map[string]any{
		"session_id": session.ID,
	}); err != nil {
		return nil, err
	}

	// Extract this turn's constraints and fold them into the running filter
	candidate := s.extractor.Extract(ctx, req.Message, prior)
	merged := MergeFilters(candidate, prior)

	if err := emit("filters", merged); err != nil {
		return nil, err
	}

	// Apply the merged filter to the dataset
	result := Apply(merged, s.dataset.Records())

	if err := emit("results", map[string]any{
		"count":          result.Count,
		"excluded_count": result.Excluded,
	}); err != nil {
		return nil, err
	}

	reply := s.buildReply(ctx, req.Message, candidate, result)

	if err := emit("summary", map[string]any{
		"reply": reply,
	}); err != nil {
		return nil, err
	}

	session.CompleteTurn(req.Message, merged, result, candidate.ParseFailed, s.sessions.HistoryLimit())

	response := &model.ChatResponse{
		SessionID:   session.ID,
		Reply:       reply,
		Filter:      *merged,
		ParseFailed: candidate.ParseFailed,
		MatchCount:  result.Count,
		Excluded:    result.Excluded,
		Cards:       buildCards(result.Records, s.maxCards),
		Took:        time.Since(startTime).Milliseconds(),
	}

	if err := emit("done", response); err != nil {
		return nil, err
	}
	return response, nil
}

// buildReply picks the reply text for a turn. A turn whose extraction
// failed outright keeps the previous results and says so; a plain
// reset gets an invitation instead of a narration of the whole
// dataset.
func (s *ChatService) buildReply(ctx context.Context, utterance string, candidate *model.FilterCandidate, result *model.MatchResult) string {
	if candidate.ParseFailed && candidate.IsEmpty() && !candidate.Reset {
		return parseFailedReply
	}
	if candidate.Reset && candidate.IsEmpty() {
		return resetReply
	}
	return s.summarizer.Summarize(ctx, utterance, result)
}

// Property returns one dataset record by ID, or nil.
func (s *ChatService) Property(id int64) *model.PropertyRecord {
	return s.dataset.ByID(id)
}

// SessionSnapshot returns the state of one conversation. The second
// return is false when the session does not exist.
func (s *ChatService) SessionSnapshot(id string) (model.SessionSnapshot, bool) {
	session := s.sessions.Get(id)
	if session == nil {
		return model.SessionSnapshot{}, false
	}
	return session.Snapshot(), true
}

// ResetSession clears a conversation's filter and history, keeping the
// session alive. It reports whether the session existed.
func (s *ChatService) ResetSession(id string) bool {
	session := s.sessions.Get(id)
	if session == nil {
		return false
	}
	session.Reset()
	return true
}

// DeleteSession removes a conversation entirely.
func (s *ChatService) DeleteSession(id string) bool {
	return s.sessions.Delete(id)
}

// DatasetSize returns the number of loaded records.
func (s *ChatService) DatasetSize() int {
	return s.dataset.Len()
}

// DatasetSkipped returns the number of source rows dropped at load.
func (s *ChatService) DatasetSkipped() int {
	return s.dataset.Skipped()
}

// SessionCount returns the number of live conversations.
func (s *ChatService) SessionCount() int {
	return s.sessions.Count()
}

// AIEnabled reports whether model-backed extraction is configured.
func (s *ChatService) AIEnabled() bool {
	return s.extractor != nil && s.extractor.Enabled()
}

// buildCards shapes the leading matches for presentation.
func buildCards(records []model.PropertyRecord, limit int) []model.PropertyCard {
	if len(records) > limit {
		records = records[:limit]
	}
	cards := make([]model.PropertyCard, 0, len(records))
	for i := range records {
		cards = append(cards, buildCard(&records[i]))
	}
	return cards
}

func buildCard(record *model.PropertyRecord) model.PropertyCard {
	card := model.PropertyCard{
		ID:        record.ID,
		Pincode:   record.Pincode,
		Bedrooms:  record.Bedrooms,
		Bathrooms: record.Bathrooms,
		Balconies: record.Balconies,
	}
	if record.ProjectName != nil {
		card.ProjectName = *record.ProjectName
	}
	if record.City != nil {
		card.City = *record.City
	}
	if record.Locality != nil {
		card.Locality = *record.Locality
	}
	if record.Landmark != nil {
		card.Landmark = *record.Landmark
	}
	if record.Price != nil {
		card.PriceFormatted = utils.FormatAmount(*record.Price)
	}
	if record.PropertyType != nil {
		card.PropertyType = *record.PropertyType
	}
	if record.PossessionStatus != nil {
		card.PossessionStatus = *record.PossessionStatus
	}
	return card
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"propchat/internal/model"
	"propchat/internal/repository"
)

func newTestChatService(client AIClient) *ChatService {
	dataset := repository.NewDataset(testRecords(), 0)
	return NewChatService(
		dataset,
		NewExtractor(client),
		NewSummarizer(client, 3),
		NewSessionManager(50),
		6,
	)
}

func TestChatTurnPipeline(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune", "bedrooms": 2, "min_price": 6000000, "max_price": 12000000}`,
		summarizeOut: "Found some great options in Pune.",
	}
	svc := newTestChatService(client)

	resp, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message: "Show me 2BHK in Pune between 60L and 1.2Cr",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "Found some great options in Pune.", resp.Reply)
	require.False(t, resp.ParseFailed)

	require.NotNil(t, resp.Filter.City)
	require.Equal(t, "Pune", *resp.Filter.City)
	require.Equal(t, 2, *resp.Filter.Bedrooms)
	require.Equal(t, 6000000.0, *resp.Filter.MinPrice)
	require.Equal(t, 12000000.0, *resp.Filter.MaxPrice)

	require.Equal(t, 1, resp.MatchCount)
	require.Equal(t, 2, resp.Excluded)
	require.Len(t, resp.Cards, 1)
	require.Equal(t, int64(1), resp.Cards[0].ID)
	require.Equal(t, "Kumar Palaces", resp.Cards[0].ProjectName)
	require.Equal(t, "₹75 L", resp.Cards[0].PriceFormatted)
}

func TestChatSecondTurnRefines(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune", "bedrooms": 2, "min_price": 6000000, "max_price": 12000000}`,
		summarizeOut: "Found some great options in Pune.",
	}
	svc := newTestChatService(client)

	first, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message: "Show me 2BHK in Pune between 60L and 1.2Cr",
	})
	require.NoError(t, err)

	client.interpretOut = `{"max_price": 30000000}`
	second, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message:   "under 3 Cr",
		SessionID: first.SessionID,
	})
	require.NoError(t, err)

	require.Equal(t, first.SessionID, second.SessionID)
	require.Equal(t, "Pune", *second.Filter.City)
	require.Equal(t, 2, *second.Filter.Bedrooms)
	require.Equal(t, 6000000.0, *second.Filter.MinPrice)
	require.Equal(t, 30000000.0, *second.Filter.MaxPrice)

	// The second call saw the filter accumulated by the first turn.
	require.NotNil(t, client.lastPrior)
	require.Equal(t, "Pune", *client.lastPrior.City)
}

func TestChatFailedTurnKeepsResults(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune", "bedrooms": 2, "min_price": 6000000, "max_price": 12000000}`,
		summarizeOut: "Found some great options in Pune.",
	}
	svc := newTestChatService(client)

	first, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message: "Show me 2BHK in Pune between 60L and 1.2Cr",
	})
	require.NoError(t, err)

	client.interpretErr = errors.New("request timeout")
	second, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message:   "hmm what about the weather",
		SessionID: first.SessionID,
	})
	require.NoError(t, err)

	require.True(t, second.ParseFailed)
	require.Equal(t, parseFailedReply, second.Reply)
	require.Equal(t, first.Filter, second.Filter)
	require.Equal(t, first.MatchCount, second.MatchCount)

	snapshot, ok := svc.SessionSnapshot(first.SessionID)
	require.True(t, ok)
	require.Len(t, snapshot.Turns, 2)
	require.True(t, snapshot.Turns[1].ParseFailed)
}

func TestChatResetTurn(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune"}`,
		summarizeOut: "Plenty in Pune.",
	}
	svc := newTestChatService(client)

	first, err := svc.HandleTurn(context.Background(), &model.ChatRequest{Message: "homes in Pune"})
	require.NoError(t, err)

	client.interpretOut = `{"reset": true}`
	second, err := svc.HandleTurn(context.Background(), &model.ChatRequest{
		Message:   "start over",
		SessionID: first.SessionID,
	})
	require.NoError(t, err)

	require.True(t, second.Filter.IsEmpty())
	require.Equal(t, resetReply, second.Reply)
	require.Equal(t, 5, second.MatchCount)
}

func TestChatStreamEvents(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune"}`,
		summarizeOut: "Plenty in Pune.",
	}
	svc := newTestChatService(client)

	var events []string
	var doneData any
	resp, err := svc.HandleTurnStream(context.Background(), &model.ChatRequest{Message: "homes in Pune"}, func(event string, data any) error {
		events = append(events, event)
		if event == "done" {
			doneData = data
		}
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, []string{"start", "filters", "results", "summary", "done"}, events)
	require.Same(t, resp, doneData)
}

func TestChatStreamCallbackErrorAbortsTurn(t *testing.T) {
	client := &stubAIClient{
		enabled:      true,
		interpretOut: `{"city": "Pune"}`,
	}
	svc := newTestChatService(client)

	var sessionID string
	_, err := svc.HandleTurnStream(context.Background(), &model.ChatRequest{Message: "homes in Pune"}, func(event string, data any) error {
		if event == "start" {
			sessionID = data.(map[string]any)["session_id"].(string)
			return nil
		}
		return errors.New("client went away")
	})
	require.Error(t, err)

	// The turn must not be half-applied.
	snapshot, ok := svc.SessionSnapshot(sessionID)
	require.True(t, ok)
	require.Empty(t, snapshot.Turns)
	require.True(t, snapshot.Filter.IsEmpty())
}

func TestChatPropertyLookup(t *testing.T) {
	svc := newTestChatService(&stubAIClient{})

	record := svc.Property(3)
	require.NotNil(t, record)
	require.Equal(t, "Mumbai", *record.City)

	require.Nil(t, svc.Property(99))
}

func TestChatSessionOperations(t *testing.T) {
	client := &stubAIClient{enabled: true, interpretOut: `{"city": "Pune"}`, summarizeOut: "ok"}
	svc := newTestChatService(client)

	require.False(t, svc.ResetSession("missing"))
	require.False(t, svc.DeleteSession("missing"))

	resp, err := svc.HandleTurn(context.Background(), &model.ChatRequest{Message: "homes in Pune"})
	require.NoError(t, err)
	require.Equal(t, 1, svc.SessionCount())

	require.True(t, svc.ResetSession(resp.SessionID))
	snapshot, ok := svc.SessionSnapshot(resp.SessionID)
	require.True(t, ok)
	require.True(t, snapshot.Filter.IsEmpty())

	require.True(t, svc.DeleteSession(resp.SessionID))
	require.Zero(t, svc.SessionCount())
}

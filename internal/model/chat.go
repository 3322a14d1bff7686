package model

import "time"

// ChatRequest is one conversational turn. SessionID is optional; the
// server mints a session when it is absent or unknown.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the outcome of one turn.
type ChatResponse struct {
	SessionID   string          `json:"session_id"`
	Reply       string          `json:"reply"`
	Filter      EffectiveFilter `json:"filter"`
	ParseFailed bool            `json:"parse_failed,omitempty"`
	MatchCount  int             `json:"match_count"`
	Excluded    int             `json:"excluded_count,omitempty"`
	Cards       []PropertyCard  `json:"cards,omitempty"`
	Took        int64           `json:"took_ms"`
}

// TurnRecord is one entry in a session's history.
type TurnRecord struct {
	Utterance   string          `json:"utterance"`
	Filter      EffectiveFilter `json:"filter"`
	MatchCount  int             `json:"match_count"`
	ParseFailed bool            `json:"parse_failed,omitempty"`
	At          time.Time       `json:"at"`
}

// SessionSnapshot is the inspectable state of one conversation.
type SessionSnapshot struct {
	SessionID  string          `json:"session_id"`
	Filter     EffectiveFilter `json:"filter"`
	MatchCount int             `json:"match_count"`
	Turns      []TurnRecord    `json:"turns,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

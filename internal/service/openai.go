package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"propchat/internal/config"
	"propchat/internal/model"
)

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	// Use configured model if not specified
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	// Apply default parameters from config
	if req.Temperature == 0 && c.config.ChatTemperature > 0 {
		req.Temperature = c.config.ChatTemperature
	}
	if req.TopP == 0 && c.config.ChatTopP > 0 {
		req.TopP = c.config.ChatTopP
	}
	if req.MaxTokens == 0 && c.config.ChatMaxTokens > 0 {
		req.MaxTokens = c.config.ChatMaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

const extractionPrompt = `You are a real estate search assistant in India. Parse the user's latest message into structured search filters, using the currently applied filters as context.

Extract the following information if present:
- city: the city to search in, e.g. "Pune" or "Mumbai" (string)
- locality: neighbourhood or area within the city, e.g. "Baner" (string)
- min_price: minimum budget in rupees (number)
- max_price: maximum budget in rupees (number)
- bedrooms: number of bedrooms; "2BHK" means 2 (integer)
- property_type: one of "apartment", "villa", "independent house", "plot", "penthouse", "studio", "builder floor", "duplex" (string)
- possession_status: one of "ready to move", "under construction", "new launch" (string)
- reset: true only when the user asks to start over or clear their search (boolean)

Budget rules:
- "between X and Y" means min_price X and max_price Y
- "over X" or "above X" means min_price only
- "under Y" or "below Y" or "within Y" means max_price only
- 1 lakh (L) = 100000 and 1 crore (Cr) = 10000000, so "60L" = 6000000 and "1.2Cr" = 12000000
- Amounts may be given as strings with units ("60L") or plain rupee numbers

Important rules:
- Respond ONLY with valid JSON
- Include ONLY fields the latest message mentions; omit everything else
- Never copy values from the applied filters into your response
- When the message changes an already-set field, output just the new value

Examples:
Message: "2BHK in Pune between 60L and 1.2Cr"
Response: {"city": "Pune", "bedrooms": 2, "min_price": 6000000, "max_price": 12000000}

Message: "under 3 Cr"
Response: {"max_price": 30000000}

Message: "show me villas instead"
Response: {"property_type": "villa"}

Message: "ready to move flats near Baner"
Response: {"locality": "Baner", "property_type": "apartment", "possession_status": "ready to move"}

Message: "start over"
Response: {"reset": true}`

// Interpret sends one utterance to the model and returns its raw JSON
// reply. The prior filter is embedded in the prompt so follow-up
// messages ("under 3 Cr") are read as refinements.
func (c *OpenAIClient) Interpret(ctx context.Context, utterance string, prior *model.EffectiveFilter) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("OpenAI API is not enabled")
	}

	priorJSON := "{}"
	if prior != nil {
		if encoded, err := json.Marshal(prior); err == nil {
			priorJSON = string(encoded)
		}
	}

	userPrompt := fmt.Sprintf("Currently applied filters: %s\n\nLatest message: %q", priorJSON, utterance)

	req := ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []ChatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.2,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

// Summarize asks the model for a short grounded reply about a sample
// of matches. The prompt forbids stating the total match count; the
// model only sees the sample, so any count it invents would be wrong.
func (c *OpenAIClient) Summarize(ctx context.Context, utterance string, sample []model.PropertyRecord) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("OpenAI API is not enabled")
	}

	sampleJSON, err := json.Marshal(sample)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sample: %w", err)
	}

	prompt := fmt.Sprintf(`You are a helpful real estate assistant. A user asked: %q
I found some relevant properties in the database. Here is a sample:
%s

Please write a 2-3 sentence summary of these findings.

CRITICAL RULE: Do NOT mention the total number of properties found.
Instead, just describe the results you see. Start with something like
"Based on your query, I found several properties that might interest you."`, utterance, sampleJSON)

	req := ChatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

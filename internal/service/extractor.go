package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"propchat/internal/model"
	"propchat/internal/utils"
)

// Extractor turns one utterance into a validated FilterCandidate using
// the language model. Extraction never fails a turn: model errors,
// timeouts and unusable output degrade to a candidate flagged
// ParseFailed, with a conservative pattern fallback for budgets.
type Extractor struct {
	client AIClient
}

// NewExtractor creates a new extractor
func NewExtractor(client AIClient) *Extractor {
	return &Extractor{client: client}
}

// Enabled reports whether model-backed extraction is available.
func (e *Extractor) Enabled() bool {
	return e.client != nil && e.client.IsEnabled()
}

// Extract parses the utterance against the conversation's current
// filter. The inputs are never modified.
func (e *Extractor) Extract(ctx context.Context, utterance string, prior *model.EffectiveFilter) *model.FilterCandidate {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return &model.FilterCandidate{}
	}

	if e.client == nil || !e.client.IsEnabled() {
		log.Printf("AI extraction is not enabled, using pattern fallback. Set OPENAI_API_KEY to enable it.")
		return fallbackExtract(utterance)
	}

	raw, err := e.client.Interpret(ctx, utterance, prior)
	if err != nil {
		log.Printf("AI extraction failed: %v, using pattern fallback", err)
		return fallbackExtract(utterance)
	}

	candidate, err := decodeCandidate(raw)
	if err != nil {
		log.Printf("Unusable model output: %v, using pattern fallback", err)
		return fallbackExtract(utterance)
	}

	return candidate
}

// rawExtraction is the wire shape of the model's reply. Prices are
// decoded leniently because models sometimes answer "60L" instead of
// 6000000 despite the prompt.
type rawExtraction struct {
	City             *string    `json:"city"`
	Locality         *string    `json:"locality"`
	MinPrice         flexAmount `json:"min_price"`
	MaxPrice         flexAmount `json:"max_price"`
	Bedrooms         flexCount  `json:"bedrooms"`
	PropertyType     *string    `json:"property_type"`
	PossessionStatus *string    `json:"possession_status"`
	Reset            bool       `json:"reset"`
}

func decodeCandidate(raw string) (*model.FilterCandidate, error) {
	var payload rawExtraction
	if err := utils.ParseModelJSON(raw, &payload); err != nil {
		return nil, err
	}
	return payload.toCandidate(), nil
}

// toCandidate validates the decoded payload field by field. A field
// that fails validation is dropped; it never fails the whole turn.
func (r *rawExtraction) toCandidate() *model.FilterCandidate {
	candidate := &model.FilterCandidate{Reset: r.Reset}

	if city := cleanText(r.City); city != "" {
		candidate.City = &city
	}
	if locality := cleanText(r.Locality); locality != "" {
		candidate.Locality = &locality
	}

	candidate.MinPrice = r.MinPrice.value
	candidate.MaxPrice = r.MaxPrice.value
	if r.MinPrice.invalid {
		log.Printf("Dropped unusable min_price from model output")
	}
	if r.MaxPrice.invalid {
		log.Printf("Dropped unusable max_price from model output")
	}
	if candidate.MinPrice != nil && *candidate.MinPrice < 0 {
		log.Printf("Dropped negative min_price from model output")
		candidate.MinPrice = nil
	}
	if candidate.MaxPrice != nil && *candidate.MaxPrice < 0 {
		log.Printf("Dropped negative max_price from model output")
		candidate.MaxPrice = nil
	}

	// A reversed range is repaired, not rejected.
	if candidate.MinPrice != nil && candidate.MaxPrice != nil && *candidate.MinPrice > *candidate.MaxPrice {
		candidate.MinPrice, candidate.MaxPrice = candidate.MaxPrice, candidate.MinPrice
	}

	if r.Bedrooms.value != nil {
		bedrooms := *r.Bedrooms.value
		if bedrooms >= 0 && bedrooms <= 20 {
			candidate.Bedrooms = &bedrooms
		} else {
			log.Printf("Dropped out-of-range bedrooms %d from model output", bedrooms)
		}
	}

	if value := cleanText(r.PropertyType); value != "" {
		normalized, known := utils.NormalizePropertyType(value)
		candidate.PropertyType = &normalized
		if !known {
			candidate.LowConfidence = append(candidate.LowConfidence, model.FieldPropertyType)
		}
	}
	if value := cleanText(r.PossessionStatus); value != "" {
		normalized, known := utils.NormalizePossessionStatus(value)
		candidate.PossessionStatus = &normalized
		if !known {
			candidate.LowConfidence = append(candidate.LowConfidence, model.FieldPossessionStatus)
		}
	}

	return candidate
}

// cleanText trims a model-supplied string, treating the usual
// null spellings as absent.
func cleanText(p *string) string {
	if p == nil {
		return ""
	}
	value := strings.TrimSpace(*p)
	if strings.EqualFold(value, "null") || strings.EqualFold(value, "none") || strings.EqualFold(value, "n/a") {
		return ""
	}
	return value
}

// flexAmount decodes a price that may arrive as a JSON number, an
// Indian shorthand string ("60L", "1.2 Cr"), or null. Unusable values
// are dropped rather than failing the payload.
type flexAmount struct {
	value   *float64
	invalid bool
}

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		a.value = &number
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		a.invalid = true
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "null") || strings.EqualFold(text, "none") {
		return nil
	}

	rupees, err := utils.ParseAmount(text)
	if err != nil {
		a.invalid = true
		return nil
	}
	a.value = &rupees
	return nil
}

// flexCount decodes an integer that may arrive as a number or a
// numeric string.
type flexCount struct {
	value *int
}

func (c *flexCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		n := int(number)
		c.value = &n
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
		c.value = &n
	}
	return nil
}

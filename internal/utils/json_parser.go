package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseModelJSON decodes a JSON object from raw model output. Model
// replies are untrusted: the object may arrive bare, wrapped in a
// markdown fence, buried in prose, or with small defects (trailing
// commas, unquoted keys). Candidates are tried in order of likelihood.
func ParseModelJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty model output")
	}

	candidates := []string{input}
	if fenced := stripFence(input); fenced != "" {
		candidates = append(candidates, fenced)
	}
	if embedded := firstJSONObject(input); embedded != "" {
		candidates = append(candidates, embedded)
	}

	var lastErr error
	for _, candidate := range candidates {
		if lastErr = json.Unmarshal([]byte(candidate), target); lastErr == nil {
			return nil
		}
		repaired := repairJSON(candidate)
		if repaired == candidate {
			continue
		}
		if lastErr = json.Unmarshal([]byte(repaired), target); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("no JSON object in model output %q: %w", Truncate(input, 120), lastErr)
}

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// stripFence pulls the body out of a markdown code fence.
func stripFence(input string) string {
	matches := fencePattern.FindStringSubmatch(input)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// firstJSONObject scans for the first balanced {...} span, skipping
// braces inside string literals.
func firstJSONObject(input string) string {
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, ch := range input {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			if depth == 0 {
				start = i
			}
			depth++
		case ch == '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

var (
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyPattern   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)
	controlCharPattern   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// repairJSON fixes the defects models most often introduce.
func repairJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	s = unquotedKeyPattern.ReplaceAllString(s, `$1"$2"$3`)
	s = controlCharPattern.ReplaceAllString(s, "")
	return s
}

// Truncate shortens a string for log lines.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// PrettyJSON formats a value with indentation for display.
func PrettyJSON(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

package service

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"propchat/internal/model"
	"propchat/internal/utils"
)

// Pattern fallback for when the model is unavailable or returns
// garbage. It only recovers what can be read unambiguously from the
// utterance: budget bounds with an explicit unit, a "N BHK" bedroom
// count, and reset phrases. Everything else is left unset.
var (
	amountGroup = `₹?\s*([\d.,]+\s*(?:crores?|cr|lakhs?|lacs?|l|k))\b`

	rangePattern = regexp.MustCompile(`(?i)\bbetween\s*` + amountGroup + `\s*(?:and|to|-)\s*` + amountGroup)
	upperPattern = regexp.MustCompile(`(?i)\b(?:under|below|within|up\s*to|max(?:imum)?)\s*` + amountGroup)
	lowerPattern = regexp.MustCompile(`(?i)\b(?:over|above|at\s*least|min(?:imum)?)\s*` + amountGroup)

	bedroomsPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:bhk|bed(?:room)?s?)\b`)

	resetPhrases = []string{"start over", "start again", "start fresh", "reset", "clear all", "clear filters", "new search"}
)

// fallbackExtract builds a candidate from the utterance alone. The
// result always carries ParseFailed so callers know the model did not
// vouch for it.
func fallbackExtract(utterance string) *model.FilterCandidate {
	candidate := &model.FilterCandidate{ParseFailed: true}

	lowered := strings.ToLower(utterance)
	for _, phrase := range resetPhrases {
		if strings.Contains(lowered, phrase) {
			candidate.Reset = true
			break
		}
	}

	if m := rangePattern.FindStringSubmatch(utterance); m != nil {
		low, lowErr := utils.ParseAmount(m[1])
		high, highErr := utils.ParseAmount(m[2])
		if lowErr == nil && highErr == nil {
			if low > high {
				low, high = high, low
			}
			candidate.MinPrice = &low
			candidate.MaxPrice = &high
		}
	} else {
		if m := upperPattern.FindStringSubmatch(utterance); m != nil {
			if high, err := utils.ParseAmount(m[1]); err == nil {
				candidate.MaxPrice = &high
			}
		}
		if m := lowerPattern.FindStringSubmatch(utterance); m != nil {
			if low, err := utils.ParseAmount(m[1]); err == nil {
				candidate.MinPrice = &low
			}
		}
	}

	if m := bedroomsPattern.FindStringSubmatch(utterance); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 20 {
			candidate.Bedrooms = &n
		}
	}

	if !candidate.IsEmpty() {
		log.Printf("Pattern fallback recovered a partial filter from the utterance")
	}

	return candidate
}

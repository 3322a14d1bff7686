package service

import (
	"strings"

	"propchat/internal/model"
	"propchat/internal/utils"
)

// verdict is the outcome of checking one record against the filter.
type verdict int

const (
	// verdictMatch: every populated predicate passed.
	verdictMatch verdict = iota
	// verdictMissing: no predicate failed, but at least one could not
	// be evaluated because the record lacks the field.
	verdictMissing
	// verdictFail: at least one predicate definitively failed.
	verdictFail
)

// Apply filters the dataset. All populated predicates must pass
// (conjunctive), price bounds are inclusive, and matches keep the
// dataset's original order. Records that cannot be evaluated against a
// populated predicate are excluded and counted, unless another
// predicate already ruled them out.
func Apply(filter *model.EffectiveFilter, records []model.PropertyRecord) *model.MatchResult {
	result := &model.MatchResult{Filter: *filter}

	if filter.IsEmpty() {
		result.Records = append([]model.PropertyRecord(nil), records...)
		result.Count = len(result.Records)
		return result
	}

	for i := range records {
		switch evaluate(filter, &records[i]) {
		case verdictMatch:
			result.Records = append(result.Records, records[i])
		case verdictMissing:
			result.Excluded++
		}
	}
	result.Count = len(result.Records)
	return result
}

func evaluate(filter *model.EffectiveFilter, record *model.PropertyRecord) verdict {
	missing := false

	if filter.City != nil {
		if record.City == nil {
			missing = true
		} else if !strings.EqualFold(strings.TrimSpace(*record.City), *filter.City) {
			return verdictFail
		}
	}
	if filter.Locality != nil {
		if record.Locality == nil {
			missing = true
		} else if !strings.Contains(strings.ToLower(*record.Locality), strings.ToLower(*filter.Locality)) {
			return verdictFail
		}
	}
	if filter.MinPrice != nil {
		if record.Price == nil {
			missing = true
		} else if *record.Price < *filter.MinPrice {
			return verdictFail
		}
	}
	if filter.MaxPrice != nil {
		if record.Price == nil {
			missing = true
		} else if *record.Price > *filter.MaxPrice {
			return verdictFail
		}
	}
	if filter.Bedrooms != nil {
		if record.Bedrooms == nil {
			missing = true
		} else if *record.Bedrooms != *filter.Bedrooms {
			return verdictFail
		}
	}
	if filter.PropertyType != nil {
		switch matchEnum(record.PropertyType, *filter.PropertyType, filter.HasLowConfidence(model.FieldPropertyType), utils.NormalizePropertyType) {
		case verdictFail:
			return verdictFail
		case verdictMissing:
			missing = true
		}
	}
	if filter.PossessionStatus != nil {
		switch matchEnum(record.PossessionStatus, *filter.PossessionStatus, filter.HasLowConfidence(model.FieldPossessionStatus), utils.NormalizePossessionStatus) {
		case verdictFail:
			return verdictFail
		case verdictMissing:
			missing = true
		}
	}

	if missing {
		return verdictMissing
	}
	return verdictMatch
}

// matchEnum compares a record's enum value against the filter's. A
// low-confidence filter value is free text the normalizer did not
// recognize, so it falls back to a case-insensitive substring match.
func matchEnum(recordValue *string, want string, freeText bool, normalize func(string) (string, bool)) verdict {
	if recordValue == nil {
		return verdictMissing
	}
	if freeText {
		if strings.Contains(strings.ToLower(*recordValue), strings.ToLower(want)) {
			return verdictMatch
		}
		return verdictFail
	}
	normalized, _ := normalize(*recordValue)
	if strings.EqualFold(normalized, want) {
		return verdictMatch
	}
	return verdictFail
}

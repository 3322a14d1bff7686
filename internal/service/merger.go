package service

import "propchat/internal/model"

// MergeFilters folds one turn's candidate into the conversation's
// previous filter and returns the new effective filter. It is a pure
// function: neither argument is modified and the result shares no
// pointers with them.
//
// Rules, in order:
//   - reset discards the previous filter; the candidate stands alone
//   - a populated candidate field overwrites, everything else carries
//     forward from the previous turn
//   - a reversed price range after the merge is repaired: a lone new
//     bound clears the stale one it contradicts, otherwise the bounds
//     are swapped into order
func MergeFilters(candidate *model.FilterCandidate, previous *model.EffectiveFilter) *model.EffectiveFilter {
	merged := &model.EffectiveFilter{}

	if previous != nil && !candidate.Reset {
		merged.City = copyStr(previous.City)
		merged.Locality = copyStr(previous.Locality)
		merged.MinPrice = copyFloat(previous.MinPrice)
		merged.MaxPrice = copyFloat(previous.MaxPrice)
		merged.Bedrooms = copyInt(previous.Bedrooms)
		merged.PropertyType = copyStr(previous.PropertyType)
		merged.PossessionStatus = copyStr(previous.PossessionStatus)
		merged.LowConfidence = append([]string(nil), previous.LowConfidence...)
	}

	if candidate.City != nil {
		merged.City = copyStr(candidate.City)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldCity)
	}
	if candidate.Locality != nil {
		merged.Locality = copyStr(candidate.Locality)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldLocality)
	}
	if candidate.MinPrice != nil {
		merged.MinPrice = copyFloat(candidate.MinPrice)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldMinPrice)
	}
	if candidate.MaxPrice != nil {
		merged.MaxPrice = copyFloat(candidate.MaxPrice)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldMaxPrice)
	}
	if candidate.Bedrooms != nil {
		merged.Bedrooms = copyInt(candidate.Bedrooms)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldBedrooms)
	}
	if candidate.PropertyType != nil {
		merged.PropertyType = copyStr(candidate.PropertyType)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldPropertyType)
	}
	if candidate.PossessionStatus != nil {
		merged.PossessionStatus = copyStr(candidate.PossessionStatus)
		merged.LowConfidence = dropField(merged.LowConfidence, model.FieldPossessionStatus)
	}

	for _, field := range candidate.LowConfidence {
		if !merged.HasLowConfidence(field) {
			merged.LowConfidence = append(merged.LowConfidence, field)
		}
	}

	// Repair a reversed range. A lone new bound clears the stale one
	// it contradicts; otherwise the bounds are swapped into order.
	if merged.MinPrice != nil && merged.MaxPrice != nil && *merged.MinPrice > *merged.MaxPrice {
		if candidate.MaxPrice != nil && candidate.MinPrice == nil {
			merged.MinPrice = nil
		} else if candidate.MinPrice != nil && candidate.MaxPrice == nil {
			merged.MaxPrice = nil
		} else {
			merged.MinPrice, merged.MaxPrice = merged.MaxPrice, merged.MinPrice
		}
	}

	return merged
}

func dropField(fields []string, name string) []string {
	out := fields[:0]
	for _, field := range fields {
		if field != name {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func copyStr(p *string) *string {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	value := *p
	return &value
}

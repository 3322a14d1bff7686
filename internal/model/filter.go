package model

// Filter field names, as they appear in extraction payloads,
// low-confidence flags and API responses.
const (
	FieldCity             = "city"
	FieldLocality         = "locality"
	FieldMinPrice         = "min_price"
	FieldMaxPrice         = "max_price"
	FieldBedrooms         = "bedrooms"
	FieldPropertyType     = "property_type"
	FieldPossessionStatus = "possession_status"
)

// FilterCandidate is one utterance's worth of extracted constraints.
// nil means the utterance said nothing about that field; a populated
// pointer overwrites the running filter on merge.
type FilterCandidate struct {
	City             *string  `json:"city,omitempty"`
	Locality         *string  `json:"locality,omitempty"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	Bedrooms         *int     `json:"bedrooms,omitempty"`
	PropertyType     *string  `json:"property_type,omitempty"`
	PossessionStatus *string  `json:"possession_status,omitempty"`

	// Reset discards the conversation's previous filter wholesale.
	Reset bool `json:"reset,omitempty"`

	// ParseFailed marks a turn whose model output was unusable. The
	// candidate carries no constraints and the conversation keeps its
	// previous state.
	ParseFailed bool `json:"parse_failed,omitempty"`

	// LowConfidence lists fields whose value matched no known
	// enumeration and was kept as free text.
	LowConfidence []string `json:"low_confidence,omitempty"`
}

// IsEmpty reports whether the candidate carries no constraints.
func (c *FilterCandidate) IsEmpty() bool {
	return c.City == nil && c.Locality == nil &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.Bedrooms == nil && c.PropertyType == nil &&
		c.PossessionStatus == nil
}

// EffectiveFilter is the merged, validated filter a conversation is
// currently searching with. It is replaced each turn, never mutated.
type EffectiveFilter struct {
	City             *string  `json:"city,omitempty"`
	Locality         *string  `json:"locality,omitempty"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	Bedrooms         *int     `json:"bedrooms,omitempty"`
	PropertyType     *string  `json:"property_type,omitempty"`
	PossessionStatus *string  `json:"possession_status,omitempty"`

	LowConfidence []string `json:"low_confidence,omitempty"`
}

// IsEmpty reports whether no field is populated. An empty filter
// matches the entire dataset.
func (f *EffectiveFilter) IsEmpty() bool {
	return f.City == nil && f.Locality == nil &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.Bedrooms == nil && f.PropertyType == nil &&
		f.PossessionStatus == nil
}

// PopulatedFields lists the fields the filter constrains, in schema
// order.
func (f *EffectiveFilter) PopulatedFields() []string {
	var fields []string
	if f.City != nil {
		fields = append(fields, FieldCity)
	}
	if f.Locality != nil {
		fields = append(fields, FieldLocality)
	}
	if f.MinPrice != nil {
		fields = append(fields, FieldMinPrice)
	}
	if f.MaxPrice != nil {
		fields = append(fields, FieldMaxPrice)
	}
	if f.Bedrooms != nil {
		fields = append(fields, FieldBedrooms)
	}
	if f.PropertyType != nil {
		fields = append(fields, FieldPropertyType)
	}
	if f.PossessionStatus != nil {
		fields = append(fields, FieldPossessionStatus)
	}
	return fields
}

// HasLowConfidence reports whether the named field was flagged as
// free text during extraction.
func (f *EffectiveFilter) HasLowConfidence(field string) bool {
	for _, name := range f.LowConfidence {
		if name == field {
			return true
		}
	}
	return false
}

package model

import (
	"database/sql/driver"
	"encoding/json"
)

// PropertyRecord is one listing from the loaded dataset. Pointer
// fields are nil when the source row had no usable value; a nil field
// never satisfies a populated filter predicate.
type PropertyRecord struct {
	ID               int64    `json:"id" db:"id"`
	ProjectName      *string  `json:"project_name,omitempty" db:"project_name"`
	City             *string  `json:"city,omitempty" db:"city"`
	Locality         *string  `json:"locality,omitempty" db:"locality"`
	Landmark         *string  `json:"landmark,omitempty" db:"landmark"`
	Pincode          *int     `json:"pincode,omitempty" db:"pincode"`
	Price            *float64 `json:"price,omitempty" db:"price"`
	Bedrooms         *int     `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms        *int     `json:"bathrooms,omitempty" db:"bathrooms"`
	Balconies        *int     `json:"balconies,omitempty" db:"balconies"`
	PropertyType     *string  `json:"property_type,omitempty" db:"property_type"`
	PossessionStatus *string  `json:"possession_status,omitempty" db:"possession_status"`
	Details          JSONMap  `json:"details,omitempty" db:"details"`
}

// MatchResult is the outcome of applying a filter to the dataset:
// the matching records in dataset order, their count, the number of
// records excluded because a predicate could not be evaluated against
// them, and the filter that produced the result.
type MatchResult struct {
	Records  []PropertyRecord `json:"records"`
	Count    int              `json:"count"`
	Excluded int              `json:"excluded"`
	Filter   EffectiveFilter  `json:"filter"`
}

// PropertyCard is the presentation shape for one record in chat
// replies.
type PropertyCard struct {
	ID               int64  `json:"id"`
	ProjectName      string `json:"project_name"`
	City             string `json:"city,omitempty"`
	Locality         string `json:"locality,omitempty"`
	Landmark         string `json:"landmark,omitempty"`
	Pincode          *int   `json:"pincode,omitempty"`
	PriceFormatted   string `json:"price_formatted,omitempty"`
	Bedrooms         *int   `json:"bedrooms,omitempty"`
	Bathrooms        *int   `json:"bathrooms,omitempty"`
	Balconies        *int   `json:"balconies,omitempty"`
	PropertyType     string `json:"property_type,omitempty"`
	PossessionStatus string `json:"possession_status,omitempty"`
}

// JSONMap is a JSON object column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}

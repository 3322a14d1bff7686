package utils

import "strings"

// Canonical enum values used across extraction, merging and matching.
// Anything not reachable through these tables stays free text and is
// flagged low-confidence by the extractor.
var propertyTypeAliases = map[string]string{
	"apartment":         "apartment",
	"apartments":        "apartment",
	"flat":              "apartment",
	"flats":             "apartment",
	"villa":             "villa",
	"villas":            "villa",
	"bungalow":          "villa",
	"house":             "independent house",
	"independent house": "independent house",
	"plot":              "plot",
	"plots":             "plot",
	"land":              "plot",
	"penthouse":         "penthouse",
	"studio":            "studio",
	"studio apartment":  "studio",
	"builder floor":     "builder floor",
	"duplex":            "duplex",
}

var possessionAliases = map[string]string{
	"ready":              "ready to move",
	"ready to move":      "ready to move",
	"ready to move in":   "ready to move",
	"ready-to-move":      "ready to move",
	"rtm":                "ready to move",
	"immediate":          "ready to move",
	"possession ready":   "ready to move",
	"under construction": "under construction",
	"under-construction": "under construction",
	"construction":       "under construction",
	"new launch":         "new launch",
	"newly launched":     "new launch",
	"pre launch":         "new launch",
	"pre-launch":         "new launch",
	"upcoming":           "new launch",
}

// NormalizePropertyType maps free text to a canonical property type.
// Unknown values come back cleaned but unrecognized so the caller can
// keep the raw text and flag it.
func NormalizePropertyType(raw string) (string, bool) {
	cleaned := CleanEnum(raw)
	if canonical, ok := propertyTypeAliases[cleaned]; ok {
		return canonical, true
	}
	return cleaned, false
}

// NormalizePossessionStatus maps free text to a canonical possession
// status ("ready to move", "under construction", "new launch").
func NormalizePossessionStatus(raw string) (string, bool) {
	cleaned := CleanEnum(raw)
	if canonical, ok := possessionAliases[cleaned]; ok {
		return canonical, true
	}
	return cleaned, false
}

// CleanEnum lowercases and collapses interior whitespace.
func CleanEnum(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

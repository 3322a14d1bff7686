package utils

import (
	"testing"
)

func TestNormalizePropertyType(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantKnown bool
	}{
		{
			name:      "Canonical value",
			input:     "apartment",
			want:      "apartment",
			wantKnown: true,
		},
		{
			name:      "Alias",
			input:     "Flat",
			want:      "apartment",
			wantKnown: true,
		},
		{
			name:      "Plural alias",
			input:     "villas",
			want:      "villa",
			wantKnown: true,
		},
		{
			name:      "Extra whitespace collapsed",
			input:     "  Builder   Floor ",
			want:      "builder floor",
			wantKnown: true,
		},
		{
			name:      "Unknown kept as free text",
			input:     "Farmhouse",
			want:      "farmhouse",
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := NormalizePropertyType(tt.input)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("NormalizePropertyType(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

func TestNormalizePossessionStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantKnown bool
	}{
		{
			name:      "Canonical value",
			input:     "Ready to Move",
			want:      "ready to move",
			wantKnown: true,
		},
		{
			name:      "Short alias",
			input:     "RTM",
			want:      "ready to move",
			wantKnown: true,
		},
		{
			name:      "Hyphenated alias",
			input:     "under-construction",
			want:      "under construction",
			wantKnown: true,
		},
		{
			name:      "Launch alias",
			input:     "pre launch",
			want:      "new launch",
			wantKnown: true,
		},
		{
			name:      "Unknown kept as free text",
			input:     "Resale",
			want:      "resale",
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := NormalizePossessionStatus(tt.input)
			if got != tt.want || known != tt.wantKnown {
				t.Errorf("NormalizePossessionStatus(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, known, tt.want, tt.wantKnown)
			}
		})
	}
}

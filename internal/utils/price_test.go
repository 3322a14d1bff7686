package utils

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{
			name:  "Lakh shorthand",
			input: "60L",
			want:  6000000,
		},
		{
			name:  "Crore shorthand with decimal",
			input: "1.2Cr",
			want:  12000000,
		},
		{
			name:  "Unit separated by space",
			input: "80 lakhs",
			want:  8000000,
		},
		{
			name:  "Crore word form",
			input: "2 crore",
			want:  20000000,
		},
		{
			name:  "Thousands shorthand",
			input: "95k",
			want:  95000,
		},
		{
			name:  "Plain number passes through",
			input: "6000000",
			want:  6000000,
		},
		{
			name:  "Rupee symbol stripped",
			input: "₹1.5 Cr",
			want:  15000000,
		},
		{
			name:  "Indian digit grouping",
			input: "1,20,000",
			want:  120000,
		},
		{
			name:  "Fractional crore",
			input: "0.6 cr",
			want:  6000000,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "No digits",
			input:   "cheap",
			wantErr: true,
		},
		{
			name:    "Unknown unit",
			input:   "12 bucks",
			wantErr: true,
		},
		{
			name:    "Negative amount",
			input:   "-50L",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmountIdempotent(t *testing.T) {
	once, err := ParseAmount("1.2Cr")
	if err != nil {
		t.Fatalf("ParseAmount() error = %v", err)
	}

	twice, err := ParseAmount("12000000")
	if err != nil {
		t.Fatalf("ParseAmount() error = %v", err)
	}

	if once != twice {
		t.Errorf("re-parsing normalized amount changed it: %v != %v", once, twice)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		rupees float64
		want   string
	}{
		{
			name:   "Crores",
			rupees: 12000000,
			want:   "₹1.2 Cr",
		},
		{
			name:   "Lakhs",
			rupees: 6000000,
			want:   "₹60 L",
		},
		{
			name:   "Thousands",
			rupees: 95000,
			want:   "₹95 K",
		},
		{
			name:   "Below a thousand",
			rupees: 500,
			want:   "₹500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(tt.rupees)
			if got != tt.want {
				t.Errorf("FormatAmount(%v) = %v, want %v", tt.rupees, got, tt.want)
			}
		})
	}
}

package utils

import (
	"testing"
)

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Bare JSON",
			input: `{"city": "Pune", "bedrooms": 2}`,
			want: map[string]interface{}{
				"city":     "Pune",
				"bedrooms": float64(2),
			},
		},
		{
			name: "Fenced with json tag",
			input: "```json\n" +
				`{"city": "Mumbai"}` + "\n```",
			want: map[string]interface{}{
				"city": "Mumbai",
			},
		},
		{
			name: "Fenced without tag",
			input: "```\n" +
				`{"bedrooms": 3}` + "\n```",
			want: map[string]interface{}{
				"bedrooms": float64(3),
			},
		},
		{
			name:  "Object buried in prose",
			input: `Sure, here are the filters: {"city": "Pune", "max_price": 12000000} and that's it.`,
			want: map[string]interface{}{
				"city":      "Pune",
				"max_price": float64(12000000),
			},
		},
		{
			name:  "Trailing comma repaired",
			input: `{"city": "Pune", "bedrooms": 2,}`,
			want: map[string]interface{}{
				"city":     "Pune",
				"bedrooms": float64(2),
			},
		},
		{
			name:  "Unquoted keys repaired",
			input: `{city: "Pune", bedrooms: 2}`,
			want: map[string]interface{}{
				"city":     "Pune",
				"bedrooms": float64(2),
			},
		},
		{
			name:  "Braces inside string values",
			input: `{"note": "range {60L-1.2Cr}", "city": "Pune"}`,
			want: map[string]interface{}{
				"note": "range {60L-1.2Cr}",
				"city": "Pune",
			},
		},
		{
			name:  "Byte order mark stripped",
			input: "\ufeff" + `{"city": "Pune"}`,
			want: map[string]interface{}{
				"city": "Pune",
			},
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "No JSON at all",
			input:   "I could not determine any filters.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseModelJSON(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseModelJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Errorf("ParseModelJSON() got = %v, want %v", got, tt.want)
				return
			}
			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("ParseModelJSON() got[%q] = %v, want %v", key, got[key], want)
				}
			}
		})
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "Nested objects",
			input: `{"a": {"b": 2}}`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "Closing brace inside string",
			input: `{"text": "hello }world{"}`,
			want:  `{"text": "hello }world{"}`,
		},
		{
			name:  "Leading prose",
			input: `result: {"a": 1} trailing`,
			want:  `{"a": 1}`,
		},
		{
			name:  "Unbalanced",
			input: `{"a": 1`,
			want:  "",
		},
		{
			name:  "No object",
			input: "nothing here",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstJSONObject(tt.input)
			if got != tt.want {
				t.Errorf("firstJSONObject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate() = %v, want short", got)
	}
	if got := Truncate("a long string that keeps going", 6); got != "a long..." {
		t.Errorf("Truncate() = %v, want a long...", got)
	}
}

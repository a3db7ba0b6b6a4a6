package generate

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{
			name:   "bare object",
			raw:    `{"a":1}`,
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "object surrounded by prose",
			raw:    "Here is your tailored resume:\n{\"a\":1}\nLet me know if you need changes.",
			want:   `{"a":1}`,
			wantOK: true,
		},
		{
			name:   "json code fence",
			raw:    "```json\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "plain code fence",
			raw:    "```\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "nested objects take full span",
			raw:    `prefix {"outer": {"inner": 2}} suffix`,
			want:   `{"outer": {"inner": 2}}`,
			wantOK: true,
		},
		{
			name:   "no braces at all",
			raw:    "I could not produce a resume for this input.",
			wantOK: false,
		},
		{
			name:   "braces but invalid json",
			raw:    "{not json}",
			wantOK: false,
		},
		{
			name:   "two top-level objects span fails",
			raw:    `{"a":1} and also {"b":2}`,
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "closing brace before opening",
			raw:    "} backwards {",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ExtractJSON(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if !tt.wantOK {
				if got != nil {
					t.Fatalf("ExtractJSON(%q) returned data %q on failure", tt.raw, got)
				}
				return
			}
			if string(got) != tt.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if !json.Valid(got) {
				t.Fatalf("ExtractJSON(%q) returned invalid JSON %q", tt.raw, got)
			}
		})
	}
}

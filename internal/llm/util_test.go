package llm

import "testing"

// TestCleanJSONBlock tests markdown fence stripping from model responses
func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Bare JSON unchanged",
			input:    `{"subject": "hello"}`,
			expected: `{"subject": "hello"}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"subject\": \"hello\"}\n```",
			expected: `{"subject": "hello"}`,
		},
		{
			name:     "Generic fence",
			input:    "```\n{\"subject\": \"hello\"}\n```",
			expected: `{"subject": "hello"}`,
		},
		{
			name:     "Surrounding whitespace",
			input:    "  \n```json\n{\"a\": 1}\n```\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONBlock(tt.input)
			if got != tt.expected {
				t.Errorf("CleanJSONBlock(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

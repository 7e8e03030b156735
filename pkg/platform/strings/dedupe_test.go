package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimFold(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  Nakuru  ", "Kisumu  ", "  Nyeri"},
			expected: []string{"Nakuru", "Kisumu", "Nyeri"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"Nairobi", "Mombasa", "Nairobi", "Kisumu", "Mombasa"},
			expected: []string{"Nairobi", "Mombasa", "Kisumu"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"Nairobi", "", "  ", "Mombasa"},
			expected: []string{"Nairobi", "Mombasa"},
		},
		{
			name:     "folds case keeping first spelling",
			input:    []string{"nairobi", "Nairobi", "NAIROBI", "Mombasa"},
			expected: []string{"nairobi", "Mombasa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimFold(tt.input))
		})
	}
}

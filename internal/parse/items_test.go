package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseItems(t *testing.T) {
	testCases := []struct {
		name      string
		args      []string
		expected  []int64
		expectErr bool
	}{
		{
			name:     "Single id",
			args:     []string{"3"},
			expected: []int64{3},
		},
		{
			name:     "Several arguments keep order",
			args:     []string{"3", "1", "3"},
			expected: []int64{3, 1, 3},
		},
		{
			name:     "Repeat count",
			args:     []string{"2x5"},
			expected: []int64{5, 5},
		},
		{
			name:     "Upper-case and star separators",
			args:     []string{"2X1", "3*2"},
			expected: []int64{1, 1, 2, 2, 2},
		},
		{
			name:     "Comma list with spaces",
			args:     []string{"1, 2x3 ,4"},
			expected: []int64{1, 3, 3, 4},
		},
		{
			name:     "Trailing comma",
			args:     []string{"7,"},
			expected: []int64{7},
		},
		{
			name:      "No items",
			args:      []string{},
			expectErr: true,
		},
		{
			name:      "Only commas",
			args:      []string{",,"},
			expectErr: true,
		},
		{
			name:      "Name instead of id",
			args:      []string{"Big Mac"},
			expectErr: true,
		},
		{
			name:      "Zero id",
			args:      []string{"0"},
			expectErr: true,
		},
		{
			name:      "Zero count",
			args:      []string{"0x3"},
			expectErr: true,
		},
		{
			name:      "Count too large",
			args:      []string{"51x3"},
			expectErr: true,
		},
		{
			name:      "Negative id",
			args:      []string{"-1"},
			expectErr: true,
		},
		{
			name:      "Id overflows int64",
			args:      []string{"99999999999999999999"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := ParseItems(tc.args)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, ids)
			}
		})
	}
}

package common

import (
	"testing"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "no account specified returns empty",
			args:     map[string]interface{}{},
			expected: "",
		},
		{
			name: "account specified returns account",
			args: map[string]interface{}{
				"account": "Work",
			},
			expected: "Work",
		},
		{
			name: "account with other params",
			args: map[string]interface{}{
				"account": "iCloud",
				"other":   "value",
			},
			expected: "iCloud",
		},
		{
			name:     "nil args returns empty",
			args:     nil,
			expected: "",
		},
		{
			name: "non-string account type returns empty",
			args: map[string]interface{}{
				"account": 123,
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetAccountFromArgs(tt.args)
			if result != tt.expected {
				t.Errorf("GetAccountFromArgs() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

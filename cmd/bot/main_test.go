package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "unset disables cooldown", value: "", expected: 0},
		{name: "valid integer", value: "5", expected: 5},
		{name: "explicit cooldown", value: "30", expected: 30},
		{name: "zero disables", value: "0", expected: 0},
		{name: "invalid uses default", value: "soon", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BLOG_COOLDOWN_SECONDS", tt.value)
			assert.Equal(t, tt.expected, getEnvAsInt("BLOG_COOLDOWN_SECONDS", defaultCooldownSeconds))
		})
	}
}

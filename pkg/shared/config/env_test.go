package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ACCOUNT_API_URL", "https://accounts.example.com")
	t.Setenv("EMPTY_VAR", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "base_url: http://localhost", "base_url: http://localhost"},
		{"set variable", "base_url: ${ACCOUNT_API_URL}", "base_url: https://accounts.example.com"},
		{"set variable ignores default", "${ACCOUNT_API_URL:-http://x}", "https://accounts.example.com"},
		{"unset with default", "${NOT_SET_ANYWHERE:-leveldb}", "leveldb"},
		{"empty with default", "${EMPTY_VAR:-fallback}", "fallback"},
		{"unset without default", "[${NOT_SET_ANYWHERE}]", "[]"},
		{"empty default", "[${NOT_SET_ANYWHERE:-}]", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandEnv(tt.input))
			assert.Equal(t, []byte(tt.want), ExpandEnvBytes([]byte(tt.input)))
		})
	}
}

func TestMissingEnvVars(t *testing.T) {
	t.Setenv("PRESENT", "yes")

	input := "${PRESENT} ${ABSENT_ONE} ${ABSENT_TWO:-x} ${ABSENT_ONE} ${ABSENT_THREE}"
	assert.Equal(t, []string{"ABSENT_ONE", "ABSENT_THREE"}, MissingEnvVars(input))
}

// Package config holds helpers shared by configuration loaders.
package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR} or ${VAR:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv replaces environment variable references in the input string
// with their values.
//
// Supported formats:
//   - ${VAR}          - the value of VAR, or "" if not set
//   - ${VAR:-default} - the value of VAR, or "default" if VAR is unset or empty
//
// Example:
//
//	api:
//	  base_url: ${ACCOUNT_API_URL:-http://localhost:8080}
func ExpandEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		if value, ok := os.LookupEnv(parts[1]); ok && value != "" {
			return value
		}
		if len(parts) >= 4 && parts[2] != "" {
			return parts[3]
		}
		return ""
	})
}

// ExpandEnvBytes is a convenience wrapper around ExpandEnv for file contents
// read before YAML/JSON unmarshaling.
func ExpandEnvBytes(input []byte) []byte {
	return []byte(ExpandEnv(string(input)))
}

// MissingEnvVars returns the variables referenced without a default that are
// unset or empty, in order of first appearance.
func MissingEnvVars(input string) []string {
	seen := make(map[string]bool)
	missing := make([]string, 0)

	for _, match := range envVarPattern.FindAllStringSubmatch(input, -1) {
		name := match[1]
		hasDefault := len(match) >= 4 && match[2] != ""
		if seen[name] || hasDefault {
			continue
		}
		seen[name] = true

		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}

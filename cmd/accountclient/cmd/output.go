package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ideamans/accountclient/pkg/token"
)

// printUser writes user as YAML.
func printUser(w io.Writer, user token.User) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]interface{}(user)); err != nil {
		return fmt.Errorf("failed to print user: %w", err)
	}
	return enc.Close()
}

// formError renders form validation errors one field per line, sorted.
func formError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("  %s: %s", field, errs[field]))
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
}

// readSecret returns value, or reads one line from in when value is empty.
// Share one reader across prompts of the same command.
func readSecret(cmd *cobra.Command, in *bufio.Reader, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), prompt+": ")
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

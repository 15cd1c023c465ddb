package ollama

import (
	"fmt"
	"strings"
	"text/template"
)

// RenderTemplate substitutes named values into a prompt template using Go's
// text/template syntax. Missing keys are an error so prompt bugs surface
// immediately instead of producing half-filled prompts.
func RenderTemplate(tmpl string, data map[string]any) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}

	return sb.String(), nil
}

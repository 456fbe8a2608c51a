package emailing

import (
	"strings"
	"testing"
)

func TestResolveTemplate(t *testing.T) {
	t.Run("empty template", func(t *testing.T) {
		_, err := ResolveTemplate("test", "  ", nil)
		if err == nil {
			t.Error("should return error for empty template")
		}
	})

	t.Run("with placeholders", func(t *testing.T) {
		content, err := ResolveTemplate("test", "Hello {{.name}}!", map[string]string{"name": "World"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content != "Hello World!" {
			t.Errorf("unexpected content: %s", content)
		}
	})

	t.Run("invalid template", func(t *testing.T) {
		_, err := ResolveTemplate("test", "Hello {{.name!", nil)
		if err == nil {
			t.Error("should return error for invalid template")
		}
	})
}

func TestBuiltInTemplatesResolvable(t *testing.T) {
	payload := map[string]string{
		"customerName":   "Acme Corp",
		"agentName":      "Jamie",
		"assessmentName": "Annual Cyber Review",
		"providerName":   "SafeSure",
		"linkURL":        "https://forms.example.com/assessment/abc123",
		"progress":       "40",
	}

	for messageType := range defaultTemplates {
		subject, content, err := resolveMessage(messageType, payload)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", messageType, err)
		}
		if subject == "" {
			t.Errorf("empty subject for %s", messageType)
		}
		if !strings.Contains(content, payload["linkURL"]) {
			t.Errorf("content for %s should contain the link URL", messageType)
		}
	}
}

package productsearch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSystemPrompt = "You are a helpful IKEA product assistant."
	DefaultInstruction  = "You are an IKEA shopping assistant. Reformat the following product search results into a clear, user-friendly response:"
)

// PromptTemplate holds the fixed text wrapped around the search payload.
type PromptTemplate struct {
	System      string `yaml:"system"`
	Instruction string `yaml:"instruction"`
}

// DefaultPromptTemplate returns the built-in assistant prompt.
func DefaultPromptTemplate() PromptTemplate {
	return PromptTemplate{
		System:      DefaultSystemPrompt,
		Instruction: DefaultInstruction,
	}
}

// LoadPromptTemplate reads a YAML override. Missing keys keep their defaults; an empty path returns the defaults.
func LoadPromptTemplate(path string) (PromptTemplate, error) {
	tmpl := DefaultPromptTemplate()
	if strings.TrimSpace(path) == "" {
		return tmpl, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tmpl, fmt.Errorf("read prompt template: %w", err)
	}

	var override PromptTemplate
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tmpl, fmt.Errorf("parse prompt template %s: %w", path, err)
	}

	if strings.TrimSpace(override.System) != "" {
		tmpl.System = strings.TrimSpace(override.System)
	}
	if strings.TrimSpace(override.Instruction) != "" {
		tmpl.Instruction = strings.TrimSpace(override.Instruction)
	}
	return tmpl, nil
}

// Build renders the two-message prompt. The payload is embedded verbatim after the instruction line.
func (t PromptTemplate) Build(payload []byte) []Message {
	var user strings.Builder
	user.Grow(len(t.Instruction) + 1 + len(payload))
	user.WriteString(t.Instruction)
	user.WriteByte('\n')
	user.Write(payload)

	return []Message{
		{Role: RoleSystem, Content: t.System},
		{Role: RoleUser, Content: user.String()},
	}
}

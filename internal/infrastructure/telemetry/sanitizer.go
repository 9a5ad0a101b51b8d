package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIILevel defines how much user text reaches logs and spans
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed hashes PII with the service salt
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel maps a config value to a PIILevel, defaulting to hashed.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(raw))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

type piiRule struct {
	pattern *regexp.Regexp
	label   string
	hashed  bool // false means the match is always fully redacted
}

// Sanitizer scrubs search queries and generated text before they are logged
type Sanitizer struct {
	level PIILevel
	salt  string
	rules []piiRule
}

// NewSanitizer creates a sanitizer; salt keeps hashes stable per deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level: level,
		salt:  salt,
		rules: []piiRule{
			{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), "EMAIL", true},
			{regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), "CC", false},
			{regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), "PHONE", true},
			{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), "IP", true},
		},
	}
}

// Level returns the configured level
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeQuery sanitizes a caller supplied search query
func (s *Sanitizer) SanitizeQuery(query string) string {
	if query == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return query
	default:
		return s.scrub(query)
	}
}

// SanitizeText sanitizes generated text; same policy as queries
func (s *Sanitizer) SanitizeText(text string) string {
	return s.SanitizeQuery(text)
}

func (s *Sanitizer) scrub(input string) string {
	result := input
	for _, rule := range s.rules {
		rule := rule
		result = rule.pattern.ReplaceAllStringFunc(result, func(match string) string {
			if !rule.hashed {
				return fmt.Sprintf("[%s:REDACTED]", rule.label)
			}
			return fmt.Sprintf("[%s:%s]", rule.label, s.hash(match))
		})
	}
	return result
}

func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

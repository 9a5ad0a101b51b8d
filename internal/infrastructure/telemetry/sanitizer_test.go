package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePIILevel(t *testing.T) {
	tests := []struct {
		raw  string
		want PIILevel
	}{
		{"none", PIILevelNone},
		{"FULL", PIILevelFull},
		{" hashed ", PIILevelHashed},
		{"", PIILevelHashed},
		{"bogus", PIILevelHashed},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePIILevel(tt.raw))
		})
	}
}

func TestSanitizeQuery_Levels(t *testing.T) {
	query := "sofa for jane@example.com"

	assert.Equal(t, "[REDACTED]", NewSanitizer(PIILevelNone, "svc").SanitizeQuery(query))
	assert.Equal(t, query, NewSanitizer(PIILevelFull, "svc").SanitizeQuery(query))

	hashed := NewSanitizer(PIILevelHashed, "svc").SanitizeQuery(query)
	assert.NotContains(t, hashed, "jane@example.com")
	assert.Contains(t, hashed, "[EMAIL:")
	assert.Contains(t, hashed, "sofa for")
}

func TestSanitizeQuery_PlainProductQueryUntouched(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "svc")
	assert.Equal(t, "POÄNG armchair", s.SanitizeQuery("POÄNG armchair"))
	assert.Equal(t, "", s.SanitizeQuery(""))
}

func TestSanitizeQuery_PhoneCardAndIP(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "svc")

	phone := s.SanitizeQuery("call 555-123-4567 about a desk")
	assert.NotContains(t, phone, "4567")
	assert.Contains(t, phone, "[PHONE:")

	card := s.SanitizeQuery("pay with 4532 1234 5678 9010")
	assert.NotContains(t, card, "4532")
	assert.Contains(t, card, "[CC:REDACTED]")

	ip := s.SanitizeQuery("from 192.168.1.100")
	assert.NotContains(t, ip, "192.168.1.100")
	assert.Contains(t, ip, "[IP:")
}

func TestHashIsSaltSpecific(t *testing.T) {
	a := NewSanitizer(PIILevelHashed, "svc-a")
	b := NewSanitizer(PIILevelHashed, "svc-b")

	assert.Equal(t, a.hash("x@example.com"), a.hash("x@example.com"))
	assert.NotEqual(t, a.hash("x@example.com"), b.hash("x@example.com"))
	assert.Len(t, a.hash("x@example.com"), 8)
}

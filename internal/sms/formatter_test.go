package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	const text = "we are having a meeting tomorrow."

	tests := []struct {
		name     string
		msg      Message
		expected string
	}{
		{"capitalizes the text", Message{Text: text}, "We are having a meeting tomorrow."},
		{"empty text", Message{}, ""},
		{"salutation only when names are off", Message{Text: text, Salutation: "dear brethren", FirstName: "John"}, "Dear brethren,\nWe are having a meeting tomorrow."},
		{"name only", Message{Text: text, FirstName: "john", AddNames: true}, "John,\nWe are having a meeting tomorrow."},
		{"salutation and name", Message{Text: text, Salutation: "hello", FirstName: "sarah", AddNames: true}, "Hello Sarah,\nWe are having a meeting tomorrow."},
		{"missing name falls back to salutation", Message{Text: text, Salutation: "hello", AddNames: true}, "Hello,\nWe are having a meeting tomorrow."},
		{"trims greeting parts", Message{Text: "test", Salutation: "  hi  ", FirstName: "  kofi  ", AddNames: true}, "Hi Kofi,\nTest"},
		{"blank salutation is ignored", Message{Text: "test", Salutation: "   "}, "Test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMessage(tt.msg))
		})
	}
}

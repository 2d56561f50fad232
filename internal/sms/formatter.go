package sms

import (
	"strings"

	"church_backend/pkg/utils"
)

// Message is a bulk message before it is personalised for a recipient.
type Message struct {
	Text       string
	Salutation string
	FirstName  string
	AddNames   bool
}

// FormatMessage builds the final text for one recipient: an optional greeting line
// ("Salutation Name,", "Salutation," or "Name,") followed by the capitalised text.
func FormatMessage(m Message) string {
	text := capitalize(m.Text)
	salutation := capitalize(m.Salutation)
	name := ""
	if m.AddNames {
		name = capitalize(m.FirstName)
	}

	var greeting string
	switch {
	case salutation != "" && name != "":
		greeting = salutation + " " + name + ","
	case salutation != "":
		greeting = salutation + ","
	case name != "":
		greeting = name + ","
	}

	if greeting == "" {
		return text
	}
	return greeting + "\n" + text
}

func capitalize(s string) string {
	return utils.Capitalize(strings.TrimSpace(s))
}

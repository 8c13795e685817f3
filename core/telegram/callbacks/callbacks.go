// Package callbacks reads inline button data from callback updates.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// uniquePrefix marks callback data built by telebot's unique-keyed buttons.
const uniquePrefix = "\f"

// Split parses telebot's "\f<unique>|<payload>" encoding. Data without the
// prefix is returned whole as payload.
func Split(data string) (unique, payload string) {
	raw, ok := strings.CutPrefix(data, uniquePrefix)
	if !ok {
		return "", data
	}
	unique, payload, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(unique), payload
}

// Code returns the selection code carried by the pressed button. Buttons with
// a telebot unique key yield that key.
func Code(c tele.Context) string {
	if c == nil {
		return ""
	}
	return CodeOf(c.Callback())
}

// CodeOf is Code for a bare callback.
func CodeOf(cb *tele.Callback) string {
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	unique, payload := Split(cb.Data)
	if unique != "" {
		return unique
	}
	return strings.TrimSpace(payload)
}


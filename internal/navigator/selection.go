package navigator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Selection codes carried by inline buttons.
const (
	CodeDates    = "dates"
	CodeAuthors  = "authors"
	CodeAbout    = "about"
	CodeBackMain = "back_main"

	eventPrefix  = "event_"
	authorPrefix = "author_"
)

// Kind enumerates the closed set of selections.
type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindBackToMain
	KindDates
	KindAuthors
	KindAbout
	KindEvent
	KindAuthor
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindStart:      "start",
	KindBackToMain: "back_main",
	KindDates:      "dates",
	KindAuthors:    "authors",
	KindAbout:      "about",
	KindEvent:      "event",
	KindAuthor:     "author",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Selection is a decoded button press or the session start.
// Index is set for KindEvent, Key for KindAuthor, Raw keeps the undecoded code.
type Selection struct {
	Kind  Kind
	Index int
	Key   string
	Raw   string
}

// StartSelection is the selection of a fresh session (/start).
func StartSelection() Selection {
	return Selection{Kind: KindStart}
}

// EventSelection selects the event at index i.
func EventSelection(i int) Selection {
	return Selection{Kind: KindEvent, Index: i, Raw: eventPrefix + strconv.Itoa(i)}
}

// AuthorSelection selects the author with the given key.
func AuthorSelection(key string) Selection {
	return Selection{Kind: KindAuthor, Key: key, Raw: authorPrefix + key}
}

// Decode maps a callback code onto a Selection. Codes outside the closed set,
// including event codes whose index is not a run of decimal digits, decode to
// KindUnknown. An index too large for int becomes math.MaxInt, which is out
// of range for any catalog.
func Decode(code string) Selection {
	switch code {
	case CodeDates:
		return Selection{Kind: KindDates, Raw: code}
	case CodeAuthors:
		return Selection{Kind: KindAuthors, Raw: code}
	case CodeAbout:
		return Selection{Kind: KindAbout, Raw: code}
	case CodeBackMain:
		return Selection{Kind: KindBackToMain, Raw: code}
	}

	if rest, ok := strings.CutPrefix(code, eventPrefix); ok {
		if i, ok := parseIndex(rest); ok {
			return Selection{Kind: KindEvent, Index: i, Raw: code}
		}
		return Selection{Kind: KindUnknown, Raw: code}
	}
	if key, ok := strings.CutPrefix(code, authorPrefix); ok {
		return AuthorSelection(key)
	}
	return Selection{Kind: KindUnknown, Raw: code}
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// Code encodes the selection back into its callback code.
// Start has no code and yields an empty string.
func (s Selection) Code() string {
	switch s.Kind {
	case KindStart:
		return ""
	case KindBackToMain:
		return CodeBackMain
	case KindDates:
		return CodeDates
	case KindAuthors:
		return CodeAuthors
	case KindAbout:
		return CodeAbout
	case KindEvent:
		return eventPrefix + strconv.Itoa(s.Index)
	case KindAuthor:
		return authorPrefix + s.Key
	default:
		return s.Raw
	}
}

package navigator

import "fmt"

// IndexError reports an event index outside the events table.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("navigator: event index %d out of range [0,%d)", e.Index, e.Len)
}

// Code identifies the error in handler summaries.
func (e *IndexError) Code() string { return "EVENT_NOT_FOUND" }

// KeyError reports an author key missing from the authors table.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("navigator: unknown author key %q", e.Key)
}

// Code identifies the error in handler summaries.
func (e *KeyError) Code() string { return "AUTHOR_NOT_FOUND" }

package domain

import "time"

type Entry struct {
	Date   time.Time `json:"date"`
	Quote  Quote     `json:"quote"`
	Failed bool      `json:"failed"`
}

type Timeline struct {
	Entries      []Entry   `json:"entries"`
	RefreshAfter time.Time `json:"refresh_after"`
}

// Latest returns the last entry, or false for an empty timeline.
func (t Timeline) Latest() (Entry, bool) {
	if len(t.Entries) == 0 {
		return Entry{}, false
	}
	return t.Entries[len(t.Entries)-1], true
}

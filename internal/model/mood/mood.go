package mood

import "time"

// Mood describes a selectable option in the mood picker.
type Mood struct {
	ID    string `json:"id"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

const (
	Great    = "great"
	Good     = "good"
	Okay     = "okay"
	Down     = "down"
	Stressed = "stressed"
)

// Entry is a single recorded mood. Entries are never edited after creation.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var catalog = []Mood{
	{ID: Great, Emoji: "😄", Label: "Great"},
	{ID: Good, Emoji: "🙂", Label: "Good"},
	{ID: Okay, Emoji: "😐", Label: "Okay"},
	{ID: Down, Emoji: "😔", Label: "Down"},
	{ID: Stressed, Emoji: "😰", Label: "Stressed"},
}

// Catalog returns the moods a user can pick from, best first.
func Catalog() []Mood {
	return append([]Mood(nil), catalog...)
}

// Valid reports whether label belongs to the selectable enumeration.
func Valid(label string) bool {
	for _, m := range catalog {
		if m.ID == label {
			return true
		}
	}
	return false
}

package core

// Note is the central entity of the domain.
// It is a title/body pair; the title identifies the note within a collection.
type Note struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Collection is the ordered set of all notes, persisted as one unit.
// Order is insertion order.
type Collection []Note

// Find returns the first note whose title equals title exactly.
func (c Collection) Find(title string) (Note, bool) {
	for _, n := range c {
		if n.Title == title {
			return n, true
		}
	}
	return Note{}, false
}

// Without returns a new collection holding every note whose title differs
// from title, in the original order. All notes sharing the title are dropped.
func (c Collection) Without(title string) Collection {
	kept := make(Collection, 0, len(c))
	for _, n := range c {
		if n.Title != title {
			kept = append(kept, n)
		}
	}
	return kept
}

// Titles returns the titles in stored order. It never returns nil.
func (c Collection) Titles() []string {
	titles := make([]string, 0, len(c))
	for _, n := range c {
		titles = append(titles, n.Title)
	}
	return titles
}

// EventType represents the type of change to the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to the persisted store.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String renders the event as "TYPE path".
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}

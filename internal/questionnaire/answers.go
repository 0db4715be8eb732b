package questionnaire

import "fmt"

// Entry is one answered question.
type Entry struct {
	QuestionID string
	Question   string // question title
	OptionKey  string
	Answer     string // option label
}

// Answers maps question to selected option, in the order questions were
// first answered. The zero value is empty and ready to use.
type Answers struct {
	entries []Entry
}

// Set records the answer to q. Re-answering replaces the option in place,
// keeping the question's original position.
func (a *Answers) Set(q Question, key string) error {
	opt, ok := q.Option(key)
	if !ok {
		return &InputError{Field: q.ID, Value: key}
	}
	e := Entry{QuestionID: q.ID, Question: q.Title, OptionKey: opt.Key, Answer: opt.Label()}
	for i := range a.entries {
		if a.entries[i].QuestionID == q.ID {
			a.entries[i] = e
			return nil
		}
	}
	a.entries = append(a.entries, e)
	return nil
}

// Answer is Set by question id.
func (a *Answers) Answer(c Catalog, id, key string) error {
	q, ok := c.Question(id)
	if !ok {
		return fmt.Errorf("unknown question %q", id)
	}
	return a.Set(q, key)
}

// Get returns the entry for a question id.
func (a Answers) Get(id string) (Entry, bool) {
	for _, e := range a.entries {
		if e.QuestionID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the entries in insertion order.
func (a Answers) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Keys returns question id → option key.
func (a Answers) Keys() map[string]string {
	m := make(map[string]string, len(a.entries))
	for _, e := range a.entries {
		m[e.QuestionID] = e.OptionKey
	}
	return m
}

func (a Answers) Len() int { return len(a.entries) }

// Missing returns the catalog ids that have no answer, in catalog order.
func (a Answers) Missing(c Catalog) []string {
	var missing []string
	for _, q := range c.Questions {
		if _, ok := a.Get(q.ID); !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Complete reports whether every catalog question has an answer.
func (a Answers) Complete(c Catalog) bool {
	return len(a.Missing(c)) == 0
}

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	return Answers{entries: a.Entries()}
}

// Clear removes all answers.
func (a *Answers) Clear() {
	a.entries = nil
}

package supernova

import "time"

// Session represents one persisted conversation thread. Messages is
// strictly append-ordered and never reordered; entries are only mutated
// in place while an assistant response streams.
type Session struct {
	ID        string
	Title     string
	Messages  []Message
	UpdatedAt time.Time
}

// Clone returns a copy of the session with its own message slice, safe to
// hand out while the original keeps being mutated.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}

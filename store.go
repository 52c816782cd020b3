package supernova

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTitle is the title of a session before the synthesizer
// names it, and the fallback when synthesis fails.
const DefaultSessionTitle = "Nova Conversa"

// Store is the durable collection of conversation sessions plus the
// current-session pointer. Sessions are ordered newest-first. Every
// successful mutation re-serializes the whole collection to the KV store
// under KeySessions.
//
// Store is safe for concurrent use; the title synthesizer renames a
// session while the engine streams into it.
type Store struct {
	mu        sync.Mutex
	kv        KV
	codec     Codec
	log       *slog.Logger
	sessions  []Session
	currentID string
}

// NewStore creates a Store backed by the given KV store and codec. A nil
// logger discards log output.
func NewStore(kv KV, codec Codec, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, codec: codec, log: log}
}

// Load rehydrates the collection from the KV store. A missing key or a
// parse failure is logged and treated as "no prior sessions": startup
// never fails on corrupt state. If no sessions exist after load, one
// empty session is created so the collection is never empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.kv.Get(ctx, KeySessions)
	switch {
	case errors.Is(err, ErrNotFound):
		// First run.
	case err != nil:
		s.log.Error("read persisted sessions", "error", err)
	default:
		sessions, err := s.codec.UnmarshalSessions(data)
		if err != nil {
			s.log.Error("parse persisted sessions", "error", err)
		} else {
			s.sessions = sessions
		}
	}

	if len(s.sessions) == 0 {
		s.createLocked(ctx)
		return
	}
	s.currentID = s.sessions[0].ID
}

// Sessions returns a snapshot of the collection in display order.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// Current returns a snapshot of the current session. ok is false only
// before Load has run; afterwards a current session always exists.
func (s *Store) Current() (sess Session, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(s.currentID)
	if i < 0 {
		return Session{}, false
	}
	return s.sessions[i].Clone(), true
}

// CurrentID returns the id of the current session.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CreateSession inserts a new empty session at the front of the
// collection and makes it current.
func (s *Store) CreateSession(ctx context.Context) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(ctx)
}

func (s *Store) createLocked(ctx context.Context) Session {
	sess := Session{
		ID:        uuid.NewString(),
		Title:     DefaultSessionTitle,
		UpdatedAt: time.Now(),
	}
	s.sessions = append([]Session{sess}, s.sessions...)
	s.currentID = sess.ID
	s.persistLocked(ctx)
	return sess.Clone()
}

// SelectSession sets the current session pointer. Unknown ids are a
// silent no-op.
func (s *Store) SelectSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return
	}
	s.currentID = id
}

// DeleteSession removes a session. If it was current, the next most
// recent remaining session becomes current, or a fresh session is
// created when none remain. Once any session existed the collection is
// never empty again.
func (s *Store) DeleteSession(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	if s.currentID == id {
		if len(s.sessions) > 0 {
			s.currentID = s.sessions[0].ID
		} else {
			s.createLocked(ctx)
			return
		}
	}
	s.persistLocked(ctx)
}

// RenameSession sets a session's title.
func (s *Store) RenameSession(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("rename session: session %q not found", id)
	}
	s.sessions[i].Title = title
	s.persistLocked(ctx)
	return nil
}

// AppendMessage appends a message to a session's sequence and bumps its
// UpdatedAt.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(sessionID)
	if i < 0 {
		return fmt.Errorf("append message: session %q not found", sessionID)
	}
	s.sessions[i].Messages = append(s.sessions[i].Messages, msg)
	s.sessions[i].UpdatedAt = time.Now()
	s.persistLocked(ctx)
	return nil
}

// UpdateMessage applies a patch to a message in place. The message
// sequence itself is never reordered or shrunk.
func (s *Store) UpdateMessage(ctx context.Context, sessionID, messageID string, patch MessagePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(sessionID)
	if i < 0 {
		return fmt.Errorf("update message: session %q not found", sessionID)
	}
	msgs := s.sessions[i].Messages
	for j := range msgs {
		if msgs[j].ID != messageID {
			continue
		}
		if patch.Content != nil {
			msgs[j].Content = *patch.Content
		}
		if patch.IsError != nil {
			msgs[j].IsError = *patch.IsError
		}
		s.sessions[i].UpdatedAt = time.Now()
		s.persistLocked(ctx)
		return nil
	}
	return fmt.Errorf("update message: message %q not found in session %q", messageID, sessionID)
}

// persistLocked serializes the whole collection to the KV store. Write
// failures are logged, not propagated: the in-memory state is already
// mutated and remains authoritative for the process lifetime.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := s.codec.MarshalSessions(s.sessions)
	if err != nil {
		s.log.Error("marshal sessions", "error", err)
		return
	}
	if err := s.kv.Set(ctx, KeySessions, data); err != nil {
		s.log.Error("persist sessions", "error", err)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

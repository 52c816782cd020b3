// Package json serializes the session collection to its versioned JSON
// wire format for the durable KV store.
package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/supernova"
)

// Interface compliance check.
var _ supernova.Codec = Codec{}

// Codec implements [supernova.Codec] using the v1 envelope format.
type Codec struct{}

// envelope is the v1 wire format for the persisted session collection.
type envelope struct {
	Version  int          `json:"version"`
	Sessions []sessionDTO `json:"sessions"`
}

type sessionDTO struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

type messageDTO struct {
	ID          string          `json:"id"`
	Role        string          `json:"role"`
	Content     string          `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	Attachments []attachmentDTO `json:"attachments,omitempty"`
	IsError     bool            `json:"is_error,omitempty"`
}

type attachmentDTO struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// MarshalSessions serializes the collection in v1 envelope format.
func (Codec) MarshalSessions(sessions []supernova.Session) ([]byte, error) {
	env := envelope{
		Version:  1,
		Sessions: make([]sessionDTO, len(sessions)),
	}
	for i, s := range sessions {
		env.Sessions[i] = marshalSession(s)
	}
	return json.Marshal(env)
}

// UnmarshalSessions deserializes a collection from v1 envelope format.
func (Codec) UnmarshalSessions(data []byte) ([]supernova.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	sessions := make([]supernova.Session, len(env.Sessions))
	for i, dto := range env.Sessions {
		s, err := unmarshalSession(dto)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		sessions[i] = s
	}
	return sessions, nil
}

func marshalSession(s supernova.Session) sessionDTO {
	dto := sessionDTO{
		ID:        s.ID,
		Title:     s.Title,
		UpdatedAt: s.UpdatedAt,
		Messages:  make([]messageDTO, len(s.Messages)),
	}
	for i, m := range s.Messages {
		dto.Messages[i] = marshalMessage(m)
	}
	return dto
}

func marshalMessage(m supernova.Message) messageDTO {
	dto := messageDTO{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
		IsError:   m.IsError,
	}
	if len(m.Attachments) > 0 {
		dto.Attachments = make([]attachmentDTO, len(m.Attachments))
		for i, a := range m.Attachments {
			dto.Attachments[i] = attachmentDTO{MimeType: a.MimeType, Data: a.Data}
		}
	}
	return dto
}

func unmarshalSession(dto sessionDTO) (supernova.Session, error) {
	s := supernova.Session{
		ID:        dto.ID,
		Title:     dto.Title,
		UpdatedAt: dto.UpdatedAt,
		Messages:  make([]supernova.Message, len(dto.Messages)),
	}
	for i, m := range dto.Messages {
		msg, err := unmarshalMessage(m)
		if err != nil {
			return supernova.Session{}, fmt.Errorf("message %d: %w", i, err)
		}
		s.Messages[i] = msg
	}
	return s, nil
}

func unmarshalMessage(dto messageDTO) (supernova.Message, error) {
	switch supernova.Role(dto.Role) {
	case supernova.RoleUser, supernova.RoleAssistant:
	default:
		return supernova.Message{}, fmt.Errorf("unknown role: %q", dto.Role)
	}
	m := supernova.Message{
		ID:        dto.ID,
		Role:      supernova.Role(dto.Role),
		Content:   dto.Content,
		Timestamp: dto.Timestamp,
		IsError:   dto.IsError,
	}
	if len(dto.Attachments) > 0 {
		m.Attachments = make([]supernova.Attachment, len(dto.Attachments))
		for i, a := range dto.Attachments {
			m.Attachments[i] = supernova.Attachment{MimeType: a.MimeType, Data: a.Data}
		}
	}
	return m, nil
}

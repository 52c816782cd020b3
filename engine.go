package supernova

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StreamErrorMessage replaces the pending assistant message's content
// when an exchange fails. Any partially buffered response is discarded.
const StreamErrorMessage = "Ocorreu um erro ao processar sua solicitação. Por favor, verifique sua conexão ou tente novamente."

const (
	titleModel  = "gemini-2.5-flash"
	titlePrompt = `Analise a seguinte mensagem inicial de um chat e crie um título curto, elegante e relevante (máximo 4 palavras). Mensagem: %q. Retorne apenas o título.`
)

// Engine orchestrates one request/response exchange per send. It owns the
// pending input, the selected model, the entitlement flag, and the
// single-flight streaming flag; conversation state lives in the Store.
type Engine struct {
	store     *Store
	completer Completer
	kv        KV
	log       *slog.Logger
	onUpdate  func()

	mu          sync.Mutex
	model       ModelID
	premium     bool
	streaming   bool
	input       string
	attachments []Attachment
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. Default discards.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithModel sets the initially selected model. Entitlement is not checked
// here: a persisted premium selection should survive a restart.
func WithModel(id ModelID) EngineOption {
	return func(e *Engine) { e.model = id }
}

// WithPremium sets the initial entitlement flag, typically rehydrated
// from the KV store at startup.
func WithPremium(premium bool) EngineOption {
	return func(e *Engine) { e.premium = premium }
}

// WithOnUpdate sets a callback invoked after every observable state
// change (fragment applied, message settled, title renamed). Must not
// block.
func WithOnUpdate(fn func()) EngineOption {
	return func(e *Engine) { e.onUpdate = fn }
}

// NewEngine creates an Engine over the given store, completion service,
// and KV store (used for the entitlement flag only).
func NewEngine(store *Store, completer Completer, kv KV, opts ...EngineOption) *Engine {
	e := &Engine{
		store:     store,
		completer: completer,
		kv:        kv,
		model:     DefaultModel,
	}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	return e
}

// SetInput replaces the pending input text.
func (e *Engine) SetInput(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.input = text
}

// Input returns the pending input text.
func (e *Engine) Input() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input
}

// Attach adds attachments to the pending turn.
func (e *Engine) Attach(atts ...Attachment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attachments = append(e.attachments, atts...)
}

// Attachments returns a snapshot of the pending attachments.
func (e *Engine) Attachments() []Attachment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Attachment, len(e.attachments))
	copy(out, e.attachments)
	return out
}

// Streaming reports whether an exchange is in flight.
func (e *Engine) Streaming() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streaming
}

// Model returns the currently selected model.
func (e *Engine) Model() ModelID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model
}

// Premium reports the entitlement flag.
func (e *Engine) Premium() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.premium
}

// SelectModel switches the active model. Premium profiles are refused
// when the caller lacks entitlement. This is the only place gating
// happens; Send trusts the selection.
func (e *Engine) SelectModel(id ModelID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ResolveProfile(id).RequiresPremium && !e.premium {
		return false
	}
	e.model = id
	return true
}

// GrantPremium sets and persists the entitlement flag and switches the
// selection to the flagship model, mirroring the upgrade flow.
func (e *Engine) GrantPremium(ctx context.Context) error {
	e.mu.Lock()
	e.premium = true
	e.model = ModelGemini3Pro
	e.mu.Unlock()
	if err := e.kv.Set(ctx, KeyPremium, []byte("true")); err != nil {
		return fmt.Errorf("persist premium flag: %w", err)
	}
	return nil
}

// NewSession creates a new current session and clears any pending input
// and attachments.
func (e *Engine) NewSession(ctx context.Context) Session {
	e.mu.Lock()
	e.input = ""
	e.attachments = nil
	e.mu.Unlock()
	return e.store.CreateSession(ctx)
}

// Send runs one complete exchange: it appends the user turn and a
// placeholder assistant message, streams the response into the
// placeholder, and settles or fails it. It blocks until the exchange
// reaches a terminal state.
//
// Entry guards (empty input with no attachments, no current session, an
// exchange already streaming) are silent no-ops. There is no
// cancellation once streaming begins: the exchange runs to completion or
// failure regardless of UI state.
func (e *Engine) Send(ctx context.Context) {
	e.mu.Lock()
	if (strings.TrimSpace(e.input) == "" && len(e.attachments) == 0) || e.streaming {
		e.mu.Unlock()
		return
	}
	cur, ok := e.store.Current()
	if !ok {
		e.mu.Unlock()
		return
	}
	// Snapshot and clear pending input before the first suspension point.
	text := e.input
	atts := e.attachments
	e.input = ""
	e.attachments = nil
	e.streaming = true
	e.mu.Unlock()

	// The flag must clear on every exit path, success or failure.
	defer func() {
		e.mu.Lock()
		e.streaming = false
		e.mu.Unlock()
		e.notify()
	}()

	// History as it existed before this exchange; the transport request
	// and the first-exchange check both use this snapshot, not the live
	// session.
	history := cur.Messages

	userMsg := Message{
		ID:          uuid.NewString(),
		Role:        RoleUser,
		Content:     text,
		Timestamp:   time.Now(),
		Attachments: atts,
	}
	if err := e.store.AppendMessage(ctx, cur.ID, userMsg); err != nil {
		e.log.Error("append user message", "error", err)
		return
	}

	pending := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
	}
	if err := e.store.AppendMessage(ctx, cur.ID, pending); err != nil {
		e.log.Error("append assistant placeholder", "error", err)
		return
	}
	e.notify()

	// First exchange of the session: derive a title concurrently. The
	// task races the main stream but touches only the title field, so
	// the overlap is benign. Its outcome never gates the exchange.
	if len(history) == 0 {
		go e.synthesizeTitle(context.WithoutCancel(ctx), cur.ID, text)
	}

	profile := ResolveProfile(e.Model())
	stream, err := e.completer.Stream(ctx, Request{
		Model:             profile.BackendModel,
		SystemInstruction: profile.SystemInstruction,
		History:           history,
		Text:              text,
		Attachments:       atts,
		Params:            DefaultGenerationParams(),
	})
	if err != nil {
		e.log.Error("open stream", "error", err)
		e.fail(ctx, cur.ID, pending.ID)
		return
	}
	defer stream.Close()

	var buf strings.Builder
	for {
		frag, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			e.log.Error("stream fragment", "error", err)
			e.fail(ctx, cur.ID, pending.ID)
			return
		}
		buf.WriteString(frag)
		// Each update replaces the content with the full buffer, so an
		// observer only ever sees growing prefixes of the final text.
		content := buf.String()
		if err := e.store.UpdateMessage(ctx, cur.ID, pending.ID, MessagePatch{Content: &content}); err != nil {
			e.log.Error("apply fragment", "error", err)
		}
		e.notify()
	}
}

// fail marks the pending message as the terminal error state. The fixed
// error string replaces whatever was buffered.
func (e *Engine) fail(ctx context.Context, sessionID, messageID string) {
	content := StreamErrorMessage
	isErr := true
	if err := e.store.UpdateMessage(ctx, sessionID, messageID, MessagePatch{Content: &content, IsError: &isErr}); err != nil {
		e.log.Error("mark message failed", "error", err)
	}
}

// synthesizeTitle asks the completion service for a short session title
// derived from the first user turn. Failures are swallowed and fall back
// to the default title.
func (e *Engine) synthesizeTitle(ctx context.Context, sessionID, firstMessage string) {
	title, err := e.completer.Complete(ctx, titleModel, fmt.Sprintf(titlePrompt, firstMessage))
	title = strings.TrimSpace(title)
	if err != nil || title == "" {
		if err != nil {
			e.log.Warn("synthesize title", "error", err)
		}
		title = DefaultSessionTitle
	}
	if err := e.store.RenameSession(ctx, sessionID, title); err != nil {
		e.log.Warn("rename session", "error", err)
		return
	}
	e.notify()
}

func (e *Engine) notify() {
	if e.onUpdate != nil {
		e.onUpdate()
	}
}

package supernova

import "context"

// Completer is the wire-level client for the completion service. It is an
// opaque capability from the engine's point of view: given history plus a
// new turn, produce a lazy sequence of text fragments, or fail.
type Completer interface {
	// Stream opens a streamed completion for one exchange.
	Stream(ctx context.Context, req Request) (Stream, error)

	// Complete performs a one-shot, non-streamed completion. Used for
	// title synthesis.
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Stream is a pull-based iterator over the text fragments of one
// response. Next returns io.EOF when the sequence is exhausted; any other
// error is terminal. Fragments arrive strictly sequentially; there is no
// way to observe them out of order.
type Stream interface {
	Next() (string, error)
	Close() error
}

// Request carries one exchange: the prior history of the session as it
// existed before this turn, plus the new turn's text and attachments.
type Request struct {
	Model             string // backend model name, already resolved
	SystemInstruction string
	History           []Message
	Text              string
	Attachments       []Attachment
	Params            GenerationParams
}

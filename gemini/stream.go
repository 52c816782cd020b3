package gemini

import (
	"fmt"
	"io"
	"iter"

	"github.com/fwojciec/supernova"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ supernova.Stream = (*stream)(nil)

// stream adapts the genai SDK's push iterator to the pull-based
// [supernova.Stream]. Chunks without text (usage-only frames) are skipped
// so Next only ever yields non-empty fragments.
type stream struct {
	pull   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	done   bool
	closed bool
	err    error
}

func newStream(iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{pull: next, stop: stop}
}

func (s *stream) Next() (string, error) {
	if s.closed {
		return "", supernova.ErrStreamClosed
	}
	if s.err != nil {
		return "", s.err
	}
	if s.done {
		return "", io.EOF
	}
	for {
		resp, err, ok := s.pull()
		if !ok {
			s.done = true
			return "", io.EOF
		}
		if err != nil {
			s.err = fmt.Errorf("gemini: %w", err)
			return "", s.err
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
	}
}

func (s *stream) Close() error {
	if !s.closed {
		s.closed = true
		s.stop()
	}
	return nil
}

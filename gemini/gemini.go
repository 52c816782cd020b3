// Package gemini implements [supernova.Completer] for the Google Gemini
// API.
//
// It wraps the google.golang.org/genai SDK, translating between the
// domain types and the Gemini API types. Streaming uses the SDK's
// iter.Seq2 iterator, wrapped into the pull-based [supernova.Stream]
// interface.
package gemini

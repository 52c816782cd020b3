package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/fwojciec/supernova"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ supernova.Completer = (*Client)(nil)

// Client implements [supernova.Completer] for the Google Gemini API.
type Client struct {
	client *genai.Client
}

// New creates a new Gemini [Client] with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &Client{client: gc}, nil
}

// Stream opens a streamed completion: the session history followed by the
// new turn, with the profile's system instruction and the fixed sampling
// parameters.
func (c *Client) Stream(ctx context.Context, req supernova.Request) (supernova.Stream, error) {
	contents := ConvertHistory(req.History)
	contents = append(contents, newTurn(req))
	iter := c.client.Models.GenerateContentStream(ctx, req.Model, contents, buildConfig(req))
	return newStream(iter), nil
}

// Complete performs a one-shot completion and returns the response text.
func (c *Client) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return resp.Text(), nil
}

func buildConfig(req supernova.Request) *genai.GenerateContentConfig {
	temp := req.Params.Temperature
	topK := req.Params.TopK
	topP := req.Params.TopP
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
		TopK:        &topK,
		TopP:        &topP,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	return config
}

// ConvertHistory converts prior session messages to genai Contents.
// Exported for testing.
func ConvertHistory(msgs []supernova.Message) []*genai.Content {
	var result []*genai.Content
	for _, msg := range msgs {
		role := genai.RoleUser
		if msg.Role == supernova.RoleAssistant {
			role = genai.RoleModel
		}
		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}
		if msg.Role == supernova.RoleUser {
			parts = append(parts, convertAttachments(msg.Attachments)...)
		}
		if len(parts) == 0 {
			continue
		}
		result = append(result, &genai.Content{Role: role, Parts: parts})
	}
	return result
}

// newTurn builds the content for the new user turn: text first, then each
// attachment as inline data.
func newTurn(req supernova.Request) *genai.Content {
	parts := []*genai.Part{{Text: req.Text}}
	parts = append(parts, convertAttachments(req.Attachments)...)
	return &genai.Content{Role: genai.RoleUser, Parts: parts}
}

func convertAttachments(atts []supernova.Attachment) []*genai.Part {
	var parts []*genai.Part
	for _, att := range atts {
		// Data is produced by the ingestor and is always valid base64.
		data, _ := base64.StdEncoding.DecodeString(att.Data)
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: att.MimeType,
				Data:     data,
			},
		})
	}
	return parts
}

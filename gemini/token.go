// Package gemini counts tokens with the local Gemini tokenizer so
// extraction results can be compared by the context they would consume.
package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/waio"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel is the tokenizer model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

var _ waio.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens without calling the API.
// It is safe for concurrent use.
type TokenCounter struct {
	mu    sync.Mutex
	tok   *tokenizer.LocalTokenizer
	model string
}

// NewTokenCounter creates a new TokenCounter for the given model.
// Returns EINVALID if the model has no local tokenizer.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, waio.Errorf(waio.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok, model: model}, nil
}

// Model returns the tokenizer model name.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	tc.mu.Lock()
	result, err := tc.tok.CountTokens(contents, nil)
	tc.mu.Unlock()
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}

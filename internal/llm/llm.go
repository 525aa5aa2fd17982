// Package llm defines the model collaborator the engine hands prompts to.
package llm

import (
	"context"
	"errors"
)

// ErrNotWired is returned by NotWired so a missing model is visible at
// runtime instead of producing an empty answer.
var ErrNotWired = errors.New("model caller not wired")

// Caller sends a prompt to a model and returns its reply.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, prompt string) (string, error)

func (f CallerFunc) Call(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NotWired is the default Caller. It always fails with ErrNotWired.
type NotWired struct{}

func (NotWired) Call(context.Context, string) (string, error) {
	return "", ErrNotWired
}

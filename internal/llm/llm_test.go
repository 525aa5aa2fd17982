package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotWired(t *testing.T) {
	out, err := NotWired{}.Call(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotWired)
	assert.Empty(t, out)
}

func TestCallerFunc(t *testing.T) {
	var c Caller = CallerFunc(func(_ context.Context, p string) (string, error) {
		return "echo: " + p, nil
	})
	out, err := c.Call(context.Background(), "hi")
	assert.NoError(t, err)
	assert.Equal(t, "echo: hi", out)
}

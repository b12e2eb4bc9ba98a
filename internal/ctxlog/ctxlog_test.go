package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_ScopesLogger(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	// Act
	fileCtx, _ := With(ctx, "file", "a.yaml")
	setCtx, logger := With(fileCtx, "set", 2)
	logger.Info("one")
	FromContext(setCtx).Info("two")
	FromContext(ctx).Info("three")

	// Assert
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "file=a.yaml set=2")
	assert.Contains(t, string(lines[1]), "file=a.yaml set=2")
	assert.NotContains(t, string(lines[2]), "file=")
}

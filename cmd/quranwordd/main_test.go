package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCloser struct {
	calls atomic.Int32
	err   error
}

func (c *countingCloser) Close() error {
	c.calls.Add(1)
	return c.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return e
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServe_ListenFailureStillCloses(t *testing.T) {
	closer := &countingCloser{}

	err := serve(context.Background(), newEcho(), "127.0.0.1:-1", time.Second, closer, discardLogger())
	require.Error(t, err)
	assert.Equal(t, int32(1), closer.calls.Load())
}

func TestServe_CancelledContext(t *testing.T) {
	closer := &countingCloser{err: errors.New("already closed")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := serve(ctx, newEcho(), "127.0.0.1:0", time.Second, closer, discardLogger())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), closer.calls.Load())
}

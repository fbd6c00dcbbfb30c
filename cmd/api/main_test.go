package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	startErr error
	stopped  chan struct{}
	shutdown bool
}

func (f *fakeServer) Start(string) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdown = true
	close(f.stopped)
	return nil
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := &fakeServer{stopped: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, serve(ctx, srv, ":0", zerolog.Nop()))
	assert.True(t, srv.shutdown)
}

func TestServe_ReturnsStartError(t *testing.T) {
	srv := &fakeServer{startErr: errors.New("address in use"), stopped: make(chan struct{})}

	err := serve(context.Background(), srv, ":0", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
	assert.False(t, srv.shutdown)
}

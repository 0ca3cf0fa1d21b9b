package api

import (
	"context"
	"net/http"
	"testing"
	"time"
)

// TestListenAndServeNilServer verifies nil server returns an error.
func TestListenAndServeNilServer(t *testing.T) {
	var s *Server
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}

// TestNewServerRequiresAddrAndHandler ensures blank inputs fail fast.
func TestNewServerRequiresAddrAndHandler(t *testing.T) {
	if _, err := NewServer(" ", http.NotFoundHandler()); err == nil {
		t.Fatal("expected error for empty HTTP address")
	}
	if _, err := NewServer("127.0.0.1:0", nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

// TestListenAndServeStopsOnCancel verifies the server exits on context cancel.
func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer("127.0.0.1:0", http.NotFoundHandler())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop on cancel")
	}
}

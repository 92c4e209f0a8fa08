package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	config := DefaultConfig(handler)

	if config.Address != "127.0.0.1:8081" {
		t.Errorf("Expected address 127.0.0.1:8081, got %s", config.Address)
	}
	if config.ReadTimeout != 15*time.Second {
		t.Errorf("Expected ReadTimeout 15s, got %v", config.ReadTimeout)
	}
	if config.WriteTimeout != 15*time.Second {
		t.Errorf("Expected WriteTimeout 15s, got %v", config.WriteTimeout)
	}
	if config.IdleTimeout != 60*time.Second {
		t.Errorf("Expected IdleTimeout 60s, got %v", config.IdleTimeout)
	}
	if config.MaxHeaderBytes != 1<<20 {
		t.Errorf("Expected MaxHeaderBytes 1MB, got %d", config.MaxHeaderBytes)
	}
}

func TestNewServerValidation(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("Expected error for nil config")
	}

	if _, err := New(&Config{Address: ":0"}); err == nil {
		t.Error("Expected error for nil handler")
	}
}

func TestServerServesRequests(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	config := DefaultConfig(handler)
	// Port 0 lets the kernel pick a free port
	config.Address = "127.0.0.1:0"

	srv, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Wait for the listener to come up
	var resp *http.Response
	for i := 0; i < 50; i++ {
		time.Sleep(10 * time.Millisecond)
		if srv.listener == nil {
			continue
		}
		resp, err = http.Get(fmt.Sprintf("http://%s/", srv.Addr()))
		if err == nil {
			break
		}
	}
	if resp == nil {
		t.Fatalf("Server never became reachable: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response: %v", err)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body OK, got %s", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}

	if err := <-errChan; err != nil && err != http.ErrServerClosed {
		t.Errorf("Start returned unexpected error: %v", err)
	}
}

func TestAddrBeforeStart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	config := DefaultConfig(handler)
	config.Address = "127.0.0.1:9999"

	srv, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	if srv.Addr() != "127.0.0.1:9999" {
		t.Errorf("Expected configured address before start, got %s", srv.Addr())
	}
}

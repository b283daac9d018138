package sshd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/chimera/internal/config"
)

func TestFromServerConfig(t *testing.T) {
	got := FromServerConfig(config.ServerConfig{
		Address:     ":2222",
		HostKeyPath: "/tmp/key",
		IdleTimeout: time.Minute,
	})
	if got.Address != ":2222" || got.HostKeyPath != "/tmp/key" || got.IdleTimeout != time.Minute {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestResolveHostKeyPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKeyPath("")
	if err != nil {
		t.Fatalf("resolveHostKeyPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".chimera", "host_key"); got != want {
		t.Errorf("default path = %q, want %q", got, want)
	}

	got, err = resolveHostKeyPath("~/keys/chimera")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "keys", "chimera"); got != want {
		t.Errorf("expanded path = %q, want %q", got, want)
	}
}

func TestNewCreatesHostKeyDirectory(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "keys", "host_key")

	srv, err := New(Config{Address: "127.0.0.1:0", HostKeyPath: keyPath}, func(context.Context, Connection) error {
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}

func TestIsDisconnect(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: io.EOF, want: true},
		{err: fmt.Errorf("menu: reading selection: %w", io.EOF), want: true},
		{err: context.Canceled, want: true},
		{err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		if got := isDisconnect(tt.err); got != tt.want {
			t.Errorf("isDisconnect(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

package database

import (
	"context"
	"errors"
	"testing"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"libsql://assistroi.turso.io", true},
		{"https://assistroi.turso.io", true},
		{"file:/tmp/assistroi.db", false},
		{"file::memory:", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.url); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestNew_LocalMemory(t *testing.T) {
	c, err := New("file::memory:", "ignored")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if c.Remote() {
		t.Error("memory database should not be remote")
	}
}

func TestWithRetry_RetriesStreamErrors(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), 2, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("hrana: stream not found")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 2 {
		t.Errorf("got %d after %d calls, want 42 after 2", got, calls)
	}
}

func TestWithRetry_OtherErrorsFailFast(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), 3, func() (int, error) {
		calls++
		return 0, errors.New("syntax error")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetry_GivesUp(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), 2, func() (string, error) {
		calls++
		return "", errors.New("stream not found")
	})
	if err == nil {
		t.Fatal("expected error after retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		module, key, want string
	}{
		{"alphabet", "A", "alphabet_a.mp3"},
		{"food", "shopping-list", "food_shopping-list.mp3"},
		{"phrases", "good morning", "phrases_good_morning.mp3"},
		{"objects", "../etc", "objects_etc.mp3"},
	}

	for _, tt := range tests {
		if got := Filename(tt.module, tt.key); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.module, tt.key, got, tt.want)
		}
	}
}

func TestPronunciationCachesDownloads(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Query().Get("q") != "chair" {
			t.Errorf("q = %q, want chair", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	svc := NewTTSService(t.TempDir(), WithBaseURL(server.URL))

	for i := 0; i < 2; i++ {
		path, err := svc.Pronunciation(context.Background(), "objects", "chair", "chair")
		if err != nil {
			t.Fatalf("Pronunciation() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read cached file: %v", err)
		}
		if string(data) != "ID3-fake-mp3" {
			t.Errorf("cached data = %q", data)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream called %d times, want 1", got)
	}
}

func TestPronunciationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	dir := t.TempDir()
	svc := NewTTSService(dir, WithBaseURL(server.URL))

	_, err := svc.Pronunciation(context.Background(), "alphabet", "B", "B")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Pronunciation() error = %v, want ErrUpstream", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}
}

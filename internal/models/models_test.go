package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{name: "three of twenty-six floors", completed: 3, total: 26, want: 11},
		{name: "half", completed: 13, total: 26, want: 50},
		{name: "all", completed: 10, total: 10, want: 100},
		{name: "none", completed: 0, total: 4, want: 0},
		{name: "no items", completed: 0, total: 0, want: 0},
		{name: "clamped", completed: 5, total: 4, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.completed, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestNormalizeItemKey(t *testing.T) {
	tests := []struct {
		name    string
		module  ModuleKey
		key     string
		want    string
		wantErr bool
	}{
		{name: "lower-case letter", module: ModuleAlphabet, key: " b ", want: "B"},
		{name: "number with leading zero", module: ModuleNumbers, key: "07", want: "7"},
		{name: "number word passes through", module: ModuleNumbers, key: "seven", want: "seven"},
		{name: "object id", module: ModuleObjects, key: "Chair", want: "chair"},
		{name: "practice date", module: ModulePractice, key: "2026-10-18", want: "2026-10-18"},
		{name: "practice not a date", module: ModulePractice, key: "yesterday", wantErr: true},
		{name: "empty key", module: ModuleFood, key: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeItemKey(tt.module, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeItemKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NormalizeItemKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

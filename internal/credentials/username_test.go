package credentials

import (
	"strings"
	"testing"

	"englishpath/internal/validation"
)

func TestGenerateUsername(t *testing.T) {
	for i := 0; i < 100; i++ {
		username, err := GenerateUsername()
		if err != nil {
			t.Fatalf("GenerateUsername() error = %v", err)
		}

		parts := strings.Split(username, "-")
		if len(parts) != 3 {
			t.Fatalf("expected adjective-noun-number, got %q", username)
		}
		if len(parts[2]) != 2 {
			t.Errorf("expected two digit suffix, got %q", username)
		}
		if err := validation.ValidateUsername(username); err != nil {
			t.Errorf("suggestion %q fails validation: %v", username, err)
		}
	}
}

func TestRandomElementEmpty(t *testing.T) {
	got, err := randomElement(nil)
	if err != nil || got != "" {
		t.Errorf("randomElement(nil) = %q, %v", got, err)
	}
}

package validation

import (
	"fmt"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid username",
			input:   "maria",
			wantErr: false,
		},
		{
			name:    "username with separators",
			input:   "maria.lopez_2-b",
			wantErr: false,
		},
		{
			name:    "empty username",
			input:   "",
			wantErr: true,
		},
		{
			name:    "username too short",
			input:   "m",
			wantErr: true,
		},
		{
			name:    "username too long",
			input:   "abcdefghijklmnopqrstuvwxyz1234567",
			wantErr: true,
		},
		{
			name:    "username with space",
			input:   "maria lopez",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "Maria Lopez",
			wantErr: false,
		},
		{
			name:    "single letter",
			input:   "M",
			wantErr: false,
		},
		{
			name:    "only spaces",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
		{
			name:    "name too long",
			input:   "Maria Fernanda de los Angeles Lopez Garcia y Rodriguez Martinez",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplayName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", New("username", "taken"))
	if !IsValidationError(wrapped) {
		t.Error("wrapped ValidationError should be detected")
	}
	if IsValidationError(fmt.Errorf("boom")) {
		t.Error("plain error should not be a ValidationError")
	}
}

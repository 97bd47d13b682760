package errors

import (
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "deck.pptx", false},
		{"valid nested", "out/onboarding.pptx", false},
		{"valid absolute", "/tmp/deck.pptx", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "deck\x00.pptx", true},
		{"newline", "deck\n.pptx", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/outline.json", false},
		{"http", "http://localhost:8080/outline.json", false},

		{"empty", "", true},
		{"file path", "outline.json", true},
		{"ftp", "ftp://example.com/outline.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got := IsURL(tt.input); got == tt.wantErr {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, !tt.wantErr)
			}
		})
	}
}

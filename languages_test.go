package catalogtl

import (
	"errors"
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"de", "DE"},
		{"DE", "DE"},
		{"german", "DE"},
		{" Deutsch ", "DE"},
		{"magyar", "HU"},
		{"español", "ES"},
		{"français", "FR"},
		{"bokmål", "NB"},
		{"pt", "PT-PT"},
		{"pt_br", "PT-BR"},
		{"brazilian", "PT-BR"},
		{"en_GB", "EN-GB"},
		{"english_us", "EN-US"},
		{"zh_cn", "ZH"},
		{"zh-hant", "ZH-HANT"},
		{"ko-kr", "KO"},
		{"de-AT", "DE"},
		{"pt-AO", "PT-PT"},
		{"en-Latn-GB", "EN-GB"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeLanguage(tt.input)
			if err != nil {
				t.Fatalf("NormalizeLanguage(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeLanguage_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "xx", "klingon", "sw"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeLanguage(input)
			var langErr *InvalidLanguageError
			if !errors.As(err, &langErr) {
				t.Fatalf("NormalizeLanguage(%q) error = %v, want *InvalidLanguageError", input, err)
			}
			if langErr.Input != input {
				t.Errorf("Input = %q, want %q", langErr.Input, input)
			}
		})
	}
}

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"DE", "German"},
		{"pt-br", "Portuguese (Brazil)"},
		{"german", "German"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetLanguageName(tt.code); got != tt.expected {
				t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

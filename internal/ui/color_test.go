package ui

import (
	"strings"
	"testing"
)

func TestStatusHelpers(t *testing.T) {
	DisableColors()
	defer EnableColors()

	tests := map[string]struct {
		fn     func(string) string
		symbol string
	}{
		"success": {StatusSuccess, SymbolSuccess},
		"error":   {StatusError, SymbolError},
		"warning": {StatusWarning, SymbolWarning},
		"skipped": {StatusSkipped, SymbolSkipped},
		"pending": {StatusPending, SymbolPending},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.fn(""); got != tc.symbol {
				t.Errorf("bare = %q, want %q", got, tc.symbol)
			}
			got := tc.fn("message")
			if !strings.HasPrefix(got, tc.symbol) || !strings.HasSuffix(got, " message") {
				t.Errorf("with message = %q", got)
			}
		})
	}
}

func TestColorToggle(t *testing.T) {
	EnableColors()
	if !IsColorEnabled() {
		t.Error("colors should be enabled")
	}
	DisableColors()
	if IsColorEnabled() {
		t.Error("colors should be disabled")
	}
	EnableColors()
}

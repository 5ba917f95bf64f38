package ytdlp

import (
	"testing"

	"lyrebird/internal/logging"
	"lyrebird/internal/testsupport"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Plain Title", "Plain Title"},
		{`A/B\C:D*E?F"G<H>I|J`, "A_B_C_D_E_F_G_H_I_J"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.input); got != tt.expected {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNonEmptyLines(t *testing.T) {
	lines := nonEmptyLines("dQw4w9WgXcQ\r\n\nSome Title\n\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "dQw4w9WgXcQ" || lines[1] != "Some Title" {
		t.Errorf("unexpected lines %v", lines)
	}

	if got := nonEmptyLines("  \n\n"); got != nil {
		t.Errorf("blank input should produce no lines, got %v", got)
	}
}

func TestNewClampsRetries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Download.ListRetries = 0

	client := New(cfg, logging.NewNop())
	if client.retries != 1 {
		t.Errorf("retries = %d, want at least 1", client.retries)
	}
}

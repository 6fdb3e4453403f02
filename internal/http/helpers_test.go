package http

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseID(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseID(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-06-16T12:00:00Z")
	if err != nil {
		t.Fatalf("RFC3339: %v", err)
	}
	if !got.Equal(time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("parsed = %v", got)
	}

	got, err = parseDate("2025-06-16")
	if err != nil {
		t.Fatalf("bare date: %v", err)
	}
	if got.Year() != 2025 || got.Month() != 6 || got.Day() != 16 {
		t.Errorf("bare date = %v", got)
	}

	if _, err := parseDate("16/06/2025"); err == nil {
		t.Error("slash format should fail")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b\x1fc", "abc"},
		{"line1\nline2", "line1\nline2"},
		{"tab\there", "tab\there"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := clientIP(r); got != "10.0.0.1:1234" {
		t.Errorf("remote addr = %q", got)
	}

	r.Header.Set("X-Real-IP", "192.168.1.5")
	if got := clientIP(r); got != "192.168.1.5" {
		t.Errorf("X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For = %q", got)
	}
}

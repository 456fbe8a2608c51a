package utils

import (
	"testing"
	"time"
)

func TestIsURLSafe(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", false},
		{"token123", true},
		{"a-b_c", true},
		{"h/m", false},
		{"?test", false},
		{"t est", false},
		{"z.z", false},
		{"\t ", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsURLSafe(tt.value); got != tt.expected {
				t.Errorf("IsURLSafe() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	if !ContainsString([]string{"a", "b"}, "b") {
		t.Error("expected to find 'b'")
	}
	if ContainsString([]string{"a", "b"}, "c") {
		t.Error("did not expect to find 'c'")
	}
	if ContainsString(nil, "a") {
		t.Error("did not expect to find anything in nil slice")
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Test@Example.com", "test@example.com"},
		{"  user@host.org \n", "user@host.org"},
	}
	for _, tt := range tests {
		if got := SanitizeEmail(tt.input); got != tt.expected {
			t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCheckEmailFormat(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"", false},
		{"no-at-sign", false},
		{"user@example.com", true},
		{"a@b.co", true},
	}
	for _, tt := range tests {
		if got := CheckEmailFormat(tt.email); got != tt.expected {
			t.Errorf("CheckEmailFormat(%q) = %v, want %v", tt.email, got, tt.expected)
		}
	}
}

func TestParseDurationString(t *testing.T) {
	tests := []struct {
		input      string
		expected   time.Duration
		shouldFail bool
	}{
		{"", 0, true},
		{"1", 0, true},
		{"1s", time.Second, false},
		{"1m", time.Minute, false},
		{"1h", time.Hour, false},
		{"1d", 0, true}, // not supported
		{"1ms", time.Millisecond, false},
	}

	for _, test := range tests {
		result, err := ParseDurationString(test.input)
		if test.shouldFail {
			if err == nil {
				t.Errorf("expected error for input %s, but got nil", test.input)
			}
		} else {
			if err != nil {
				t.Errorf("expected no error for input %s, but got %s", test.input, err)
			}
			if result != test.expected {
				t.Errorf("expected %s for input %s, but got %s", test.expected, test.input, result)
			}
		}
	}
}

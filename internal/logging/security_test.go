// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "***"},
		{"abcdefghijkl", "***"},
		{"eyJhbGciOiJIUzI1NiJ9.e30.sig1", "eyJh...sig1"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("expected %q for %q, got %q", tt.want, tt.in, got)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"not-an-email", "***"},
		{"@example.com", "***"},
		{"jo@example.com", "***@example.com"},
		{"jane.doe@example.com", "ja***@example.com"},
	}
	for _, tt := range tests {
		if got := SanitizeEmail(tt.in); got != tt.want {
			t.Errorf("expected %q for %q, got %q", tt.want, tt.in, got)
		}
	}
}

func TestSecurityLogger_LoginSuccess(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(NewTestLogger(&buf))
	l.LogLoginSuccess("u1", "jane.doe@example.com", "10.0.0.1")

	out := buf.String()
	for _, want := range []string{
		`"component":"auth"`,
		`"event":"login"`,
		`"success":true`,
		`"email":"ja***@example.com"`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, "jane.doe") {
		t.Errorf("expected email to be masked, got: %s", out)
	}
}

func TestSecurityLogger_LoginFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(NewTestLogger(&buf))
	l.LogLoginFailure("jane.doe@example.com", "10.0.0.1", strings.Repeat("x", 300))

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level, got: %s", out)
	}
	if !strings.Contains(out, `"success":false`) {
		t.Errorf("expected success=false, got: %s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 201)) {
		t.Errorf("expected reason to be truncated, got: %s", out)
	}
}

func TestSecurityLogger_Registered(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecurityLoggerWithLogger(NewTestLogger(&buf)).LogRegistered("u9", "new@example.com", "")

	out := buf.String()
	if !strings.Contains(out, `"event":"register"`) {
		t.Errorf("expected register event, got: %s", out)
	}
	if strings.Contains(out, `"ip"`) {
		t.Errorf("expected empty ip to be omitted, got: %s", out)
	}
}

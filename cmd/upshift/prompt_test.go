package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestConfirmLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "long yes", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty declines", input: "\n", want: false},
		{name: "eof declines", input: "", want: false},
		{name: "retry then yes", input: "maybe\ny\n", want: true},
		{name: "invalid then eof declines", input: "maybe", want: false},
		{name: "yes without newline", input: "y", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirmLine(strings.NewReader(tt.input), &out, "Continue?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConfirmLineRetryMessage(t *testing.T) {
	var out bytes.Buffer
	if _, err := confirmLine(strings.NewReader("maybe\nn\n"), &out, "Continue?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out.String(), "Continue? [y/N]: "); got != 2 {
		t.Fatalf("expected two prompts, got %d in %q", got, out.String())
	}
	if !strings.Contains(out.String(), "Please enter y or n.") {
		t.Fatalf("expected retry message, got %q", out.String())
	}
}

func TestPrintFilePaths(t *testing.T) {
	var out bytes.Buffer
	if err := printFilePaths(&out, "Files:", []string{"a.js", "b/c.ts"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "\nFiles:\n  - a.js\n  - b/c.ts\n\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	out.Reset()
	if err := printFilePaths(&out, "Files:", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output for empty list, got %q", out.String())
	}
}

func TestConfirmForm(t *testing.T) {
	orig := runFormFunc
	defer func() { runFormFunc = orig }()

	runFormFunc = func(context.Context, *huh.Form) error { return nil }
	ok, err := confirmForm(context.Background(), "Write?")
	if err != nil || ok {
		t.Fatalf("expected untouched form to decline, got %v, %v", ok, err)
	}

	runFormFunc = func(context.Context, *huh.Form) error { return huh.ErrUserAborted }
	if _, err := confirmForm(context.Background(), "Write?"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	boom := errors.New("tty gone")
	runFormFunc = func(context.Context, *huh.Form) error { return boom }
	if _, err := confirmForm(context.Background(), "Write?"); !errors.Is(err, boom) {
		t.Fatalf("expected form error, got %v", err)
	}
}

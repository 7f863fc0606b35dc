package domain

import "testing"

func TestAttachImageDescriptionRoundTrip(t *testing.T) {
	content := AttachImageDescription("what is this?", "a red bicycle")
	if !HasImageAttachment(content) {
		t.Fatalf("expected image marker in %q", content)
	}
	got := DisplayContent(content)
	want := "what is this? (Image Attached)"
	if got != want {
		t.Fatalf("DisplayContent = %q, want %q", got, want)
	}
}

func TestAttachFileContentHasNoImageMarker(t *testing.T) {
	content := AttachFileContent("review this", "package main")
	if HasImageAttachment(content) {
		t.Fatalf("file attachment must not look like an image: %q", content)
	}
	if DisplayContent(content) != content {
		t.Fatalf("plain content must pass through unchanged")
	}
}

func TestDisplayContentPlainText(t *testing.T) {
	if got := DisplayContent("hello"); got != "hello" {
		t.Fatalf("DisplayContent = %q", got)
	}
}

func TestDeriveTitle(t *testing.T) {
	if got := DeriveTitle("short"); got != "short" {
		t.Fatalf("DeriveTitle = %q", got)
	}
	long := "this is a rather long first message that should be cut"
	got := DeriveTitle(long)
	if len([]rune(got)) != TitleLimit {
		t.Fatalf("expected %d chars, got %d (%q)", TitleLimit, len([]rune(got)), got)
	}
}

func TestSettingsApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()
	if s.Model != DefaultModel || s.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	s = Settings{Model: "custom/model", SystemPrompt: "be terse"}
	s.ApplyDefaults()
	if s.Model != "custom/model" || s.SystemPrompt != "be terse" {
		t.Fatalf("defaults must not override explicit values: %+v", s)
	}
}

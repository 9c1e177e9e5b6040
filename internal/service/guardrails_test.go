package service

import (
	"strings"
	"testing"
)

func TestCheckDisallowedAsk(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		blocked   bool
	}{
		{"diagnosis question", "What's my diagnosis?", true},
		{"diagnose verb", "Can you diagnose this for me?", true},
		{"prescription", "Can you prescribe something stronger?", true},
		{"medication", "What medication should I take?", true},
		{"imaging mri", "Should I get an MRI?", true},
		{"imaging xray", "Do I need an x-ray?", true},
		{"normal interview question", "When did this start?", false},
		{"empty utterance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, blocked := CheckDisallowedAsk(tt.utterance)
			if blocked != tt.blocked {
				t.Fatalf("CheckDisallowedAsk(%q) blocked = %t; want %t", tt.utterance, blocked, tt.blocked)
			}
			if blocked && !strings.Contains(strings.ToLower(reply), "diagnoses") {
				t.Fatalf("deflection should mention diagnoses, got %q", reply)
			}
		})
	}
}

func TestVetReply(t *testing.T) {
	clean := "It started about five days ago when I rolled my ankle."
	if got, redacted := VetReply(clean); redacted || got != clean {
		t.Fatalf("clean reply changed: %q (redacted=%t)", got, redacted)
	}

	leaky := "Sounds like your diagnosis is a grade II sprain."
	got, redacted := VetReply(leaky)
	if !redacted {
		t.Fatalf("expected redaction for %q", leaky)
	}
	if strings.Contains(got, "grade II") {
		t.Fatalf("redacted reply still leaks content: %q", got)
	}

	if _, redacted := VetReply("The doctor might prescribe rest, I guess."); !redacted {
		t.Fatalf("expected redaction on prescription language")
	}
}

func TestWantsInterpreter(t *testing.T) {
	positives := []string{
		"We have an interpreter on the line now.",
		"Let me get a translator for you.",
		"I can translate for you.",
	}
	for _, p := range positives {
		if !WantsInterpreter(p) {
			t.Fatalf("WantsInterpreter(%q) = false; want true", p)
		}
	}
	if WantsInterpreter("When did this start?") {
		t.Fatalf("plain question should not count as interpreter offer")
	}
}

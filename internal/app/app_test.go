package app

import (
	"strings"
	"testing"
	"time"

	"github.com/embermill/daycheck/internal/checklist"
)

func TestSubcommands_Registered(t *testing.T) {
	want := []string{"add", "edit", "rm", "list", "done", "start", "stop", "cancel", "stats", "review", "history", "serve"}
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		registered[name] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("%s subcommand not registered on rootCmd", name)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		got, err := parseLevel("importance", valid)
		if err != nil {
			t.Fatalf("parseLevel(%q) returned error: %v", valid, err)
		}
		if got != valid {
			t.Errorf("parseLevel(%q) = %q", valid, got)
		}
	}
	if _, err := parseLevel("importance", "urgent"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestResolveAction(t *testing.T) {
	now := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	state := checklist.AppState{CurrentDate: "2026-08-27"}
	state, _ = checklist.AddAction(state, "Morning run", "medium", "high", 1, false, now)
	state, _ = checklist.AddAction(state, "Meditate", "low", "medium", 1, false, now)
	state, _ = checklist.AddAction(state, "Read a book", "low", "low", 1, false, now)
	ses := &session{state: state}

	byName, err := ses.resolveAction("meditate")
	if err != nil {
		t.Fatalf("resolve by name: %v", err)
	}
	if byName.Name != "Meditate" {
		t.Errorf("resolved %q, want Meditate", byName.Name)
	}

	byID, err := ses.resolveAction(state.ActionItems[0].ID)
	if err != nil {
		t.Fatalf("resolve by ID: %v", err)
	}
	if byID.Name != "Morning run" {
		t.Errorf("resolved %q, want Morning run", byID.Name)
	}

	byPrefix, err := ses.resolveAction("read")
	if err != nil {
		t.Fatalf("resolve by prefix: %v", err)
	}
	if byPrefix.Name != "Read a book" {
		t.Errorf("resolved %q, want Read a book", byPrefix.Name)
	}

	if _, err := ses.resolveAction("m"); err == nil {
		t.Error("expected ambiguity error for prefix matching two actions")
	}
	if _, err := ses.resolveAction("nothing"); err == nil {
		t.Error("expected error for unknown action")
	}
}

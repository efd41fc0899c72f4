package tui

import "testing"

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	tests := []struct {
		key   string
		scope string
		want  Action
		ok    bool
	}{
		{"j", scopeMenu, actionDown, true},
		{"j", scopeContent, "", false},
		{"m", scopeMenu, actionToggle, true},
		{"ctrl+o", scopeContent, actionToggle, true},
		{"l", scopeContent, actionOpen, true},
		{"a", scopeMenu, "", false},
		{"M", scopeContent, "", false},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.key, tt.scope)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, %v; want %q, %v", tt.key, tt.scope, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyRegistryFirstBindingWins(t *testing.T) {
	r := &KeyRegistry{
		bindings: make(map[string][]Binding),
		index:    make(map[string]map[string]Action),
	}

	r.Bind("scope_a", actionOpen, "first", "x")
	r.Bind("scope_a", actionDismiss, "duplicate", "x")
	r.Bind("scope_a", actionUp, "partly new", "x", "y")
	r.Bind("scope_b", actionDismiss, "different scope", "x")

	if got := r.bindings["scope_a"]; len(got) != 2 || got[1].Action != actionUp || len(got[1].Keys) != 1 {
		t.Fatalf("scope_a bindings = %+v, want open on x and up on y", got)
	}
	if got, _ := r.Lookup("x", "scope_a"); got != actionOpen {
		t.Fatalf("x in scope_a = %q, want %q", got, actionOpen)
	}
	if got, _ := r.Lookup("x", "scope_b"); got != actionDismiss {
		t.Fatalf("x in scope_b = %q, want %q", got, actionDismiss)
	}
}

func TestKeyRegistryHelpBindingsIncludeGlobal(t *testing.T) {
	r := NewKeyRegistry()
	bindings := r.HelpBindings(scopeMenu)

	var sawSelect, sawQuit bool
	for _, b := range bindings {
		switch b.Help().Desc {
		case "open item":
			sawSelect = true
		case "quit":
			sawQuit = true
		}
	}
	if !sawSelect || !sawQuit {
		t.Fatalf("help bindings missing select=%v quit=%v", sawSelect, sawQuit)
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type Action string

// Binding ties key names, as bubbletea's KeyMsg.String reports them, to an
// action.
type Binding struct {
	Action Action
	Keys   []string
	Help   string
}

// KeyRegistry maps key names to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindings map[string][]Binding
	index    map[string]map[string]Action
}

const (
	scopeGlobal  = "global"
	scopeContent = "content"
	scopeMenu    = "menu"
)

const (
	actionQuit     Action = "quit"
	actionHelp     Action = "help"
	actionToggle   Action = "toggle"
	actionOpen     Action = "open"
	actionDismiss  Action = "dismiss"
	actionUp       Action = "up"
	actionDown     Action = "down"
	actionSelect   Action = "select"
	actionJumpBack Action = "jump_back"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindings: make(map[string][]Binding),
		index:    make(map[string]map[string]Action),
	}

	r.Bind(scopeGlobal, actionToggle, "menu", "m", "ctrl+o")
	r.Bind(scopeGlobal, actionHelp, "help", "?")
	r.Bind(scopeGlobal, actionQuit, "quit", "q", "ctrl+c")

	r.Bind(scopeContent, actionOpen, "open menu", "right", "l")

	// Any other single letter in the menu scope jumps to the closest title.
	r.Bind(scopeMenu, actionUp, "up", "k", "up", "ctrl+p")
	r.Bind(scopeMenu, actionDown, "down", "j", "down", "ctrl+n")
	r.Bind(scopeMenu, actionSelect, "open item", "enter")
	r.Bind(scopeMenu, actionDismiss, "close", "esc", "left")
	r.Bind(scopeMenu, actionJumpBack, "clear jump", "backspace")

	return r
}

// Bind adds keys for action in scope. Keys already bound in the scope keep
// their first action; a binding left with no keys is dropped.
func (r *KeyRegistry) Bind(scope string, action Action, help string, keys ...string) {
	idx, ok := r.index[scope]
	if !ok {
		idx = make(map[string]Action)
		r.index[scope] = idx
	}
	b := Binding{Action: action, Help: help}
	for _, k := range keys {
		if _, taken := idx[k]; taken {
			continue
		}
		idx[k] = action
		b.Keys = append(b.Keys, k)
	}
	if len(b.Keys) > 0 {
		r.bindings[scope] = append(r.bindings[scope], b)
	}
}

// Lookup returns the action bound to keyName in scope or, failing that, in
// the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) (Action, bool) {
	if a, ok := r.index[scope][keyName]; ok {
		return a, true
	}
	a, ok := r.index[scopeGlobal][keyName]
	return a, ok
}

// HelpBindings returns the scope's bindings followed by the global ones, in
// the form bubbles/help renders.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := append([]Binding(nil), r.bindings[scope]...)
	if scope != scopeGlobal {
		items = append(items, r.bindings[scopeGlobal]...)
	}
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

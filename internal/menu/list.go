// Package menu holds the selectable items shown in the side menu and the
// navigation that follows a selection.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	// ErrIndexOutOfRange is returned when a selection index does not name an
	// item.
	ErrIndexOutOfRange = errors.New("menu: index out of range")
	// ErrUnknownDestination is returned when no item points at a destination.
	ErrUnknownDestination = errors.New("menu: unknown destination")
)

// Item is one row in the menu.
type Item struct {
	ID          string `yaml:"id,omitempty"`
	Title       string `yaml:"title"`
	Icon        string `yaml:"icon,omitempty"`
	Destination string `yaml:"destination"`
	Description string `yaml:"description,omitempty"`
}

// List is an ordered set of items with a cursor.
type List struct {
	items  []Item
	cursor int
}

func NewList(items []Item) *List {
	return &List{items: append([]Item(nil), items...)}
}

func (l *List) Len() int { return len(l.items) }

// Items returns a copy of the items.
func (l *List) Items() []Item { return append([]Item(nil), l.items...) }

func (l *List) Cursor() int { return l.cursor }

// Item returns the item at i.
func (l *List) Item(i int) (Item, error) {
	if i < 0 || i >= len(l.items) {
		return Item{}, fmt.Errorf("%w: %d (have %d items)", ErrIndexOutOfRange, i, len(l.items))
	}
	return l.items[i], nil
}

// SetCursor moves the cursor to i. The cursor is unchanged on error.
func (l *List) SetCursor(i int) error {
	if _, err := l.Item(i); err != nil {
		return err
	}
	l.cursor = i
	return nil
}

func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *List) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// IndexOf returns the index of the first item with the given destination.
func (l *List) IndexOf(destination string) (int, error) {
	for i, it := range l.items {
		if it.Destination == destination {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownDestination, destination)
}

// Closest returns the item whose title best matches a typed query. Titles
// are compared case-insensitively against the query's length so that a
// prefix wins over a distant full-title match.
func (l *List) Closest(query string) (int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(l.items) == 0 {
		return -1, false
	}
	best, bestDist := -1, 0
	for i, it := range l.items {
		title := []rune(strings.ToLower(it.Title))
		if n := len([]rune(query)); len(title) > n {
			title = title[:n]
		}
		d := levenshtein.ComputeDistance(query, string(title))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}

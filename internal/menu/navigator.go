package menu

import (
	"fmt"

	"go.uber.org/zap"
)

// Navigator shows the destination of the item at index.
type Navigator interface {
	NavigateTo(index int) error
}

// Closer is the part of the transition controller a selection needs.
type Closer interface {
	Close()
}

// Router replaces the visible destination with the one picked from the
// menu. Only one destination is visible at a time.
type Router struct {
	items     []Item
	current   int
	listeners []func(Item)
}

// NewRouter starts on the first item, if any.
func NewRouter(items []Item) *Router {
	return &Router{items: append([]Item(nil), items...)}
}

// NavigateTo swaps in the destination at index and notifies listeners.
// An out of range index leaves the current destination in place.
func (r *Router) NavigateTo(index int) error {
	if index < 0 || index >= len(r.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	r.current = index
	item := r.items[index]
	for _, fn := range r.listeners {
		fn(item)
	}
	return nil
}

// Current returns the visible destination.
func (r *Router) Current() (Item, bool) {
	if len(r.items) == 0 {
		return Item{}, false
	}
	return r.items[r.current], true
}

// CurrentIndex returns the index of the visible destination.
func (r *Router) CurrentIndex() int { return r.current }

// OnChange registers fn to be called after every navigation.
func (r *Router) OnChange(fn func(Item)) {
	r.listeners = append(r.listeners, fn)
}

// Menu wires a list's selection to closing the menu and navigating.
type Menu struct {
	list   *List
	nav    Navigator
	closer Closer
	logger *zap.Logger
}

func New(list *List, nav Navigator, closer Closer, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{list: list, nav: nav, closer: closer, logger: logger}
}

func (m *Menu) List() *List { return m.list }

// Select closes the menu and navigates to item i. On an out of range index
// nothing changes.
func (m *Menu) Select(i int) error {
	item, err := m.list.Item(i)
	if err != nil {
		m.logger.Warn("menu selection rejected", zap.Int("index", i), zap.Error(err))
		return err
	}
	if err := m.nav.NavigateTo(i); err != nil {
		return fmt.Errorf("navigate to %q: %w", item.Destination, err)
	}
	m.list.cursor = i
	m.closer.Close()
	m.logger.Debug("menu item selected",
		zap.Int("index", i),
		zap.String("destination", item.Destination))
	return nil
}

// SelectCursor selects the item under the cursor.
func (m *Menu) SelectCursor() error {
	return m.Select(m.list.Cursor())
}

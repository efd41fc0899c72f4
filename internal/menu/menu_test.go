package menu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleItems() []Item {
	return []Item{
		{Title: "Home", Icon: "⌂", Destination: "home"},
		{Title: "Profile", Icon: "☺", Destination: "profile"},
		{Title: "Settings", Icon: "⚙", Destination: "settings"},
		{Title: "About", Icon: "?", Destination: "about"},
	}
}

type fakeCloser struct{ calls int }

func (f *fakeCloser) Close() { f.calls++ }

func TestListCursor(t *testing.T) {
	l := NewList(sampleItems())

	l.MoveUp()
	require.Equal(t, 0, l.Cursor())
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	require.Equal(t, 3, l.Cursor())

	require.NoError(t, l.SetCursor(1))
	require.ErrorIs(t, l.SetCursor(9), ErrIndexOutOfRange)
	require.ErrorIs(t, l.SetCursor(-1), ErrIndexOutOfRange)
	require.Equal(t, 1, l.Cursor())
}

func TestListItemsIsACopy(t *testing.T) {
	l := NewList(sampleItems())
	items := l.Items()
	items[0].Title = "changed"

	it, err := l.Item(0)
	require.NoError(t, err)
	require.Equal(t, "Home", it.Title)
}

func TestListIndexOf(t *testing.T) {
	l := NewList(sampleItems())

	i, err := l.IndexOf("settings")
	require.NoError(t, err)
	require.Equal(t, 2, i)

	_, err = l.IndexOf("nowhere")
	require.ErrorIs(t, err, ErrUnknownDestination)
}

func TestListClosest(t *testing.T) {
	l := NewList(sampleItems())

	tests := []struct {
		query string
		want  int
	}{
		{"h", 0},
		{"pro", 1},
		{"SET", 2},
		{"abt", 3},
		{"setings", 2},
	}
	for _, tt := range tests {
		got, ok := l.Closest(tt.query)
		require.True(t, ok, tt.query)
		require.Equal(t, tt.want, got, tt.query)
	}

	_, ok := l.Closest("   ")
	require.False(t, ok)
	_, ok = NewList(nil).Closest("x")
	require.False(t, ok)
}

func TestMenuSelect(t *testing.T) {
	items := sampleItems()
	router := NewRouter(items)
	closer := &fakeCloser{}
	m := New(NewList(items), router, closer, zaptest.NewLogger(t))

	var changes []string
	router.OnChange(func(it Item) { changes = append(changes, it.Destination) })

	require.NoError(t, m.Select(2))
	require.Equal(t, 1, closer.calls)
	require.Equal(t, []string{"settings"}, changes)
	require.Equal(t, 2, m.List().Cursor())

	cur, ok := router.Current()
	require.True(t, ok)
	require.Equal(t, "settings", cur.Destination)
}

func TestMenuSelectOutOfRangeChangesNothing(t *testing.T) {
	items := sampleItems()
	router := NewRouter(items)
	closer := &fakeCloser{}
	m := New(NewList(items), router, closer, nil)
	require.NoError(t, m.List().SetCursor(1))

	var changes int
	router.OnChange(func(Item) { changes++ })

	require.ErrorIs(t, m.Select(4), ErrIndexOutOfRange)
	require.ErrorIs(t, m.Select(-1), ErrIndexOutOfRange)

	require.Zero(t, closer.calls)
	require.Zero(t, changes)
	require.Equal(t, 1, m.List().Cursor())
	require.Equal(t, 0, router.CurrentIndex())
}

func TestMenuSelectCursor(t *testing.T) {
	items := sampleItems()
	router := NewRouter(items)
	m := New(NewList(items), router, &fakeCloser{}, nil)
	m.List().MoveDown()

	require.NoError(t, m.SelectCursor())
	require.Equal(t, 1, router.CurrentIndex())
}

func TestRouterEmpty(t *testing.T) {
	r := NewRouter(nil)
	_, ok := r.Current()
	require.False(t, ok)
	require.ErrorIs(t, r.NavigateTo(0), ErrIndexOutOfRange)
}

func TestLoadItems(t *testing.T) {
	doc := `
items:
  - title: Home
    icon: "⌂"
  - title: Release Notes
    destination: notes
    description: What changed
  - title: Getting Started
`
	items, err := LoadItems(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "home", items[0].Destination)
	require.Equal(t, "notes", items[1].Destination)
	require.Equal(t, "What changed", items[1].Description)
	require.Equal(t, "getting-started", items[2].Destination)
}

func TestLoadItemsErrors(t *testing.T) {
	tests := map[string]string{
		"missing title":   "items:\n  - icon: x\n",
		"duplicate dest":  "items:\n  - title: A\n    destination: a\n  - title: B\n    destination: a\n",
		"unknown field":   "items:\n  - title: A\n    colour: red\n",
		"not a yaml list": "items: 3\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadItems(strings.NewReader(doc))
			require.Error(t, err)
		})
	}

	items, err := LoadItems(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestWriteItemsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteItems(&buf, sampleItems()))

	got, err := LoadItems(&buf)
	require.NoError(t, err)
	require.Equal(t, sampleItems(), got)
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/sidemenu/internal/database/repository"
)

func openTestDB(t *testing.T) (context.Context, *repositories) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return ctx, &repositories{
		items:       repository.NewItemRepo(db),
		transitions: repository.NewTransitionRepo(db),
		settings:    repository.NewSettingsRepo(db),
		db:          db,
	}
}

type repositories struct {
	items       *repository.ItemRepo
	transitions *repository.TransitionRepo
	settings    *repository.SettingsRepo
	db          *sql.DB
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	for i := 0; i < 2; i++ {
		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())
	}
}

func TestSeedDefaults(t *testing.T) {
	t.Parallel()
	ctx, r := openTestDB(t)

	items, err := r.items.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, SeedDefaults(ctx, r.db))
	require.NoError(t, SeedDefaults(ctx, r.db), "seeding twice must not duplicate")

	items, err = r.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, "home", items[0].Destination)
	require.Equal(t, ItemID("home"), items[0].ID)
	require.Equal(t, "about", items[3].Destination)
}

func TestItemUpsert(t *testing.T) {
	t.Parallel()
	ctx, r := openTestDB(t)

	it := repository.Item{ID: ItemID("docs"), Title: "Docs", Destination: "docs", SortOrder: 2}
	require.NoError(t, r.items.Upsert(ctx, it))
	it.Title = "Documentation"
	it.Icon = "📖"
	require.NoError(t, r.items.Upsert(ctx, it))

	items, err := r.items.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Documentation", items[0].Title)
	require.Equal(t, "📖", items[0].Icon)

	n, err := r.items.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, r.items.DeleteAll(ctx))
	n, err = r.items.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestTransitionJournal(t *testing.T) {
	t.Parallel()
	ctx, r := openTestDB(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	dest := "settings"
	rows := []repository.Transition{
		{ID: "a", State: "open", Source: "keyboard", At: base},
		{ID: "b", State: "closed", Source: "select", Destination: &dest, At: base.Add(time.Second)},
		{ID: "c", State: "open", Source: "pan", At: base.Add(2 * time.Second)},
	}
	for _, tr := range rows {
		require.NoError(t, r.transitions.Insert(ctx, tr))
	}

	got, err := r.transitions.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c", got[0].ID)
	require.Equal(t, "b", got[1].ID)
	require.NotNil(t, got[1].Destination)
	require.Equal(t, "settings", *got[1].Destination)
	require.True(t, got[1].At.Equal(base.Add(time.Second)))

	open, err := r.transitions.Count(ctx, "open")
	require.NoError(t, err)
	require.Equal(t, 2, open)

	err = r.transitions.Insert(ctx, repository.Transition{ID: "d", State: "ajar", Source: "x", At: base})
	require.Error(t, err, "state is constrained to open/closed")
}

func TestSettings(t *testing.T) {
	t.Parallel()
	ctx, r := openTestDB(t)

	_, ok, err := r.settings.Get(ctx, repository.SettingLastState)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.settings.Set(ctx, repository.SettingLastState, "open"))
	require.NoError(t, r.settings.Set(ctx, repository.SettingLastState, "closed"))

	v, ok, err := r.settings.Get(ctx, repository.SettingLastState)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "closed", v)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()
	ctx, r := openTestDB(t)

	boom := errors.New("boom")
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO settings(key, value) VALUES('k', 'v')`)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := r.settings.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

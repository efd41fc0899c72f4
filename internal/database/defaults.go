package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/sidemenu/internal/database/repository"
)

// ItemID derives a stable id from a destination so re-imports update rows
// in place.
func ItemID(destination string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("item:"+destination)).String()
}

// SeedDefaults ensures a new database has menu items to show.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	itemRepo := repository.NewItemRepo(db)
	n, err := itemRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults := []repository.Item{
		{Title: "Home", Icon: "⌂", Destination: "home", Description: "Where every session starts."},
		{Title: "Profile", Icon: "☺", Destination: "profile", Description: "Who is signed in."},
		{Title: "Settings", Icon: "⚙", Destination: "settings", Description: "Tune the menu spring, width and overlay."},
		{Title: "About", Icon: "ℹ", Destination: "about", Description: "A slide-out menu for the terminal."},
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for idx, it := range defaults {
			it.ID = ItemID(it.Destination)
			it.SortOrder = idx
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO items(id, title, icon, destination, description, sort_order)
			VALUES (?, ?, ?, ?, ?, ?)`,
				it.ID, it.Title, it.Icon, it.Destination, it.Description, it.SortOrder); err != nil {
				return err
			}
		}
		return nil
	})
}

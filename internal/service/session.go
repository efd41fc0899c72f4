// Package service connects the menu engine to the database: it loads and
// imports items, journals committed transitions and remembers where the
// last session left off.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/sidemenu/internal/database"
	"github.com/jask/sidemenu/internal/database/repository"
	"github.com/jask/sidemenu/internal/menu"
	"github.com/jask/sidemenu/internal/transition"
)

// Transition sources recorded in the journal.
const (
	SourceKeyboard = "keyboard"
	SourcePan      = "pan"
	SourceTap      = "tap"
	SourceSelect   = "select"
)

// Session persists what the menu does.
type Session struct {
	DB     *sql.DB
	Logger *zap.Logger

	items       *repository.ItemRepo
	transitions *repository.TransitionRepo
	settings    *repository.SettingsRepo
	now         func() time.Time
}

func NewSession(db *sql.DB, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		DB:          db,
		Logger:      logger,
		items:       repository.NewItemRepo(db),
		transitions: repository.NewTransitionRepo(db),
		settings:    repository.NewSettingsRepo(db),
		now:         database.Now,
	}
}

// Items returns the menu items in display order, seeding the defaults into
// an empty database first.
func (s *Session) Items(ctx context.Context) ([]menu.Item, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("session: db not configured")
	}
	if err := database.SeedDefaults(ctx, s.DB); err != nil {
		return nil, fmt.Errorf("seed items: %w", err)
	}
	rows, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]menu.Item, 0, len(rows))
	for _, r := range rows {
		out = append(out, menu.Item{
			ID:          r.ID,
			Title:       r.Title,
			Icon:        r.Icon,
			Destination: r.Destination,
			Description: r.Description,
		})
	}
	return out, nil
}

// ImportItems reads a YAML items document and upserts it. With replace set
// the existing items are removed first, so the file becomes the whole menu.
// The import is all or nothing. It returns the number of items written.
func (s *Session) ImportItems(ctx context.Context, r io.Reader, replace bool) (int, error) {
	parsed, err := menu.LoadItems(r)
	if err != nil {
		return 0, err
	}
	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		if replace {
			if err := items.DeleteAll(ctx); err != nil {
				return fmt.Errorf("clear items: %w", err)
			}
		}
		for i, it := range parsed {
			row := repository.Item{
				ID:          database.ItemID(it.Destination),
				Title:       it.Title,
				Icon:        it.Icon,
				Destination: it.Destination,
				Description: it.Description,
				SortOrder:   i,
			}
			if err := items.Upsert(ctx, row); err != nil {
				return fmt.Errorf("upsert item %q: %w", it.Destination, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.Logger.Info("menu items imported", zap.Int("count", len(parsed)), zap.Bool("replace", replace))
	return len(parsed), nil
}

// ExportItems writes the stored items as a YAML document ImportItems reads.
func (s *Session) ExportItems(ctx context.Context, w io.Writer) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	return menu.WriteItems(w, items)
}

// Record journals a committed state change. destination is empty unless the
// change came from selecting an item.
func (s *Session) Record(ctx context.Context, state transition.State, source, destination string) error {
	t := repository.Transition{
		ID:     uuid.NewString(),
		State:  state.String(),
		Source: source,
		At:     s.now(),
	}
	if destination != "" {
		t.Destination = &destination
	}
	if err := s.transitions.Insert(ctx, t); err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return s.settings.Set(ctx, repository.SettingLastState, t.State)
}

// History returns up to limit journal entries, newest first.
func (s *Session) History(ctx context.Context, limit int) ([]repository.Transition, error) {
	return s.transitions.Recent(ctx, limit)
}

// RememberDestination stores the destination on screen.
func (s *Session) RememberDestination(ctx context.Context, destination string) error {
	return s.settings.Set(ctx, repository.SettingLastDestination, destination)
}

// Resume is where the previous session left off.
type Resume struct {
	State       transition.State
	Destination string
}

// Resume returns the last committed state and destination. Missing values
// come back as Closed and "".
func (s *Session) Resume(ctx context.Context) (Resume, error) {
	var out Resume
	state, ok, err := s.settings.Get(ctx, repository.SettingLastState)
	if err != nil {
		return out, fmt.Errorf("read last state: %w", err)
	}
	if ok {
		out.State = transition.ParseState(state)
	}
	dest, _, err := s.settings.Get(ctx, repository.SettingLastDestination)
	if err != nil {
		return out, fmt.Errorf("read last destination: %w", err)
	}
	out.Destination = dest
	return out, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/sidemenu/internal/config"
	"github.com/jask/sidemenu/internal/database"
	"github.com/jask/sidemenu/internal/logging"
	"github.com/jask/sidemenu/internal/service"
	"github.com/jask/sidemenu/internal/tui"
)

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "sidemenu",
		Short:         "A slide-out menu for the terminal",
		Long:          "sidemenu shows a spring-animated side menu. Drag right or press m to open it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(c.historyCmd(), c.itemsCmd(), c.configCmd())
	return root
}

func (c *cli) setup() error {
	if c.configPath != "" {
		if err := os.Setenv(config.EnvConfig, c.configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.Log.Level
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(cfg.Log.Path, level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	c.logger = logger
	return nil
}

// openSession opens the database and returns a session with a func that
// closes it.
func (c *cli) openSession() (*service.Session, func(), error) {
	db, err := database.Open(c.cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return service.NewSession(db, c.logger.Named("session")), func() { _ = db.Close() }, nil
}

func (c *cli) runTUI(ctx context.Context) error {
	session, closeDB, err := c.openSession()
	if err != nil {
		return err
	}
	defer closeDB()

	app, err := tui.New(ctx, c.cfg, session, c.logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	if err := app.WatchConfig(p.Send); err != nil {
		c.logger.Info("config live reload disabled", zap.Error(err))
	}
	c.logger.Info("sidemenu started", zap.String("db", c.cfg.Database.Path))
	_, err = p.Run()
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

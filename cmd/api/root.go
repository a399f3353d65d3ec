package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/studio-manager/internal/db"
	"github.com/BruksfildServices01/studio-manager/internal/logger"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// app carries what every subcommand needs; it is filled before RunE.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

func rootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "studio",
		Short:        "Wedding studio management backend",
		SilenceUsage: true,
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		a.cfg = config.Load()
		a.log = logger.New(a.cfg.LogLevel, a.cfg.LogFormat)
		timezone.SetDefault(a.cfg.DefaultTimezone)
		return nil
	}

	root.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		seedCommand(a),
	)
	return root
}

func (a *app) openDB() (*gorm.DB, error) {
	return dbpkg.NewDB(a.cfg, logger.Component(a.log, "db"))
}

func migrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db, a.cfg.DefaultTimezone); err != nil {
				return err
			}
			a.log.Info("schema up to date")
			return nil
		},
	}
}

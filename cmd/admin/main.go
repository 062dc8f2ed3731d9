package main

import (
	"context"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-watchlist/internal/bootstrap"
	"go-gin-watchlist/internal/core/config"
	"go-gin-watchlist/internal/core/database"
	"go-gin-watchlist/internal/core/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "watchlist-admin",
		Short:         "Operator commands for the watchlist database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "config file path")

	var drop bool
	initdb := &cobra.Command{
		Use:   "initdb",
		Short: "Create all tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(configPath, func(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
				if err := bootstrap.InitDB(ctx, db, drop); err != nil {
					return err
				}
				l.Info("initdb done", zap.Bool("drop", drop))
				cmd.Println("Initialized database.")
				return nil
			})
		},
	}
	initdb.Flags().BoolVar(&drop, "drop", false, "Create after drop.")

	forge := &cobra.Command{
		Use:   "forge",
		Short: "Recreate the schema and load fixture data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(configPath, func(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
				if err := bootstrap.Forge(ctx, db); err != nil {
					return err
				}
				l.Info("forge done", zap.Int("movies", len(bootstrap.ForgeMovies)))
				cmd.Println("Done")
				return nil
			})
		},
	}

	root.AddCommand(initdb, forge)
	return root
}

func withDB(configPath string, fn func(context.Context, *gorm.DB, *zap.Logger) error) error {
	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}
	l, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Error("db open", zap.Error(err))
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(context.Background(), db, l)
}

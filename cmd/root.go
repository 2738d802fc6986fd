package cmd

import (
	"context"
	"fmt"
	"os"

	"superapp-api/config"
	"superapp-api/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	memoryKV   bool
)

// rootCmd runs the server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "superapp-api",
	Short: "DOMI super app API: delivery, taxi, vendors and admin in one service",
	Long: `superapp-api serves the DOMI super app over HTTP.

Customers order from vendor catalogs or request a taxi, delivery partners
claim and walk orders through their lifecycle, vendors edit their catalog
and admins watch the numbers. State lives in four slots of a key/value
table (sqlite by default, postgres via config).`,
	Version:      "1.0.0",
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&memoryKV, "memory", false, "Keep state in memory only (nothing survives a restart)")
}

// env is what every command needs: config, logger and the key/value store.
type env struct {
	conf  config.Config
	log   *logrus.Logger
	kv    store.KV
	close func()
}

func setup() (*env, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := config.NewLogger(conf)
	if err != nil {
		return nil, err
	}
	if memoryKV {
		log.Warn("using in-memory store, state is lost on exit")
		return &env{conf: conf, log: log, kv: store.NewMemoryKV(), close: func() {}}, nil
	}

	db, err := config.OpenDB(conf)
	if err != nil {
		return nil, err
	}
	kv, err := store.NewGormKV(db)
	if err != nil {
		return nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.WithFields(logrus.Fields{"driver": conf.Database.Driver}).Info("database connected")
	return &env{conf: conf, log: log, kv: kv, close: closeDB}, nil
}

// openStore loads the entity store with persistence attached.
func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, e.kv, e.log)
}

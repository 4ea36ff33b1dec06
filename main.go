package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/config"
	"github.com/WatsonMulkey/The-Number/internal/database"
	"github.com/WatsonMulkey/The-Number/internal/router"
	"github.com/WatsonMulkey/The-Number/internal/store"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional, used for local overrides like TN_JWT_SECRET
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist before the logger opens its file
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		logrus.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
		logrus.Fatalf("create log dir: %v", err)
	}
	if err := ensureDir(cfg.Backup.Dir); err != nil {
		logrus.Fatalf("create backup dir: %v", err)
	}

	log := newLogger(cfg.Log)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// hourly sweeps for expired reset tokens and stale rate hits
	tokens := store.NewResetTokenStore(db, time.Duration(cfg.Security.ResetTokenTTLMinutes)*time.Minute)
	limits := store.NewRateLimitStore(db)

	sweeper := cron.New()
	_, err = sweeper.AddFunc("@hourly", func() {
		now := time.Now()
		if n, err := tokens.SweepExpired(now); err != nil {
			log.WithError(err).Warn("reset token sweep failed")
		} else if n > 0 {
			log.WithField("removed", n).Info("swept expired reset tokens")
		}
		if n, err := limits.SweepBefore(now.Add(-24 * time.Hour)); err != nil {
			log.WithError(err).Warn("rate hit sweep failed")
		} else if n > 0 {
			log.WithField("removed", n).Info("swept old rate hits")
		}
	})
	if err != nil {
		log.Fatalf("schedule sweeps: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	r := router.SetupRouter(cfg, db, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if level, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(level)
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			log.SetOutput(f)
		} else {
			log.WithError(err).Warn("log file unavailable, using stderr")
		}
	}
	return log
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

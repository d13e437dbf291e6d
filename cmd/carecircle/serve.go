package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/carecircle/internal/catalog"
	"github.com/dukerupert/carecircle/internal/database"
	"github.com/dukerupert/carecircle/internal/logging"
	"github.com/dukerupert/carecircle/internal/server"
)

type ServeCmd struct {
	Addr            string        `help:"Listen address." default:":8080" env:"CARECIRCLE_ADDR"`
	DB              string        `name:"db" help:"SQLite database path." default:"carecircle.db" env:"CARECIRCLE_DB_PATH"`
	CacheDB         string        `name:"cache-db" help:"SQLite path for puzzle progress. Empty keeps progress in memory." default:"carecircle-cache.db" env:"CARECIRCLE_CACHE_PATH"`
	LogLevel        string        `help:"Log level (debug, info, warn, error)." default:"info" env:"CARECIRCLE_LOG_LEVEL"`
	LogFile         string        `help:"Also write logs to this rotating file." env:"CARECIRCLE_LOG_FILE"`
	Timezone        string        `help:"IANA zone used for the calendar day." default:"Local" env:"CARECIRCLE_TZ"`
	Catalog         string        `help:"YAML file overriding the help catalog and match tables." type:"path" env:"CARECIRCLE_CATALOG"`
	VAPIDPublicKey  string        `name:"vapid-public-key" help:"VAPID public key for web push." env:"CARECIRCLE_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string        `name:"vapid-private-key" help:"VAPID private key for web push." env:"CARECIRCLE_VAPID_PRIVATE_KEY"`
	Tick            time.Duration `help:"How often the daily reset and retention pass runs." default:"1m" env:"CARECIRCLE_TICK"`
}

func (c *ServeCmd) Run() error {
	logger, closer, err := logging.Setup(c.LogLevel, c.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	var table *catalog.Table
	if c.Catalog != "" {
		var dropped []string
		table, dropped, err = catalog.LoadFile(c.Catalog)
		if err != nil {
			return err
		}
		for _, key := range dropped {
			logger.Warn("duplicate catalog pair dropped", "pair", key)
		}
		if err := table.Validate(); err != nil {
			return fmt.Errorf("validate catalog: %w", err)
		}
	}

	db, err := database.Open(c.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var cacheDB *sql.DB
	if c.CacheDB != "" {
		cacheDB, err = database.OpenCache(c.CacheDB)
		if err != nil {
			logger.Warn("puzzle cache unavailable, progress kept in memory", "path", c.CacheDB, "error", err)
			cacheDB = nil
		} else {
			defer cacheDB.Close()
		}
	}

	srv := server.New(db, cacheDB, server.Config{
		Location:        loc,
		Catalog:         table,
		VAPIDPublicKey:  c.VAPIDPublicKey,
		VAPIDPrivateKey: c.VAPIDPrivateKey,
		TickInterval:    c.Tick,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.Scheduler().Start(ctx)
	defer srv.Scheduler().Stop()

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         c.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("carecircle listening", "addr", c.Addr, "timezone", loc.String(), "push", c.VAPIDPublicKey != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Command stockscand serves the inventory record store as a JSON REST API
// backed by SQLite, for installations where several scanners share one list.
package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"stockscan/internal/config"
	"stockscan/internal/server"
	"stockscan/internal/store"
	"stockscan/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "path to .env file (optional)")
	flag.Parse()

	log := logger.Must(logger.New())
	defer log.Sync()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("load configuration", zap.Error(err))
	}

	st, err := store.OpenSQLite(cfg.DBPath, store.Options{
		ProtectDefaults: cfg.ProtectDefaultUnits,
	})
	if err != nil {
		log.Fatal("open store", zap.String("db", cfg.DBPath), zap.Error(err))
	}
	defer st.Close()

	srv := server.New(st, log)
	log.Info("listening", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBPath))
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/AravindhAjit/my-wealth-atlas/internal/config"
	"github.com/AravindhAjit/my-wealth-atlas/internal/routes"
)

func main() {
	logger := log.Default()
	cfg := config.New()

	gdb := initDB(cfg.MySQLDSN())
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatal("get sql db", "err", err)
	}

	engine := routes.Register(sqlDB, gdb, logger)
	srv := &http.Server{Addr: cfg.Addr, Handler: engine}
	logger.Info("listening", "addr", cfg.Addr)
	logger.Fatal(srv.ListenAndServe())
}

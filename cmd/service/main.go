package main

import (
	"fmt"
	"os"
	"strconv"

	"gitlab.com/dirk.krummacker/lunchly/internal/config"
	"gitlab.com/dirk.krummacker/lunchly/internal/logger"
	"gitlab.com/dirk.krummacker/lunchly/internal/service"
	"gitlab.com/dirk.krummacker/lunchly/internal/store"
	"gitlab.com/dirk.krummacker/lunchly/internal/view"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("could not load configuration", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Println("could not create logger", err)
		os.Exit(1)
	}
	defer log.Sync()

	sqlDB, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatal("could not open database", zap.Error(err))
	}
	db, err := store.New(sqlDB)
	if err != nil {
		log.Fatal("could not prepare statements", zap.Error(err))
	}
	defer db.Close()

	views, err := view.NewEngine()
	if err != nil {
		log.Fatal("could not parse templates", zap.Error(err))
	}

	router := service.New(db.Customers, db.Reservations, views, log).SetupHttpRouter(cfg.RequestLogging())
	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/lunchly/internal/config"
	"gitlab.com/dirk.krummacker/lunchly/internal/logger"
	"gitlab.com/dirk.krummacker/lunchly/internal/store"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	log, err := logger.New("info")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("could not load configuration", zap.Error(err))
	}
	sqlDB, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatal("could not open database", zap.Error(err))
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		log.Fatal("could not open sql file", zap.String("file", *filePtr), zap.Error(err))
	}
	defer readFile.Close()

	// Statements may span several lines; each one ends with a semicolon.
	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	executed := 0
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			db.MustExec(builder.String())
			builder = strings.Builder{}
			executed++
		}
	}
	if err := fileScanner.Err(); err != nil {
		log.Fatal("could not read sql file", zap.Error(err))
	}
	log.Info("migration done", zap.String("file", *filePtr), zap.Int("statements", executed))
}

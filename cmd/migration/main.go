package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"gitlab.com/dirk.krummacker/persons-service/internal/config"
	"gitlab.com/dirk.krummacker/persons-service/internal/service"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)

	sqlDB, err := service.CreateDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		logrus.WithError(err).Fatal("could not open sql file")
	}
	defer readFile.Close()

	count, err := execStatements(db, bufio.NewScanner(readFile))
	if err != nil {
		logrus.WithError(err).WithField("file", *filePtr).Fatal("migration failed")
	}
	logrus.WithFields(logrus.Fields{"file": *filePtr, "statements": count}).Info("migration done")
}

// execStatements executes the statements read from the scanner one after the other. A statement
// ends with the line that contains a ';'. Lines starting with "--" are comments.
func execStatements(db *sqlx.DB, fileScanner *bufio.Scanner) (int, error) {
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	count := 0
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			sql := builder.String()
			logrus.WithField("sql", strings.Join(strings.Fields(sql), " ")).Debug("executing")
			if _, err := db.Exec(sql); err != nil {
				return count, err
			}
			count++
			builder = strings.Builder{}
		}
	}
	return count, fileScanner.Err()
}

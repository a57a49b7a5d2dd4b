package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gitlab.com/dirk.krummacker/persons-service/internal/config"
	"gitlab.com/dirk.krummacker/persons-service/internal/service"
)

// Usage example on the command line:
// > PORT=8080 DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)
	if gin.Mode() == gin.ReleaseMode {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	sqlDB, err := service.CreateDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}
	defer sqlDB.Close()
	if err := service.SetupDatabaseWrapper(sqlDB); err != nil {
		logrus.WithError(err).Fatal("could not prepare statements")
	}

	router := service.SetupHttpRouter(cfg.GinLogging)
	logrus.WithFields(logrus.Fields{"addr": cfg.Addr(), "db": cfg.DBHost}).Info("persons service listening")
	if err := router.Run(cfg.Addr()); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

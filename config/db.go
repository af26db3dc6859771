package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DBDriver returns DB_DRIVER (mysql by default).
func DBDriver() string {
	return GetEnv("DB_DRIVER", DriverMySQL)
}

func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASS")
	host := GetEnv("MYSQL_HOST", "127.0.0.1")
	port := GetEnv("MYSQL_PORT", "3306")
	db := GetEnv("MYSQL_DB", "shopzone")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local&multiStatements=true", user, pass, host, port, db)
}

func NewDB() (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	var dialector gorm.Dialector
	switch DBDriver() {
	case DriverSQLite:
		dialector = sqlite.Open(GetEnv("SQLITE_PATH", "shopzone.db"))
	default:
		dialector = mysql.Open(mysqlDSN())
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rogerio-castellano/supermarket/internal/config"
	"github.com/rogerio-castellano/supermarket/internal/repo"
)

var ErrMissingDSN = errors.New("database connection settings not found")

// Connect opens and pings the database selected by cfg.Driver.
func Connect(cfg config.DatabaseConfig) (*sql.DB, repo.Dialect, error) {
	driver, dsn, dialect, err := resolve(cfg)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, dialect, nil
}

func resolve(cfg config.DatabaseConfig) (driver, dsn string, dialect repo.Dialect, err error) {
	switch cfg.Driver {
	case "", "postgres", "pgx":
		if cfg.URL == "" {
			return "", "", "", fmt.Errorf("%w: DATABASE_URL is required for postgres", ErrMissingDSN)
		}
		return "pgx", cfg.URL, repo.DialectPostgres, nil
	case "mysql":
		dsn, err := mysqlDSN(cfg)
		if err != nil {
			return "", "", "", err
		}
		return "mysql", dsn, repo.DialectMySQL, nil
	default:
		return "", "", "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// mysqlDSN returns a DSN with parseTime and clientFoundRows enabled, so that an
// UPDATE which leaves a row unchanged still reports it as affected.
func mysqlDSN(cfg config.DatabaseConfig) (string, error) {
	var mc *mysql.Config
	if cfg.URL != "" {
		parsed, err := mysql.ParseDSN(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		mc = parsed
	} else {
		if cfg.User == "" || cfg.Name == "" {
			return "", fmt.Errorf("%w: DB_USER and DB_NAME are required for mysql", ErrMissingDSN)
		}
		mc = mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Pass
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mc.DBName = cfg.Name
	}

	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/rogerio-castellano/supermarket/internal/config"
	"github.com/rogerio-castellano/supermarket/internal/repo"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		wantDriver  string
		wantDialect repo.Dialect
		wantErr     error
		dsnContains []string
	}{
		{
			name:        "postgres url",
			cfg:         config.DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@localhost:5432/shop"},
			wantDriver:  "pgx",
			wantDialect: repo.DialectPostgres,
			dsnContains: []string{"postgres://u:p@localhost:5432/shop"},
		},
		{
			name:    "postgres without url",
			cfg:     config.DatabaseConfig{Driver: "postgres"},
			wantErr: ErrMissingDSN,
		},
		{
			name:        "mysql from parts",
			cfg:         config.DatabaseConfig{Driver: "mysql", User: "root", Pass: "pw", Host: "db", Port: "3306", Name: "shop"},
			wantDriver:  "mysql",
			wantDialect: repo.DialectMySQL,
			dsnContains: []string{"root:pw@tcp(db:3306)/shop", "parseTime=true", "clientFoundRows=true"},
		},
		{
			name:        "mysql url gains flags",
			cfg:         config.DatabaseConfig{Driver: "mysql", URL: "root:pw@tcp(localhost:3306)/shop"},
			wantDriver:  "mysql",
			wantDialect: repo.DialectMySQL,
			dsnContains: []string{"clientFoundRows=true", "parseTime=true"},
		},
		{
			name:    "mysql missing parts",
			cfg:     config.DatabaseConfig{Driver: "mysql"},
			wantErr: ErrMissingDSN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, dsn, dialect, err := resolve(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if driver != tt.wantDriver {
				t.Errorf("expected driver %q, got %q", tt.wantDriver, driver)
			}
			if dialect != tt.wantDialect {
				t.Errorf("expected dialect %q, got %q", tt.wantDialect, dialect)
			}
			for _, part := range tt.dsnContains {
				if !strings.Contains(dsn, part) {
					t.Errorf("expected dsn %q to contain %q", dsn, part)
				}
			}
		})
	}
}

func TestResolve_UnsupportedDriver(t *testing.T) {
	if _, _, _, err := resolve(config.DatabaseConfig{Driver: "sqlite"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

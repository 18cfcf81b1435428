package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/supermarket/internal/repo"
)

func schema(dialect repo.Dialect) []string {
	if dialect == repo.DialectMySQL {
		return []string{
			`CREATE TABLE IF NOT EXISTS products (
				id INT AUTO_INCREMENT PRIMARY KEY,
				productName VARCHAR(200) NOT NULL,
				quantity INT NOT NULL DEFAULT 0,
				price DECIMAL(10,2) NOT NULL DEFAULT 0,
				image VARCHAR(255) NULL
			)`,
			`CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(100) NOT NULL,
				email VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				address VARCHAR(255) NULL,
				contact VARCHAR(50) NULL,
				role VARCHAR(20) NOT NULL DEFAULT 'customer'
			)`,
		}
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			productName TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			image TEXT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			address TEXT NULL,
			contact TEXT NULL,
			role TEXT NOT NULL DEFAULT 'customer'
		)`,
	}
}

// RunMigrations creates the products and users tables when missing.
func RunMigrations(db *sql.DB, dialect repo.Dialect) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, q := range schema(dialect) {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/supermarket/internal/models"
)

type SQLUserRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLUserRepository(db *sql.DB, dialect Dialect) *SQLUserRepository {
	return &SQLUserRepository{db: db, dialect: dialect}
}

func (r *SQLUserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	query := `INSERT INTO users (username, email, password_hash, address, contact, role) VALUES (?, ?, ?, ?, ?, ?)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := r.dialect.insertReturningID(ctx, r.db, query, u.Username, u.Email, u.PasswordHash, u.Address, u.Contact, string(u.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%w: %v", ErrDuplicatedValueUnique, err)
		}
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash, address, contact, role FROM users WHERE email = ?`, email)
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	return r.getOne(ctx, `SELECT id, username, email, password_hash, address, contact, role FROM users WHERE id = ?`, id)
}

func (r *SQLUserRepository) getOne(ctx context.Context, query string, arg any) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		u                models.User
		address, contact sql.NullString
		role             string
	)
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &address, &contact, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}

	u.Address = address.String
	u.Contact = contact.String
	u.Role = models.ParseRole(role)
	return u, nil
}

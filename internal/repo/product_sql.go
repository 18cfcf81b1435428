package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rogerio-castellano/supermarket/internal/models"
)

type SQLProductRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLProductRepository(db *sql.DB, dialect Dialect) *SQLProductRepository {
	return &SQLProductRepository{db: db, dialect: dialect}
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (productName, quantity, price, image) VALUES (?, ?, ?, ?)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := r.dialect.insertReturningID(ctx, r.db, query, p.ProductName, p.Quantity, p.Price, nullString(p.Image))
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *SQLProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, productName, quantity, price, image FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	query := r.dialect.Rebind(`SELECT id, productName, quantity, price, image FROM products WHERE id = ?`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *SQLProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := r.dialect.Rebind(`UPDATE products SET productName = ?, quantity = ?, price = ?, image = ? WHERE id = ?`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.ProductName, p.Quantity, p.Price, nullString(p.Image), p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLProductRepository) Delete(ctx context.Context, id int) error {
	query := r.dialect.Rebind(`DELETE FROM products WHERE id = ?`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p     models.Product
		image sql.NullString
	)
	if err := row.Scan(&p.ID, &p.ProductName, &p.Quantity, &p.Price, &image); err != nil {
		return models.Product{}, err
	}
	p.Image = image.String
	return p, nil
}

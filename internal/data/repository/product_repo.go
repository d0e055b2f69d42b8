package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"storefront/internal/data/entity"
	"storefront/pkg/apperr"
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	FindAll(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, text string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	db  database.SQLIface
	log *zap.Logger
}

func NewProductRepository(db database.SQLIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, name, description, price, quantity`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, description, price, quantity)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price.InexactFloat64(),
		product.Quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return apperr.InvalidField("product", "violates price/quantity constraints")
		}
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("name", product.Name),
		)
		return apperr.Storage("create product", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Storage("create product: last insert id", err)
	}
	product.ID = id

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	var product entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.Int64("product_id", id),
		)
		return nil, apperr.Storage("find product by id", err)
	}

	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all products", zap.Error(err))
		return nil, apperr.Storage("find all products", err)
	}

	return r.scanProducts(rows)
}

// Search matches text as a substring of name or description. SQLite LIKE
// folds ASCII case only. Empty text returns every product.
func (r *productRepository) Search(ctx context.Context, text string) ([]*entity.Product, error) {
	if text == "" {
		return r.FindAll(ctx)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'
		ORDER BY id
	`
	pattern := "%" + likeEscaper.Replace(text) + "%"

	rows, err := r.db.Query(ctx, query, pattern, pattern)
	if err != nil {
		r.log.Error("Failed to search products",
			zap.Error(err),
			zap.String("text", text),
		)
		return nil, apperr.Storage("search products", err)
	}

	return r.scanProducts(rows)
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, quantity = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price.InexactFloat64(),
		product.Quantity,
		product.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return apperr.InvalidField("product", "violates price/quantity constraints")
		}
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.Int64("product_id", product.ID),
		)
		return apperr.Storage("update product", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("update product: rows affected", err)
	}
	if affected == 0 {
		return apperr.NotFound("product", product.ID)
	}

	return nil
}

// Delete removes the product row. Orders that reference it are left alone.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = ?`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.Int64("product_id", id),
		)
		return apperr.Storage("delete product", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Storage("delete product: rows affected", err)
	}
	if affected == 0 {
		return apperr.NotFound("product", id)
	}

	r.log.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (r *productRepository) scanProducts(rows *sql.Rows) ([]*entity.Product, error) {
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Quantity,
		)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, apperr.Storage("scan product row", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, apperr.Storage("iterate product rows", err)
	}

	return products, nil
}

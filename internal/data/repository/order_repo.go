package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/data/entity"
	"storefront/pkg/apperr"
	"storefront/pkg/database"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Place checks stock, records the order at the current price and
	// decrements stock, all in one transaction.
	Place(ctx context.Context, userID, productID int64, quantity int) (*entity.Order, error)
	// Cancel puts the order's quantity back on its product and deletes the
	// order, in one transaction. A non-nil ownerID restricts the lookup to
	// that user's orders.
	Cancel(ctx context.Context, orderID int64, ownerID *int64) (*entity.Order, error)

	FindByID(ctx context.Context, id int64) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.OrderView, error)
	FindAll(ctx context.Context) ([]*entity.OrderView, error)
}

type orderRepository struct {
	db  database.SQLIface
	log *zap.Logger
}

func NewOrderRepository(db database.SQLIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderViewQuery = `
	SELECT o.id, o.user_id, o.product_id, o.quantity, o.total_price,
	       COALESCE(u.username, ''), COALESCE(p.name, '')
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN products p ON p.id = o.product_id
`

func (r *orderRepository) Place(ctx context.Context, userID, productID int64, quantity int) (*entity.Order, error) {
	if quantity <= 0 {
		return nil, apperr.InvalidField("quantity", "Must be greater than 0")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin place order transaction", zap.Error(err))
		return nil, apperr.Storage("begin place order", err)
	}
	// No-op once committed
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", userID)
	}
	if err != nil {
		return nil, r.storageErr("place order: find user", err, userID, productID)
	}

	var (
		price decimal.Decimal
		stock int
	)
	err = tx.QueryRowContext(ctx, `SELECT price, quantity FROM products WHERE id = ?`, productID).Scan(&price, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product", productID)
	}
	if err != nil {
		return nil, r.storageErr("place order: find product", err, userID, productID)
	}

	if quantity > stock {
		return nil, &apperr.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: stock,
		}
	}

	total := price.Mul(decimal.NewFromInt(int64(quantity)))

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, product_id, quantity, total_price)
		VALUES (?, ?, ?, ?)
	`, userID, productID, quantity, total.InexactFloat64())
	if err != nil {
		return nil, r.storageErr("place order: insert order", err, userID, productID)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, r.storageErr("place order: last insert id", err, userID, productID)
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE products SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?
	`, quantity, productID, quantity)
	if err != nil {
		return nil, r.storageErr("place order: decrement stock", err, userID, productID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, r.storageErr("place order: rows affected", err, userID, productID)
	}
	if affected != 1 {
		// The write lock is held for the whole transaction, so stock cannot
		// move between the read above and this update.
		return nil, &apperr.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: stock,
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, r.storageErr("place order: commit", err, userID, productID)
	}

	return &entity.Order{
		Base:       entity.Base{ID: orderID},
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: total,
	}, nil
}

func (r *orderRepository) Cancel(ctx context.Context, orderID int64, ownerID *int64) (*entity.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin cancel order transaction", zap.Error(err))
		return nil, apperr.Storage("begin cancel order", err)
	}
	defer tx.Rollback()

	query := `SELECT id, user_id, product_id, quantity, total_price FROM orders WHERE id = ?`
	args := []any{orderID}
	if ownerID != nil {
		query += ` AND user_id = ?`
		args = append(args, *ownerID)
	}

	var order entity.Order
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order", orderID)
	}
	if err != nil {
		return nil, r.cancelStorageErr("cancel order: find order", err, orderID)
	}

	// Restore exactly what the order took, whatever the current stock is.
	result, err := tx.ExecContext(ctx,
		`UPDATE products SET quantity = quantity + ? WHERE id = ?`,
		order.Quantity, order.ProductID)
	if err != nil {
		return nil, r.cancelStorageErr("cancel order: restore stock", err, orderID)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, r.cancelStorageErr("cancel order: rows affected", err, orderID)
	}
	if affected == 0 {
		r.log.Warn("Cancelled order references a deleted product",
			zap.Int64("order_id", orderID),
			zap.Int64("product_id", order.ProductID),
		)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID); err != nil {
		return nil, r.cancelStorageErr("cancel order: delete order", err, orderID)
	}

	if err := tx.Commit(); err != nil {
		return nil, r.cancelStorageErr("cancel order: commit", err, orderID)
	}

	return &order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, user_id, product_id, quantity, total_price
		FROM orders
		WHERE id = ?
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.Int64("order_id", id),
		)
		return nil, apperr.Storage("find order by id", err)
	}

	return &order, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.OrderView, error) {
	query := orderViewQuery + ` WHERE o.user_id = ? ORDER BY o.id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find orders by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, apperr.Storage("find orders by user id", err)
	}

	return r.scanViews(rows)
}

func (r *orderRepository) FindAll(ctx context.Context) ([]*entity.OrderView, error) {
	query := orderViewQuery + ` ORDER BY o.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all orders", zap.Error(err))
		return nil, apperr.Storage("find all orders", err)
	}

	return r.scanViews(rows)
}

func (r *orderRepository) scanViews(rows *sql.Rows) ([]*entity.OrderView, error) {
	defer rows.Close()

	views := []*entity.OrderView{}
	for rows.Next() {
		var view entity.OrderView
		err := rows.Scan(
			&view.ID,
			&view.UserID,
			&view.ProductID,
			&view.Quantity,
			&view.TotalPrice,
			&view.Username,
			&view.ProductName,
		)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, apperr.Storage("scan order row", err)
		}
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, apperr.Storage("iterate order rows", err)
	}

	return views, nil
}

func (r *orderRepository) storageErr(op string, err error, userID, productID int64) error {
	r.log.Error("Failed to place order",
		zap.Error(err),
		zap.String("op", op),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
	)
	return apperr.Storage(op, err)
}

func (r *orderRepository) cancelStorageErr(op string, err error, orderID int64) error {
	r.log.Error("Failed to cancel order",
		zap.Error(err),
		zap.String("op", op),
		zap.Int64("order_id", orderID),
	)
	return apperr.Storage(op, err)
}

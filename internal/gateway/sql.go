package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopng/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// SQL is a Gateway backed by Postgres for deployments where the demo
// collections live in a real database.
type SQL struct {
	db *sqlx.DB
}

// NewSQL connects to the database and verifies the connection.
func NewSQL(databaseURL string) (*SQL, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQL{db: db}, nil
}

// Close closes the database connection.
func (g *SQL) Close() error {
	return g.db.Close()
}

func (g *SQL) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := g.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

func (g *SQL) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := g.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC"); err != nil {
		return nil, err
	}

	for i := range orders {
		var items []models.OrderItem
		err := g.db.SelectContext(ctx, &items,
			"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (g *SQL) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (order_number, email, first_name, last_name, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	if err := tx.GetContext(ctx, order, query,
		order.OrderNumber, order.Email, order.FirstName, order.LastName,
		order.Total, order.Status); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.GetContext(ctx, &item.ID, `
			INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return tx.Commit()
}

func (g *SQL) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	var order models.Order
	err := g.db.GetContext(ctx, &order,
		"UPDATE orders SET status = $1 WHERE id = $2 RETURNING *", status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *SQL) GetAllUsers(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	err := g.db.SelectContext(ctx, &users,
		"SELECT * FROM admin_users ORDER BY registered_at DESC")
	return users, err
}

func (g *SQL) ToggleUserStatus(ctx context.Context, id int64) (*models.AdminUser, error) {
	var user models.AdminUser
	err := g.db.GetContext(ctx, &user, `
		UPDATE admin_users
		SET status = CASE WHEN status = 'active' THEN 'suspended' ELSE 'active' END
		WHERE id = $1
		RETURNING *`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

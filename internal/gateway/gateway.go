package gateway

import (
	"context"

	"shopng/internal/models"
)

// Gateway is the transport collaborator behind the directories. Every
// call is a single request with exactly one settlement: a value or an
// error. The directories treat it as opaque; workflow rules are enforced
// on their side, not here.
type Gateway interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	GetAllUsers(ctx context.Context) ([]models.AdminUser, error)
	ToggleUserStatus(ctx context.Context, id int64) (*models.AdminUser, error)
}

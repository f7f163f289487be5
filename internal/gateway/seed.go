package gateway

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shopng/internal/models"

	"github.com/shopspring/decimal"
)

// Seeded is an in-memory Gateway preloaded with demo data. It stands in
// for the real backend during local runs and tests, the same way the
// storefront originally shipped with mock services.
type Seeded struct {
	mu          sync.Mutex
	products    []models.Product
	orders      []models.Order
	users       []models.AdminUser
	nextOrderID int64
}

// NewSeeded creates a gateway holding the demo collections. The product
// collection is supplied by the caller so it stays consistent with the
// catalog seed.
func NewSeeded(products []models.Product) *Seeded {
	g := &Seeded{products: products}
	g.orders = seedOrders(products)
	g.users = seedUsers()
	g.nextOrderID = int64(len(g.orders)) + 1
	return g
}

func (g *Seeded) GetProducts(_ context.Context) ([]models.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.Product, len(g.products))
	copy(out, g.products)
	return out, nil
}

func (g *Seeded) GetAllOrders(_ context.Context) ([]models.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.Order, len(g.orders))
	for i, o := range g.orders {
		out[i] = copyOrder(o)
	}
	return out, nil
}

func (g *Seeded) CreateOrder(_ context.Context, order *models.Order) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	order.ID = g.nextOrderID
	g.nextOrderID++
	for i := range order.Items {
		order.Items[i].ID = int64(i) + 1
		order.Items[i].OrderID = order.ID
	}
	g.orders = append(g.orders, copyOrder(*order))
	return nil
}

func (g *Seeded) UpdateOrderStatus(_ context.Context, id int64, status string) (*models.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.orders {
		if g.orders[i].ID == id {
			g.orders[i].Status = status
			updated := copyOrder(g.orders[i])
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
}

func (g *Seeded) GetAllUsers(_ context.Context) ([]models.AdminUser, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]models.AdminUser, len(g.users))
	copy(out, g.users)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

func (g *Seeded) ToggleUserStatus(_ context.Context, id int64) (*models.AdminUser, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.users {
		if g.users[i].ID == id {
			if g.users[i].Status == models.UserStatusActive {
				g.users[i].Status = models.UserStatusSuspended
			} else {
				g.users[i].Status = models.UserStatusActive
			}
			updated := g.users[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func seedUsers() []models.AdminUser {
	return []models.AdminUser{
		{
			ID: 999, Email: "admin@shopng.com", FirstName: "Admin", LastName: "User",
			Role: models.RoleAdmin, Status: models.UserStatusActive,
			RegisteredAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			OrderCount:   0, TotalSpent: decimal.Zero,
		},
		{
			ID: 998, Email: "user@shopng.com", FirstName: "Demo", LastName: "User",
			Role: models.RoleUser, Status: models.UserStatusActive,
			RegisteredAt: time.Date(2025, 9, 15, 12, 30, 0, 0, time.UTC),
			OrderCount:   2, TotalSpent: decimal.RequireFromString("334.93"),
		},
		{
			ID: 100, Email: "jane.smith@example.com", FirstName: "Jane", LastName: "Smith",
			Role: models.RoleUser, Status: models.UserStatusActive,
			RegisteredAt: time.Date(2025, 11, 2, 9, 15, 0, 0, time.UTC),
			OrderCount:   1, TotalSpent: decimal.RequireFromString("221.48"),
		},
		{
			ID: 101, Email: "mark.johnson@example.com", FirstName: "Mark", LastName: "Johnson",
			Role: models.RoleUser, Status: models.UserStatusActive,
			RegisteredAt: time.Date(2025, 12, 10, 17, 45, 0, 0, time.UTC),
			OrderCount:   1, TotalSpent: decimal.RequireFromString("134.86"),
		},
		{
			ID: 102, Email: "sarah.williams@example.com", FirstName: "Sarah", LastName: "Williams",
			Role: models.RoleUser, Status: models.UserStatusActive,
			RegisteredAt: time.Date(2026, 1, 5, 14, 20, 0, 0, time.UTC),
			OrderCount:   1, TotalSpent: decimal.RequireFromString("242.97"),
		},
	}
}

type seedLine struct {
	productID int64
	quantity  int
}

func seedOrders(products []models.Product) []models.Order {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	build := func(id int64, number, email, first, last, status string, created time.Time, lines []seedLine) models.Order {
		order := models.Order{
			ID: id, OrderNumber: number,
			Email: email, FirstName: first, LastName: last,
			Status: status, CreatedAt: created,
			Total: decimal.Zero,
		}
		for i, line := range lines {
			p := byID[line.productID]
			item := models.OrderItem{
				ID: int64(i) + 1, OrderID: id, ProductID: p.ID,
				Name: p.Name, Quantity: line.quantity, UnitPrice: p.Price,
			}
			order.Items = append(order.Items, item)
			order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.quantity))))
		}
		return order
	}

	return []models.Order{
		build(1, "ORD-10001", "user@shopng.com", "Demo", "User",
			models.OrderStatusDelivered, time.Date(2026, 1, 12, 10, 5, 0, 0, time.UTC),
			[]seedLine{{1, 1}, {11, 1}, {12, 2}}),
		build(2, "ORD-10002", "jane.smith@example.com", "Jane", "Smith",
			models.OrderStatusShipped, time.Date(2026, 2, 3, 16, 40, 0, 0, time.UTC),
			[]seedLine{{2, 1}, {10, 1}}),
		build(3, "ORD-10003", "mark.johnson@example.com", "Mark", "Johnson",
			models.OrderStatusProcessing, time.Date(2026, 2, 18, 9, 25, 0, 0, time.UTC),
			[]seedLine{{7, 1}, {8, 1}, {9, 1}}),
		build(4, "ORD-10004", "sarah.williams@example.com", "Sarah", "Williams",
			models.OrderStatusPending, time.Date(2026, 3, 1, 13, 10, 0, 0, time.UTC),
			[]seedLine{{5, 1}, {4, 1}}),
		build(5, "ORD-10005", "user@shopng.com", "Demo", "User",
			models.OrderStatusCancelled, time.Date(2026, 3, 7, 19, 55, 0, 0, time.UTC),
			[]seedLine{{3, 3}}),
		// Guest checkout: no buyer identity fields.
		build(6, "ORD-10006", "", "", "",
			models.OrderStatusPending, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
			[]seedLine{{6, 1}}),
	}
}

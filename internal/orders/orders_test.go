package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopng/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	orders     []models.Order
	loadErr    error
	updateErr  error
	createErr  error
	lastID     int64
	lastStatus string
	created    []models.Order
}

func (g *stubGateway) GetProducts(_ context.Context) ([]models.Product, error) {
	return nil, nil
}

func (g *stubGateway) GetAllOrders(_ context.Context) ([]models.Order, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	out := make([]models.Order, len(g.orders))
	copy(out, g.orders)
	return out, nil
}

func (g *stubGateway) CreateOrder(_ context.Context, order *models.Order) error {
	if g.createErr != nil {
		return g.createErr
	}
	order.ID = int64(len(g.created)) + 100
	g.created = append(g.created, *order)
	return nil
}

func (g *stubGateway) UpdateOrderStatus(_ context.Context, id int64, status string) (*models.Order, error) {
	g.lastID = id
	g.lastStatus = status
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return &models.Order{ID: id, Status: status}, nil
}

func (g *stubGateway) GetAllUsers(_ context.Context) ([]models.AdminUser, error) {
	return nil, nil
}

func (g *stubGateway) ToggleUserStatus(_ context.Context, _ int64) (*models.AdminUser, error) {
	return nil, models.ErrNotFound
}

type recordingPublisher struct {
	placed  []*models.OrderPlacedEvent
	changed []*models.OrderStatusChangedEvent
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, e *models.OrderPlacedEvent) error {
	p.placed = append(p.placed, e)
	return nil
}

func (p *recordingPublisher) PublishOrderStatusChanged(_ context.Context, e *models.OrderStatusChangedEvent) error {
	p.changed = append(p.changed, e)
	return nil
}

func order(id int64, number, email, first, last, status, total string) models.Order {
	return models.Order{
		ID:          id,
		OrderNumber: number,
		Email:       email,
		FirstName:   first,
		LastName:    last,
		Status:      status,
		Total:       decimal.RequireFromString(total),
		CreatedAt:   time.Now(),
	}
}

func loadedDirectory(t *testing.T, gw *stubGateway) *Directory {
	t.Helper()
	d := NewDirectory(gw, nil)
	require.NoError(t, d.Load(context.Background()))
	return d
}

func TestNextStatusesMatchesWorkflowTable(t *testing.T) {
	assert.Equal(t, []string{models.OrderStatusProcessing, models.OrderStatusCancelled},
		NextStatuses(models.OrderStatusPending))
	assert.Equal(t, []string{models.OrderStatusShipped, models.OrderStatusCancelled},
		NextStatuses(models.OrderStatusProcessing))
	assert.Equal(t, []string{models.OrderStatusDelivered},
		NextStatuses(models.OrderStatusShipped))
	assert.Empty(t, NextStatuses(models.OrderStatusDelivered))
	assert.Empty(t, NextStatuses(models.OrderStatusCancelled))
	assert.Empty(t, NextStatuses("bogus"))
}

func TestRevenueExcludesCancelledOrders(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "100"),
		order(2, "ORD-2", "", "", "", models.OrderStatusCancelled, "50"),
	}}
	d := loadedDirectory(t, gw)

	stats := d.Stats()
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, "100", stats.TotalRevenue.String())
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 0, stats.ShippedCount)
}

func TestUpdateStatusFollowsWorkflow(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "a@b.c", "Ann", "Bee", models.OrderStatusPending, "10"),
	}}
	pub := &recordingPublisher{}
	d := NewDirectory(gw, pub)
	require.NoError(t, d.Load(context.Background()))

	updated, err := d.UpdateStatus(context.Background(), 1, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.Equal(t, "ORD-1", updated.OrderNumber)
	assert.Equal(t, "a@b.c", updated.Email)
	assert.Equal(t, int64(1), gw.lastID)

	require.Len(t, pub.changed, 1)
	assert.Equal(t, models.OrderStatusPending, pub.changed[0].FromStatus)
	assert.Equal(t, models.OrderStatusProcessing, pub.changed[0].ToStatus)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusDelivered, "10"),
		order(2, "ORD-2", "", "", "", models.OrderStatusPending, "10"),
	}}
	d := loadedDirectory(t, gw)

	_, err := d.UpdateStatus(context.Background(), 1, models.OrderStatusPending)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))

	_, err = d.UpdateStatus(context.Background(), 2, models.OrderStatusShipped)
	assert.True(t, errors.Is(err, models.ErrInvalidTransition))

	// Nothing reached the gateway and nothing changed locally.
	assert.Equal(t, int64(0), gw.lastID)
	got, err := d.Order(2)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	d := loadedDirectory(t, &stubGateway{})

	_, err := d.UpdateStatus(context.Background(), 42, models.OrderStatusProcessing)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestStatsRecomputedAfterStatusChange(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "100"),
		order(2, "ORD-2", "", "", "", models.OrderStatusPending, "40"),
	}}
	d := loadedDirectory(t, gw)
	assert.Equal(t, 2, d.Stats().PendingCount)

	_, err := d.UpdateStatus(context.Background(), 1, models.OrderStatusCancelled)
	require.NoError(t, err)

	stats := d.Stats()
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, "40", stats.TotalRevenue.String())
}

func TestFilteredStatusThenTerm(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-10001", "user@shopng.com", "Demo", "User", models.OrderStatusShipped, "10"),
		order(2, "ORD-10002", "jane.smith@example.com", "Jane", "Smith", models.OrderStatusShipped, "10"),
		order(3, "ORD-10003", "mark@example.com", "Mark", "Johnson", models.OrderStatusPending, "10"),
	}}
	d := loadedDirectory(t, gw)

	shipped := d.Filtered(models.OrderStatusShipped, "")
	require.Len(t, shipped, 2)
	assert.Equal(t, int64(1), shipped[0].ID)
	assert.Equal(t, int64(2), shipped[1].ID)

	smith := d.Filtered(models.OrderStatusShipped, "SMITH")
	require.Len(t, smith, 1)
	assert.Equal(t, int64(2), smith[0].ID)

	// Status filter applies before the term: Mark is pending, so the
	// term cannot resurface him under shipped.
	assert.Empty(t, d.Filtered(models.OrderStatusShipped, "mark"))

	byNumber := d.Filtered("all", "ord-10003")
	require.Len(t, byNumber, 1)
	assert.Equal(t, int64(3), byNumber[0].ID)
}

func TestFilteredBlankTermDisablesTextFilter(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "10"),
		order(2, "ORD-2", "", "", "", models.OrderStatusShipped, "10"),
	}}
	d := loadedDirectory(t, gw)

	assert.Len(t, d.Filtered("all", ""), 2)
	assert.Len(t, d.Filtered("all", "   "), 2)
}

func TestFilteredSkipsAbsentIdentityFields(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "10"),
		order(2, "ORD-2", "jane@example.com", "Jane", "Smith", models.OrderStatusPending, "10"),
	}}
	d := loadedDirectory(t, gw)

	jane := d.Filtered("all", "jane")
	require.Len(t, jane, 1)
	assert.Equal(t, int64(2), jane[0].ID)
}

func TestLoadFailureKeepsLastKnownCollection(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "10"),
	}}
	d := loadedDirectory(t, gw)
	require.Len(t, d.Orders(), 1)

	gw.loadErr = errors.New("gateway down")
	err := d.Load(context.Background())
	assert.Error(t, err)

	assert.Len(t, d.Orders(), 1)
	assert.Equal(t, "Failed to load orders.", d.LastError())
	assert.False(t, d.Loading())

	// A later successful load clears the message.
	gw.loadErr = nil
	require.NoError(t, d.Load(context.Background()))
	assert.Empty(t, d.LastError())
}

func TestPlaceBuildsPendingOrderFromCart(t *testing.T) {
	gw := &stubGateway{}
	pub := &recordingPublisher{}
	d := NewDirectory(gw, pub)
	require.NoError(t, d.Load(context.Background()))

	items := []models.CartItem{
		{Product: models.Product{ID: 1, Name: "Headphones", Price: decimal.RequireFromString("79.99")}, Quantity: 2},
		{Product: models.Product{ID: 3, Name: "Speaker", Price: decimal.RequireFromString("49.99")}, Quantity: 1},
	}
	buyer := &models.User{ID: 998, Email: "user@shopng.com", FirstName: "Demo", LastName: "User"}

	placed, err := d.Place(context.Background(), items, buyer)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, placed.Status)
	assert.Equal(t, "209.97", placed.Total.StringFixed(2))
	assert.Equal(t, "user@shopng.com", placed.Email)
	assert.Len(t, placed.Items, 2)
	assert.Contains(t, placed.OrderNumber, "ORD-")

	assert.Len(t, d.Orders(), 1)
	assert.Equal(t, 1, d.Stats().PendingCount)
	require.Len(t, pub.placed, 1)
	assert.Equal(t, placed.OrderNumber, pub.placed[0].OrderNumber)
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	d := NewDirectory(&stubGateway{}, nil)

	_, err := d.Place(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestOrdersReturnsCopies(t *testing.T) {
	gw := &stubGateway{orders: []models.Order{
		order(1, "ORD-1", "", "", "", models.OrderStatusPending, "10"),
	}}
	d := loadedDirectory(t, gw)

	snapshot := d.Orders()
	snapshot[0].Status = models.OrderStatusDelivered

	got, err := d.Order(1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

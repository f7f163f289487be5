package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"shopng/internal/gateway"
	"shopng/internal/models"
	"shopng/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// workflow is the authoritative transition table. Terminal statuses map
// to an empty set.
var workflow = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

// NextStatuses returns the allowed successor statuses for current. The
// result is a fresh slice; unknown statuses yield an empty set.
func NextStatuses(current string) []string {
	next, ok := workflow[current]
	if !ok {
		return []string{}
	}
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the from/to pair is in the workflow table.
func CanTransition(from, to string) bool {
	for _, allowed := range workflow[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Stats are the dashboard aggregates over the order collection. Revenue
// excludes cancelled orders.
type Stats struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	PendingCount int             `json:"pending_count"`
	ShippedCount int             `json:"shipped_count"`
}

type eventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// Directory holds the order collection and drives the status workflow.
// It is the only mutator of its collection; reads hand out copies, and
// stats are recomputed after every reload and accepted status change.
type Directory struct {
	gw        gateway.Gateway
	publisher eventPublisher
	logger    *zap.Logger

	mu      sync.RWMutex
	orders  []models.Order
	stats   Stats
	loading bool
	loadErr string
}

// NewDirectory creates an empty directory. The publisher may be nil.
func NewDirectory(gw gateway.Gateway, publisher eventPublisher) *Directory {
	return &Directory{
		gw:        gw,
		publisher: publisher,
		logger:    util.GetLogger(),
		stats:     Stats{TotalRevenue: decimal.Zero},
	}
}

// Load replaces the collection with the gateway's current one. On
// failure the previous collection is kept, the error message is retained
// for the panel, and the loading flag is cleared.
func (d *Directory) Load(ctx context.Context) error {
	ctx, span := util.StartSpan(ctx, "orders.Directory.Load")
	defer span.End()

	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	loaded, err := d.gw.GetAllOrders(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false

	if err != nil {
		d.loadErr = "Failed to load orders."
		util.OrderLoadFailuresTotal.Inc()
		d.logger.Error("Order load failed", zap.Error(err))
		return fmt.Errorf("load orders: %w", err)
	}

	d.orders = loaded
	d.loadErr = ""
	d.recomputeStatsLocked()
	util.OrdersLoadedTotal.Inc()
	d.logger.Info("Orders loaded", zap.Int("count", len(loaded)))
	return nil
}

// UpdateStatus moves the order with the given id to newStatus. The
// transition must be present in the workflow table; anything else is
// rejected before any state is touched. Only the status field of the
// single matching record changes.
func (d *Directory) UpdateStatus(ctx context.Context, id int64, newStatus string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "orders.Directory.UpdateStatus")
	defer span.End()

	d.mu.RLock()
	current, ok := d.findLocked(id)
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}

	if !CanTransition(current.Status, newStatus) {
		util.OrderStatusRejectionsTotal.Inc()
		return nil, fmt.Errorf("order %d: %s -> %s: %w",
			id, current.Status, newStatus, models.ErrInvalidTransition)
	}

	if _, err := d.gw.UpdateOrderStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	d.mu.Lock()
	var updated models.Order
	for i := range d.orders {
		if d.orders[i].ID == id {
			d.orders[i].Status = newStatus
			updated = copyOrder(d.orders[i])
			break
		}
	}
	d.recomputeStatsLocked()
	d.mu.Unlock()

	util.OrderStatusChangesTotal.WithLabelValues(current.Status, newStatus).Inc()
	d.logger.Info("Order status changed",
		zap.Int64("order_id", id),
		zap.String("from", current.Status),
		zap.String("to", newStatus))

	d.publishStatusChanged(ctx, &updated, current.Status)
	return &updated, nil
}

// Place creates a pending order from the given cart items. Buyer identity
// is optional; a nil buyer produces a guest order.
func (d *Directory) Place(ctx context.Context, items []models.CartItem, buyer *models.User) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "orders.Directory.Place")
	defer span.End()

	if len(items) == 0 {
		return nil, fmt.Errorf("cannot place an order with an empty cart")
	}

	order := &models.Order{
		OrderNumber: newOrderNumber(),
		Status:      models.OrderStatusPending,
		Total:       decimal.Zero,
		CreatedAt:   time.Now().UTC(),
	}
	if buyer != nil {
		order.Email = buyer.Email
		order.FirstName = buyer.FirstName
		order.LastName = buyer.LastName
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
		order.Total = order.Total.Add(
			item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if err := d.gw.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	d.mu.Lock()
	d.orders = append(d.orders, copyOrder(*order))
	d.recomputeStatsLocked()
	d.mu.Unlock()

	util.OrdersPlacedTotal.Inc()
	d.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber))

	if d.publisher != nil {
		event := &models.OrderPlacedEvent{
			BaseEvent:   newBaseEvent(models.EventTypeOrderPlaced),
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Email:       order.Email,
			Total:       order.Total,
			ItemCount:   len(order.Items),
		}
		if err := d.publisher.PublishOrderPlaced(ctx, event); err != nil {
			d.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
		}
	}

	result := copyOrder(*order)
	return &result, nil
}

// Orders returns a copy of the full collection.
func (d *Directory) Orders() []models.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Order, len(d.orders))
	for i, o := range d.orders {
		out[i] = copyOrder(o)
	}
	return out
}

// Order returns the order with the given id.
func (d *Directory) Order(id int64) (*models.Order, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if order, ok := d.findLocked(id); ok {
		return &order, nil
	}
	return nil, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
}

// Filtered applies the status filter first, then a case-insensitive
// substring match against order number, email, first name, and last name.
// A blank term disables text filtering. The evaluation always runs over
// the latest collection and never disturbs it; relative order is kept.
func (d *Directory) Filtered(statusFilter, term string) []models.Order {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]models.Order, 0, len(d.orders))
	for _, o := range d.orders {
		if statusFilter != "all" && o.Status != statusFilter {
			continue
		}
		result = append(result, copyOrder(o))
	}

	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return result
	}

	lower := strings.ToLower(trimmed)
	matched := make([]models.Order, 0, len(result))
	for _, o := range result {
		if strings.Contains(strings.ToLower(o.OrderNumber), lower) ||
			(o.Email != "" && strings.Contains(strings.ToLower(o.Email), lower)) ||
			(o.FirstName != "" && strings.Contains(strings.ToLower(o.FirstName), lower)) ||
			(o.LastName != "" && strings.Contains(strings.ToLower(o.LastName), lower)) {
			matched = append(matched, o)
		}
	}
	return matched
}

// Stats returns the aggregates computed at the last reload or status change.
func (d *Directory) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Loading reports whether a load is in flight.
func (d *Directory) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// LastError returns the user-visible message of the last failed load, or "".
func (d *Directory) LastError() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loadErr
}

func (d *Directory) findLocked(id int64) (models.Order, bool) {
	for _, o := range d.orders {
		if o.ID == id {
			return copyOrder(o), true
		}
	}
	return models.Order{}, false
}

func (d *Directory) recomputeStatsLocked() {
	stats := Stats{TotalOrders: len(d.orders), TotalRevenue: decimal.Zero}
	for _, o := range d.orders {
		if o.Status != models.OrderStatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		}
		switch o.Status {
		case models.OrderStatusPending:
			stats.PendingCount++
		case models.OrderStatusShipped:
			stats.ShippedCount++
		}
	}
	d.stats = stats
}

func (d *Directory) publishStatusChanged(ctx context.Context, order *models.Order, from string) {
	if d.publisher == nil {
		return
	}
	event := &models.OrderStatusChangedEvent{
		BaseEvent:   newBaseEvent(models.EventTypeOrderStatusChanged),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		FromStatus:  from,
		ToStatus:    order.Status,
	}
	if err := d.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		d.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

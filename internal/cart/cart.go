package cart

import (
	"sync"

	"shopng/internal/models"
	"shopng/internal/util"

	"github.com/shopspring/decimal"
)

// Cart is the shopping cart aggregate. It owns its item sequence
// exclusively; every mutation swaps in a freshly built sequence and bumps
// the version, so readers always observe a consistent aggregate. Item
// count and total price are derived from the sequence on read and can
// never go stale.
type Cart struct {
	mu      sync.RWMutex
	items   []models.CartItem
	version uint64
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem puts quantity units of product into the cart. If the product is
// already present its quantity grows; otherwise a new item is appended.
// Callers must pass a positive quantity; the cart does not validate it.
func (c *Cart) AddItem(product models.Product, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]models.CartItem, 0, len(c.items)+1)
	merged := false
	for _, item := range c.items {
		if item.Product.ID == product.ID {
			item.Quantity += quantity
			merged = true
		}
		next = append(next, item)
	}
	if !merged {
		next = append(next, models.CartItem{Product: product, Quantity: quantity})
	}

	c.replace(next)
	util.CartMutationsTotal.WithLabelValues("add").Inc()
}

// RemoveItem deletes the item for the given product id. Removing an
// absent product is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(productID)
	util.CartMutationsTotal.WithLabelValues("remove").Inc()
}

// UpdateQuantity sets the quantity for the given product id. A quantity
// of zero or less removes the item, so the cart never stores a
// non-positive quantity.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		util.CartMutationsTotal.WithLabelValues("update").Inc()
		return
	}

	next := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Product.ID == productID {
			item.Quantity = quantity
		}
		next = append(next, item)
	}

	c.replace(next)
	util.CartMutationsTotal.WithLabelValues("update").Inc()
}

// Clear empties the cart. Used after checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.replace(nil)
	util.CartMutationsTotal.WithLabelValues("clear").Inc()
}

// Items returns a copy of the current item sequence.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the sum of quantities across all items.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// TotalPrice returns the sum of unit price times quantity across all items.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Version returns a counter that changes with every mutation, letting
// consumers detect a new aggregate without comparing item sequences.
func (c *Cart) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Cart) removeLocked(productID int64) {
	next := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Product.ID != productID {
			next = append(next, item)
		}
	}
	c.replace(next)
}

func (c *Cart) replace(items []models.CartItem) {
	c.items = items
	c.version++
}

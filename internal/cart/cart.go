// Package cart models the client-local shopping cart: an ephemeral
// accumulator of candidate order lines, independent of the order pipeline
// until checkout. State changes go through explicit transitions (add,
// remove, set-quantity, clear, load) and every committed transition is
// persisted through the configured store.
package cart

import (
	"sync"

	"hinglaj-store/internal/model"
)

// Line is one candidate order line. Price is the variant price at the time
// the line was added; the server recomputes the authoritative total at
// checkout regardless.
type Line struct {
	ItemID   int     `json:"itemId"`
	ItemName string  `json:"itemName"`
	Size     string  `json:"size"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Store persists cart state across sessions.
type Store interface {
	Save(lines []Line) error
	Load() ([]Line, error)
}

// Cart is a mutable cart with reducer-style transitions. Safe for concurrent
// use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	store Store
}

// New creates an empty cart. store may be nil for a purely in-memory cart.
func New(store Store) *Cart {
	return &Cart{store: store}
}

// Load replaces the cart state with what the store holds. Missing state
// leaves the cart empty.
func (c *Cart) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	lines, err := c.store.Load()
	if err != nil {
		return err
	}
	c.lines = lines
	return nil
}

// persist saves the current state. Called with the lock held, after every
// committed transition.
func (c *Cart) persist() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(c.lines)
}

// Add merges a line into the cart. An existing line for the same item and
// size has its quantity increased; otherwise the line is appended.
func (c *Cart) Add(line Line) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == line.ItemID && c.lines[i].Size == line.Size {
			c.lines[i].Quantity += line.Quantity
			return c.persist()
		}
	}
	c.lines = append(c.lines, line)
	return c.persist()
}

// Remove drops the line for the given item and size, if present.
func (c *Cart) Remove(itemID int, size string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == itemID && c.lines[i].Size == size {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	return c.persist()
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line.
func (c *Cart) SetQuantity(itemID int, size string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(itemID, size)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == itemID && c.lines[i].Size == size {
			c.lines[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	return c.persist()
}

// Lines returns a copy of the current cart lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the client-side total over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ItemCount returns the summed quantity over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Contains reports whether the cart holds a line for the item and size.
func (c *Cart) Contains(itemID int, size string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.lines {
		if l.ItemID == itemID && l.Size == size {
			return true
		}
	}
	return false
}

// CheckoutRequest converts the cart into an order submission. The declared
// total is the cart's client-side sum; the server recomputes and persists
// its own. The caller clears the cart after the order is accepted.
func (c *Cart) CheckoutRequest(details model.CustomerDetails, paymentMethod string) *model.OrderRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := &model.OrderRequest{
		CustomerDetails: details,
		PaymentMethod:   paymentMethod,
	}
	for _, l := range c.lines {
		req.Items = append(req.Items, model.OrderLineRequest{
			ItemID:   l.ItemID,
			Size:     l.Size,
			Quantity: l.Quantity,
		})
		req.Total += l.Price * float64(l.Quantity)
	}
	return req
}

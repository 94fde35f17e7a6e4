// Package cart holds a customer's in-memory shopping cart, partitioned by restaurant.
//
// A line is identified by (item id, restaurant id, special request, selected options), so the
// same dish with different customisations is kept and priced as separate lines. Totals are always
// recomputed from the stored lines.
package cart

import (
	"html"
	"slices"
	"strings"
	"sync"

	appErrors "github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// Observer is called after every mutation with the restaurant whose lines changed.
type Observer func(restaurantID string)

// Customization narrows RemoveItem to a single line. A nil *Customization matches every line
// of the item in that restaurant.
type Customization struct {
	SpecialRequest  string
	SelectedOptions []models.Option
}

type Cart struct {
	mu        sync.RWMutex
	lines     []models.CartLineItem
	observers []Observer
}

var requestPolicy = bluemonday.StrictPolicy()

// New returns a cart hydrated with lines, typically loaded from a snapshot. Lines that break the
// cart invariants are merged or dropped the same way AddItem would treat them.
func New(lines ...models.CartLineItem) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if validateLine(line) != nil {
			continue
		}
		c.addLocked(line)
	}

	return c
}

// NormalizeRequest strips markup and surrounding whitespace from a special request so that
// visually identical requests key to the same line.
func NormalizeRequest(s string) string {
	return strings.TrimSpace(html.UnescapeString(requestPolicy.Sanitize(s)))
}

func (c *Cart) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observers = append(c.observers, o)
}

func (c *Cart) AddItem(line models.CartLineItem) error {
	if err := validateLine(line); err != nil {
		return err
	}

	c.mu.Lock()
	c.addLocked(line)
	c.mu.Unlock()

	c.notify(line.RestaurantID)

	return nil
}

func (c *Cart) addLocked(line models.CartLineItem) {
	line.SpecialRequest = NormalizeRequest(line.SpecialRequest)
	line.SelectedOptions = slices.Clone(line.SelectedOptions)

	if i := c.indexLocked(line.Item.ID, line.RestaurantID, line.SpecialRequest, line.SelectedOptions); i >= 0 {
		c.lines[i].Quantity += line.Quantity
		return
	}

	c.lines = append(c.lines, line)
}

// UpdateQuantity sets the absolute quantity of an existing line; a quantity of zero or less
// removes it. It reports whether a line matched. A miss never creates a line.
func (c *Cart) UpdateQuantity(itemID, restaurantID string, quantity int, specialRequest string, options []models.Option) bool {
	c.mu.Lock()

	i := c.indexLocked(itemID, restaurantID, NormalizeRequest(specialRequest), options)
	if i < 0 {
		c.mu.Unlock()
		return false
	}

	if quantity <= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	} else {
		c.lines[i].Quantity = quantity
	}

	c.mu.Unlock()

	c.notify(restaurantID)

	return true
}

// RemoveItem deletes the matching line(s) and reports how many were removed.
func (c *Cart) RemoveItem(itemID, restaurantID string, custom *Customization) int {
	var specialRequest string
	if custom != nil {
		specialRequest = NormalizeRequest(custom.SpecialRequest)
	}

	c.mu.Lock()

	before := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, func(l models.CartLineItem) bool {
		if l.Item.ID != itemID || l.RestaurantID != restaurantID {
			return false
		}
		if custom == nil {
			return true
		}

		return l.SpecialRequest == specialRequest && sameOptions(l.SelectedOptions, custom.SelectedOptions)
	})
	removed := before - len(c.lines)

	c.mu.Unlock()

	if removed > 0 {
		c.notify(restaurantID)
	}

	return removed
}

// ClearRestaurant drops every line of one restaurant, as happens after a checkout handoff.
func (c *Cart) ClearRestaurant(restaurantID string) {
	c.mu.Lock()

	before := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, func(l models.CartLineItem) bool {
		return l.RestaurantID == restaurantID
	})
	changed := before != len(c.lines)

	c.mu.Unlock()

	if changed {
		c.notify(restaurantID)
	}
}

func (c *Cart) Clear() {
	restaurants := c.Restaurants()

	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	for _, id := range restaurants {
		c.notify(id)
	}
}

func (c *Cart) ItemsByRestaurant(restaurantID string) []models.CartLineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CartLineItem, 0)
	for _, l := range c.lines {
		if l.RestaurantID == restaurantID {
			l.SelectedOptions = slices.Clone(l.SelectedOptions)
			items = append(items, l)
		}
	}

	return items
}

func (c *Cart) TotalItemsByRestaurant(restaurantID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, l := range c.lines {
		if l.RestaurantID == restaurantID {
			total += l.Quantity
		}
	}

	return total
}

func (c *Cart) TotalPriceByRestaurant(restaurantID string) decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, l := range c.lines {
		if l.RestaurantID == restaurantID {
			total = total.Add(l.LineTotal())
		}
	}

	return total
}

// Restaurants lists restaurant ids in the order their first line was added.
func (c *Cart) Restaurants() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []string
	for _, l := range c.lines {
		if !slices.Contains(ids, l.RestaurantID) {
			ids = append(ids, l.RestaurantID)
		}
	}

	return ids
}

// Lines returns a copy of every line, used for snapshots.
func (c *Cart) Lines() []models.CartLineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]models.CartLineItem, len(c.lines))
	for i, l := range c.lines {
		l.SelectedOptions = slices.Clone(l.SelectedOptions)
		lines[i] = l
	}

	return lines
}

func (c *Cart) View(restaurantID string) *models.RestaurantCart {
	return &models.RestaurantCart{
		RestaurantID: restaurantID,
		Items:        c.ItemsByRestaurant(restaurantID),
		TotalItems:   c.TotalItemsByRestaurant(restaurantID),
		TotalPrice:   c.TotalPriceByRestaurant(restaurantID),
	}
}

func (c *Cart) indexLocked(itemID, restaurantID, specialRequest string, options []models.Option) int {
	return slices.IndexFunc(c.lines, func(l models.CartLineItem) bool {
		return l.Item.ID == itemID &&
			l.RestaurantID == restaurantID &&
			l.SpecialRequest == specialRequest &&
			sameOptions(l.SelectedOptions, options)
	})
}

func (c *Cart) notify(restaurantID string) {
	c.mu.RLock()
	observers := slices.Clone(c.observers)
	c.mu.RUnlock()

	for _, o := range observers {
		o(restaurantID)
	}
}

// options are compared in order; [cheese, bacon] and [bacon, cheese] are different lines.
func sameOptions(a, b []models.Option) bool {
	return slices.EqualFunc(a, b, func(x, y models.Option) bool {
		return x.ID == y.ID && x.Name == y.Name && x.Surcharge.Equal(y.Surcharge)
	})
}

func validateLine(line models.CartLineItem) error {
	switch {
	case line.Item.ID == "":
		return appErrors.AddValidationError("item.id", "is required")
	case line.RestaurantID == "":
		return appErrors.AddValidationError("restaurant_id", "is required")
	case line.Quantity < 1:
		return appErrors.AddValidationError("quantity", "must be at least 1")
	case line.Item.UnitPrice.IsNegative():
		return appErrors.AddValidationError("item.unit_price", "must not be negative")
	}

	for _, opt := range line.SelectedOptions {
		if opt.Surcharge.IsNegative() {
			return appErrors.AddValidationError("selected_options.surcharge", "must not be negative")
		}
	}

	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Order status enums
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"

	// Audit trail action enums
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
)

// OrderItem is a line on an order. Price is a snapshot of the product's price
// at the time the item was added; later catalog changes never touch it.
type OrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderUpdate is one append-only audit trail entry, ordered by insertion.
type OrderUpdate struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

type Order struct {
	ID       string        `json:"id"`
	Customer string        `json:"customer"`
	Items    []OrderItem   `json:"items"`
	Total    float64       `json:"total"`
	Status   string        `json:"status"`
	Date     string        `json:"date"`
	Updates  []OrderUpdate `json:"updates"`
}

// Draft carries the editable fields of an order. Committing a draft replaces
// the previous item list and status wholesale, never partially.
type Draft struct {
	Customer string
	Items    []OrderItem
	Status   string
}

// StatusLabel returns the display label for a status value.
func StatusLabel(status string) string {
	if status == StatusPaid {
		return "Paid"
	}
	return "Unpaid"
}

// ComputeTotal sums quantity times price across the items. Pure; 0 for an
// empty list.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// Reconcile turns a draft plus an optional previous order into a saved-ready
// order with a fresh total and audit trail. With no previous order it assigns
// a new identity and a single "created" entry. With one, identity and creation
// date are kept, a "status_changed" entry is appended when the status differs,
// and an "updated" entry is always appended after it; a pure status flip
// therefore records two entries. No order is produced on validation failure.
func Reconcile(previous *Order, draft Draft) (Order, error) {
	if draft.Customer == "" {
		return Order{}, newValidationError("customer name is required")
	}
	if len(draft.Items) == 0 {
		return Order{}, newValidationError("order must have at least one item")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := Order{
		Customer: draft.Customer,
		Items:    cloneItems(draft.Items),
		Total:    ComputeTotal(draft.Items),
		Status:   draft.Status,
	}

	if previous == nil {
		order.ID = uuid.NewString()
		order.Date = now
		order.Updates = []OrderUpdate{{Timestamp: now, Action: ActionCreated, Details: "order created"}}
		return order, nil
	}

	order.ID = previous.ID
	order.Date = previous.Date

	updates := make([]OrderUpdate, len(previous.Updates), len(previous.Updates)+2)
	copy(updates, previous.Updates)
	if previous.Status != draft.Status {
		updates = append(updates, OrderUpdate{
			Timestamp: now,
			Action:    ActionStatusChanged,
			Details:   StatusLabel(previous.Status) + " → " + StatusLabel(draft.Status),
		})
	}
	updates = append(updates, OrderUpdate{Timestamp: now, Action: ActionUpdated, Details: "order updated"})
	order.Updates = updates

	return order, nil
}

func cloneItems(items []OrderItem) []OrderItem {
	return append([]OrderItem(nil), items...)
}

package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-order-desk/src/infrastructure/kvstore"
	"go-order-desk/src/infrastructure/log"
	"go-order-desk/src/services/order/domain"
)

// StatusFilterAll disables status filtering in List.
const StatusFilterAll = "all"

// Filter narrows List results. CustomerSubstring matches case-insensitively
// against the customer name; Status is "all", "paid" or "unpaid".
type Filter struct {
	CustomerSubstring string
	Status            string
}

// OrderRepository owns the canonical ordered order collection. Every mutation
// rewrites the whole collection under one key in the store.
type OrderRepository struct {
	store  kvstore.Store
	logger log.Logger
	key    string
	orders []domain.Order
}

// NewOrderRepository loads the persisted collection from the store. A missing
// or malformed document is treated as an empty collection, not an error.
func NewOrderRepository(ctx context.Context, store kvstore.Store, key string, logger log.Logger) *OrderRepository {
	r := &OrderRepository{store: store, logger: logger, key: key}

	data, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn(ctx, fmt.Sprintf("failed to read stored orders, starting empty: %v", err))
		}
		return r
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		logger.Warn(ctx, fmt.Sprintf("stored orders are malformed, starting empty: %v", err))
		return r
	}

	r.orders = orders
	logger.InfoWithExtra(ctx, "order collection loaded", map[string]any{"Count": len(orders)})
	return r
}

// Save replaces the order with the same ID in place, preserving its position,
// or appends a new one, then persists the whole collection.
func (r *OrderRepository) Save(ctx context.Context, order domain.Order) error {
	replaced := false
	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			r.orders[i] = order
			replaced = true
			break
		}
	}
	if !replaced {
		r.orders = append(r.orders, order)
	}
	return r.persist(ctx)
}

// Delete removes the order with the given ID. Deleting an unknown ID is a
// no-op, not an error.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return r.persist(ctx)
		}
	}
	return nil
}

// Get returns the order with the given ID, or nil if absent.
func (r *OrderRepository) Get(id string) *domain.Order {
	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order
		}
	}
	return nil
}

// List returns the orders matching the filter in insertion order. The
// canonical collection is never mutated.
func (r *OrderRepository) List(filter Filter) []domain.Order {
	needle := strings.ToLower(filter.CustomerSubstring)
	matches := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if !strings.Contains(strings.ToLower(order.Customer), needle) {
			continue
		}
		if filter.Status != "" && filter.Status != StatusFilterAll && order.Status != filter.Status {
			continue
		}
		matches = append(matches, order)
	}
	return matches
}

func (r *OrderRepository) Len() int {
	return len(r.orders)
}

func (r *OrderRepository) persist(ctx context.Context) error {
	data, err := json.Marshal(r.orders)
	if err != nil {
		r.logger.Exception(ctx, "failed to marshal order collection", err)
		return fmt.Errorf("failed to marshal order collection: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		r.logger.Exception(ctx, "failed to persist order collection", err)
		return fmt.Errorf("failed to persist order collection: %w", err)
	}
	return nil
}

package domain

import (
	"fmt"

	"go-order-desk/src/services/catalog"
)

// ItemEditor holds the mutable, disposable draft of an order being created or
// edited. It owns no orders; committing goes through Reconcile and the result
// belongs to the repository. Cancelling an edit is just Revert plus dropping
// the editor's state, persisted data is never touched.
type ItemEditor struct {
	catalog *catalog.Catalog

	customer string
	items    []OrderItem
	status   string

	// snapshot taken at StartFrom time, restored by Revert
	originalCustomer string
	originalItems    []OrderItem
	originalStatus   string
}

func NewItemEditor(cat *catalog.Catalog) *ItemEditor {
	e := &ItemEditor{catalog: cat}
	e.StartFrom(nil)
	return e
}

// StartFrom begins a new editing session. With an order it deep-copies the
// order's editable fields into the draft and keeps a second copy for Revert;
// with nil it starts an empty unpaid draft.
func (e *ItemEditor) StartFrom(order *Order) {
	if order == nil {
		e.originalCustomer = ""
		e.originalItems = nil
		e.originalStatus = StatusUnpaid
	} else {
		e.originalCustomer = order.Customer
		e.originalItems = cloneItems(order.Items)
		e.originalStatus = order.Status
	}
	e.Revert()
}

// Revert discards in-progress edits, restoring the draft captured at
// StartFrom time.
func (e *ItemEditor) Revert() {
	e.customer = e.originalCustomer
	e.items = cloneItems(e.originalItems)
	e.status = e.originalStatus
}

// SearchCatalog matches the query against the full catalog, case-insensitive
// substring on the product name.
func (e *ItemEditor) SearchCatalog(query string) []catalog.Product {
	return e.catalog.Search(query)
}

// AddItem adds one unit of the product to the draft. An existing line for the
// same product name gets its quantity bumped and keeps its originally
// snapshotted price; otherwise a new line is appended at quantity 1.
func (e *ItemEditor) AddItem(product catalog.Product) {
	for i := range e.items {
		if e.items[i].Product == product.Name {
			e.items[i].Quantity++
			return
		}
	}
	e.items = append(e.items, OrderItem{Product: product.Name, Quantity: 1, Price: product.Price})
}

// AddAdHocProduct adds a product that is not in the catalog. The product lives
// only as a snapshotted item on this order; the catalog is never written.
func (e *ItemEditor) AddAdHocProduct(name string, price float64) error {
	if name == "" {
		return newValidationError("product name is required")
	}
	if price <= 0 {
		return newValidationError("product price must be greater than zero")
	}
	e.AddItem(catalog.Product{Name: name, Price: price})
	return nil
}

// SetQuantity stores the given quantity on the indexed item as-is. Callers are
// expected to enforce a minimum of 1; the draft does not clamp.
func (e *ItemEditor) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(e.items) {
		return newValidationError(fmt.Sprintf("item index %d is out of bounds", index))
	}
	e.items[index].Quantity = quantity
	return nil
}

// RemoveItem removes the indexed item, shifting subsequent items down.
func (e *ItemEditor) RemoveItem(index int) error {
	if index < 0 || index >= len(e.items) {
		return newValidationError(fmt.Sprintf("item index %d is out of bounds", index))
	}
	e.items = append(e.items[:index], e.items[index+1:]...)
	return nil
}

func (e *ItemEditor) SetCustomer(name string) {
	e.customer = name
}

func (e *ItemEditor) SetStatus(status string) {
	e.status = status
}

func (e *ItemEditor) Customer() string {
	return e.customer
}

func (e *ItemEditor) Status() string {
	return e.status
}

// Items returns a copy of the draft's item list.
func (e *ItemEditor) Items() []OrderItem {
	return cloneItems(e.items)
}

// CurrentTotal is the live total of the draft items.
func (e *ItemEditor) CurrentTotal() float64 {
	return ComputeTotal(e.items)
}

// Commit reconciles the draft against the previous order (nil for a new one).
func (e *ItemEditor) Commit(previous *Order) (Order, error) {
	return Reconcile(previous, Draft{Customer: e.customer, Items: e.items, Status: e.status})
}

package controllers

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-desk/src/infrastructure/kvstore"
	"go-order-desk/src/infrastructure/log"
	"go-order-desk/src/services/catalog"
	"go-order-desk/src/services/order/domain"
	"go-order-desk/src/services/order/domain/persistence"
)

func newTestTUI(t *testing.T) *OrderTUI {
	t.Helper()
	cat, err := catalog.New([]catalog.Product{
		{Name: "Coffee", Price: 5},
		{Name: "Croissant", Price: 8},
	})
	require.NoError(t, err)

	repo := persistence.NewOrderRepository(
		context.Background(), kvstore.NewMemoryStore(), "orders", log.NewLogger("error"))
	return NewOrderTUI(repo, domain.NewItemEditor(cat))
}

func press(m *OrderTUI, keys ...tea.KeyMsg) {
	for _, key := range keys {
		m.Update(key)
	}
}

func runes(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			msgs = append(msgs, tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func createOrder(m *OrderTUI, customer string) {
	press(m, runes("n")...)
	press(m, runes(customer)...)
	press(m, key(tea.KeyTab))
	press(m, runes("cof")...)
	press(m, key(tea.KeyEnter))
	press(m, key(tea.KeyCtrlS))
}

func TestOrderTUI_CreateOrderFlow(t *testing.T) {
	m := newTestTUI(t)

	createOrder(m, "Joana")

	assert.Equal(t, stateIdle, m.state)
	require.Equal(t, 1, m.repo.Len())
	orders := m.repo.List(persistence.Filter{Status: persistence.StatusFilterAll})
	assert.Equal(t, "Joana", orders[0].Customer)
	assert.Equal(t, 5.0, orders[0].Total)
	assert.Equal(t, "order saved", m.flash)
}

func TestOrderTUI_SaveRejectsInvalidDraft(t *testing.T) {
	m := newTestTUI(t)

	// no customer, no items
	press(m, runes("n")...)
	press(m, key(tea.KeyCtrlS))

	assert.Equal(t, stateEditing, m.state, "editing continues so the user can correct input")
	assert.NotEmpty(t, m.flash)
	assert.Equal(t, 0, m.repo.Len())
}

func TestOrderTUI_CancelEditReverts(t *testing.T) {
	m := newTestTUI(t)
	createOrder(m, "Joana")

	// open the order, rename the customer, then cancel
	press(m, key(tea.KeyEnter))
	require.Equal(t, stateEditing, m.state)
	press(m, runes(" Maria")...)
	press(m, key(tea.KeyEsc))

	assert.Equal(t, stateIdle, m.state)
	orders := m.repo.List(persistence.Filter{Status: persistence.StatusFilterAll})
	require.Len(t, orders, 1)
	assert.Equal(t, "Joana", orders[0].Customer, "cancel never touches persisted state")
}

func TestOrderTUI_DeleteNeedsConfirmation(t *testing.T) {
	t.Run("confirm removes the order", func(t *testing.T) {
		m := newTestTUI(t)
		createOrder(m, "Joana")

		press(m, runes("d")...)
		assert.Equal(t, stateConfirmDelete, m.state)
		press(m, runes("y")...)

		assert.Equal(t, stateIdle, m.state)
		assert.Equal(t, 0, m.repo.Len())
	})

	t.Run("decline keeps the order", func(t *testing.T) {
		m := newTestTUI(t)
		createOrder(m, "Joana")

		press(m, runes("d")...)
		press(m, runes("n")...)

		assert.Equal(t, stateIdle, m.state)
		assert.Equal(t, 1, m.repo.Len())
	})
}

func TestOrderTUI_AdHocProductEntry(t *testing.T) {
	m := newTestTUI(t)

	press(m, runes("n")...)
	press(m, runes("Joana")...)
	press(m, key(tea.KeyTab))
	// no catalog match for "pizza", so enter opens the ad-hoc form
	press(m, runes("pizza")...)
	press(m, key(tea.KeyEnter))
	require.Equal(t, focusAdHocName, m.focus)
	assert.Equal(t, "pizza", m.adHocName)

	press(m, key(tea.KeyEnter))
	press(m, runes("12.5")...)
	press(m, key(tea.KeyEnter))
	press(m, key(tea.KeyCtrlS))

	orders := m.repo.List(persistence.Filter{Status: persistence.StatusFilterAll})
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "pizza", orders[0].Items[0].Product)
	assert.Equal(t, 12.5, orders[0].Items[0].Price)
}

func TestOrderTUI_StatusFilterCycles(t *testing.T) {
	m := newTestTUI(t)

	assert.Equal(t, persistence.StatusFilterAll, m.statusFilter)
	press(m, runes("f")...)
	assert.Equal(t, domain.StatusPaid, m.statusFilter)
	press(m, runes("f")...)
	assert.Equal(t, domain.StatusUnpaid, m.statusFilter)
	press(m, runes("f")...)
	assert.Equal(t, persistence.StatusFilterAll, m.statusFilter)
}

package controllers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"go-order-desk/src/services/catalog"
	"go-order-desk/src/services/order/domain"
	"go-order-desk/src/services/order/domain/persistence"
)

// The UI is an explicit finite state machine: browsing the list, editing a
// draft, or confirming a delete. Domain state lives in the repository and the
// editor; the model only tracks which screen is showing and its inputs.
const (
	stateIdle = iota
	stateEditing
	stateConfirmDelete
)

const (
	focusCustomer = iota
	focusSearch
	focusItems
	focusAdHocName
	focusAdHocPrice
)

type OrderTUI struct {
	repo   *persistence.OrderRepository
	editor *domain.ItemEditor

	state int

	// idle screen
	searchTerm   string
	statusFilter string
	cursor       int
	searching    bool

	// editing screen
	previous      *domain.Order
	focus         int
	productSearch string
	matches       []catalog.Product
	matchIdx      int
	itemIdx       int
	adHocName     string
	adHocPrice    string

	// confirm screen
	deletingID       string
	deletingCustomer string

	flash string
}

func NewOrderTUI(repo *persistence.OrderRepository, editor *domain.ItemEditor) *OrderTUI {
	return &OrderTUI{
		repo:         repo,
		editor:       editor,
		state:        stateIdle,
		statusFilter: persistence.StatusFilterAll,
	}
}

func (m *OrderTUI) Init() tea.Cmd {
	return nil
}

func (m *OrderTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateIdle:
		return m.updateIdle(key)
	case stateEditing:
		return m.updateEditing(key)
	case stateConfirmDelete:
		return m.updateConfirmDelete(key)
	}
	return m, nil
}

func (m *OrderTUI) visibleOrders() []domain.Order {
	return m.repo.List(persistence.Filter{
		CustomerSubstring: m.searchTerm,
		Status:            m.statusFilter,
	})
}

func (m *OrderTUI) updateIdle(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	orders := m.visibleOrders()
	if m.cursor >= len(orders) {
		m.cursor = max(0, len(orders)-1)
	}

	if m.searching {
		switch key.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
		case tea.KeyBackspace:
			m.searchTerm = trimLastRune(m.searchTerm)
		case tea.KeyRunes, tea.KeySpace:
			m.searchTerm += keyText(key)
		}
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.flash = ""
	case "f":
		m.statusFilter = nextStatusFilter(m.statusFilter)
		m.cursor = 0
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(orders)-1 {
			m.cursor++
		}
	case "n":
		m.startEditing(nil)
	case "enter", "e":
		if len(orders) > 0 {
			order := orders[m.cursor]
			m.startEditing(&order)
		}
	case "d":
		if len(orders) > 0 {
			m.deletingID = orders[m.cursor].ID
			m.deletingCustomer = orders[m.cursor].Customer
			m.state = stateConfirmDelete
			m.flash = ""
		}
	}
	return m, nil
}

func (m *OrderTUI) startEditing(order *domain.Order) {
	m.previous = order
	m.editor.StartFrom(order)
	m.state = stateEditing
	m.focus = focusCustomer
	m.productSearch = ""
	m.matches = nil
	m.matchIdx = 0
	m.itemIdx = 0
	m.adHocName = ""
	m.adHocPrice = ""
	m.flash = ""
}

func (m *OrderTUI) updateEditing(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		if m.focus == focusAdHocName || m.focus == focusAdHocPrice {
			m.adHocName = ""
			m.adHocPrice = ""
			m.productSearch = ""
			m.matches = nil
			m.focus = focusSearch
			return m, nil
		}
		m.editor.Revert()
		m.state = stateIdle
		m.flash = "edit cancelled"
		return m, nil
	case "ctrl+s":
		return m.saveDraft()
	case "tab":
		if m.focus == focusAdHocName {
			m.focus = focusAdHocPrice
		} else {
			m.focus = nextFocus(m.focus)
		}
		return m, nil
	}

	switch m.focus {
	case focusCustomer:
		m.editCustomer(key)
	case focusSearch:
		m.editSearch(key)
	case focusItems:
		m.editItems(key)
	case focusAdHocName, focusAdHocPrice:
		m.editAdHoc(key)
	}
	return m, nil
}

func (m *OrderTUI) editCustomer(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyBackspace:
		m.editor.SetCustomer(trimLastRune(m.editor.Customer()))
	case tea.KeyRunes, tea.KeySpace:
		m.editor.SetCustomer(m.editor.Customer() + keyText(key))
	}
}

func (m *OrderTUI) editSearch(key tea.KeyMsg) {
	switch key.Type {
	case tea.KeyBackspace:
		m.productSearch = trimLastRune(m.productSearch)
		m.refreshMatches()
	case tea.KeyRunes, tea.KeySpace:
		m.productSearch += keyText(key)
		m.refreshMatches()
	case tea.KeyUp:
		if m.matchIdx > 0 {
			m.matchIdx--
		}
	case tea.KeyDown:
		if m.matchIdx < len(m.matches)-1 {
			m.matchIdx++
		}
	case tea.KeyEnter:
		if m.productSearch == "" {
			return
		}
		if len(m.matches) > 0 {
			m.editor.AddItem(m.matches[m.matchIdx])
			m.productSearch = ""
			m.matches = nil
			m.matchIdx = 0
			return
		}
		// no catalog match, offer an ad-hoc product prefilled with the query
		m.adHocName = m.productSearch
		m.adHocPrice = ""
		m.focus = focusAdHocName
	}
}

func (m *OrderTUI) refreshMatches() {
	if m.productSearch == "" {
		m.matches = nil
		m.matchIdx = 0
		return
	}
	m.matches = m.editor.SearchCatalog(m.productSearch)
	if m.matchIdx >= len(m.matches) {
		m.matchIdx = 0
	}
}

func (m *OrderTUI) editAdHoc(key tea.KeyMsg) {
	field := &m.adHocName
	if m.focus == focusAdHocPrice {
		field = &m.adHocPrice
	}
	switch key.Type {
	case tea.KeyBackspace:
		*field = trimLastRune(*field)
	case tea.KeyRunes, tea.KeySpace:
		*field += keyText(key)
	case tea.KeyEnter:
		if m.focus == focusAdHocName {
			m.focus = focusAdHocPrice
			return
		}
		price, err := strconv.ParseFloat(m.adHocPrice, 64)
		if err != nil {
			m.flash = "price must be a number"
			return
		}
		if err := m.editor.AddAdHocProduct(m.adHocName, price); err != nil {
			m.flash = err.Error()
			return
		}
		m.adHocName = ""
		m.adHocPrice = ""
		m.productSearch = ""
		m.matches = nil
		m.focus = focusSearch
		m.flash = ""
	}
}

func (m *OrderTUI) editItems(key tea.KeyMsg) {
	items := m.editor.Items()
	if m.itemIdx >= len(items) {
		m.itemIdx = max(0, len(items)-1)
	}

	switch key.String() {
	case "up":
		if m.itemIdx > 0 {
			m.itemIdx--
		}
	case "down":
		if m.itemIdx < len(items)-1 {
			m.itemIdx++
		}
	case "+", "=":
		if len(items) > 0 {
			if err := m.editor.SetQuantity(m.itemIdx, items[m.itemIdx].Quantity+1); err != nil {
				m.flash = err.Error()
			}
		}
	case "-":
		// the draft stores whatever it is given, so the minimum is enforced here
		if len(items) > 0 && items[m.itemIdx].Quantity > 1 {
			if err := m.editor.SetQuantity(m.itemIdx, items[m.itemIdx].Quantity-1); err != nil {
				m.flash = err.Error()
			}
		}
	case "x":
		if len(items) > 0 {
			if err := m.editor.RemoveItem(m.itemIdx); err != nil {
				m.flash = err.Error()
			}
		}
	case "p":
		if m.editor.Status() == domain.StatusPaid {
			m.editor.SetStatus(domain.StatusUnpaid)
		} else {
			m.editor.SetStatus(domain.StatusPaid)
		}
	}
}

func (m *OrderTUI) saveDraft() (tea.Model, tea.Cmd) {
	order, err := m.editor.Commit(m.previous)
	if err != nil {
		m.flash = err.Error()
		return m, nil
	}
	if err := m.repo.Save(context.Background(), order); err != nil {
		m.flash = err.Error()
		return m, nil
	}
	if m.previous == nil {
		m.flash = "order saved"
	} else {
		m.flash = "order updated"
	}
	m.state = stateIdle
	return m, nil
}

func (m *OrderTUI) updateConfirmDelete(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "y", "enter":
		if err := m.repo.Delete(context.Background(), m.deletingID); err != nil {
			m.flash = err.Error()
		} else {
			m.flash = "order deleted"
		}
		m.deletingID = ""
		m.state = stateIdle
	case "n", "esc":
		m.deletingID = ""
		m.state = stateIdle
	}
	return m, nil
}

func (m *OrderTUI) View() string {
	switch m.state {
	case stateEditing:
		return m.viewEditing()
	case stateConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewIdle()
	}
}

func (m *OrderTUI) viewIdle() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "order-desk")
	fmt.Fprintln(b, "")

	cursor := " "
	if m.searching {
		cursor = "_"
	}
	fmt.Fprintf(b, "Search: %s%s\n", m.searchTerm, cursor)
	fmt.Fprintf(b, "Status filter: %s\n", m.statusFilter)
	fmt.Fprintln(b, "")

	orders := m.visibleOrders()
	if len(orders) == 0 {
		fmt.Fprintln(b, "No orders.")
	}
	for i, order := range orders {
		marker := " "
		if i == m.cursor && !m.searching {
			marker = ">"
		}
		fmt.Fprintf(b, "%s %s  [%s]  %s\n", marker, order.Customer, domain.StatusLabel(order.Status), order.Date)
		for _, item := range order.Items {
			fmt.Fprintf(b, "     %dx %s  %.2f\n", item.Quantity, item.Product, float64(item.Quantity)*item.Price)
		}
		fmt.Fprintf(b, "     Total: %.2f\n", order.Total)
	}

	fmt.Fprintln(b, "")
	if m.flash != "" {
		fmt.Fprintf(b, "%s\n\n", m.flash)
	}
	fmt.Fprintln(b, "Controls: / search, f filter, up/down select, n new, enter edit, d delete, q quit")
	return b.String()
}

func (m *OrderTUI) viewEditing() string {
	b := &strings.Builder{}
	if m.previous == nil {
		fmt.Fprintln(b, "New order")
	} else {
		fmt.Fprintln(b, "Edit order")
	}
	fmt.Fprintln(b, "")

	fmt.Fprintf(b, "%s Customer: %s\n", focusMarker(m.focus == focusCustomer), m.editor.Customer())
	fmt.Fprintf(b, "%s Product search: %s\n", focusMarker(m.focus == focusSearch), m.productSearch)

	if m.focus == focusSearch && m.productSearch != "" {
		if len(m.matches) == 0 {
			fmt.Fprintln(b, "    no matches, enter to add as a new product")
		}
		for i, p := range m.matches {
			marker := " "
			if i == m.matchIdx {
				marker = ">"
			}
			fmt.Fprintf(b, "    %s %s  %.2f\n", marker, p.Name, p.Price)
		}
	}

	if m.focus == focusAdHocName || m.focus == focusAdHocPrice {
		fmt.Fprintln(b, "  New product:")
		fmt.Fprintf(b, "    %s Name: %s\n", focusMarker(m.focus == focusAdHocName), m.adHocName)
		fmt.Fprintf(b, "    %s Price: %s\n", focusMarker(m.focus == focusAdHocPrice), m.adHocPrice)
	}

	fmt.Fprintf(b, "%s Items:\n", focusMarker(m.focus == focusItems))
	items := m.editor.Items()
	if len(items) == 0 {
		fmt.Fprintln(b, "    (none)")
	}
	for i, item := range items {
		marker := " "
		if i == m.itemIdx && m.focus == focusItems {
			marker = ">"
		}
		fmt.Fprintf(b, "  %s %dx %s  %.2f\n", marker, item.Quantity, item.Product, float64(item.Quantity)*item.Price)
	}
	fmt.Fprintf(b, "  Total: %.2f\n", m.editor.CurrentTotal())
	fmt.Fprintf(b, "  Status: %s\n", domain.StatusLabel(m.editor.Status()))

	if m.previous != nil && len(m.previous.Updates) > 0 {
		fmt.Fprintln(b, "")
		fmt.Fprintln(b, "History:")
		for _, update := range m.previous.Updates {
			fmt.Fprintf(b, "  %s  %s\n", update.Timestamp, update.Details)
		}
	}

	fmt.Fprintln(b, "")
	if m.flash != "" {
		fmt.Fprintf(b, "%s\n\n", m.flash)
	}
	fmt.Fprintln(b, "Controls: tab switch field, +/- quantity, x remove item, p toggle paid, ctrl+s save, esc cancel")
	return b.String()
}

func (m *OrderTUI) viewConfirmDelete() string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Delete the order for %q?\n\n", m.deletingCustomer)
	fmt.Fprintln(b, "y confirm, n cancel")
	return b.String()
}

func focusMarker(focused bool) string {
	if focused {
		return ">"
	}
	return " "
}

func nextFocus(focus int) int {
	switch focus {
	case focusCustomer:
		return focusSearch
	case focusSearch:
		return focusItems
	default:
		return focusCustomer
	}
}

func nextStatusFilter(filter string) string {
	switch filter {
	case persistence.StatusFilterAll:
		return domain.StatusPaid
	case domain.StatusPaid:
		return domain.StatusUnpaid
	default:
		return persistence.StatusFilterAll
	}
}

func keyText(key tea.KeyMsg) string {
	if key.Type == tea.KeySpace {
		return " "
	}
	return string(key.Runes)
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

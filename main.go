package main

import (
	"context"
	"fmt"

	"go-order-desk/src/config"
	"go-order-desk/src/controllers"
	"go-order-desk/src/infrastructure/kvstore"
	"go-order-desk/src/infrastructure/log"
	"go-order-desk/src/services/catalog"
	"go-order-desk/src/services/order/domain"
	"go-order-desk/src/services/order/domain/persistence"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	ctx := context.Background()

	var configs, err = config.LoadConfig()
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		return
	}

	logger := log.NewLogger(configs.LogLevel)
	logger.Info(ctx, "Configuration loaded successfully")

	store := openStore(ctx, configs, logger)
	defer store.Close()

	cat, err := catalog.LoadFromFile(configs.CatalogFilePath)
	if err != nil {
		logger.Fatal(ctx, "Failed to load product catalog", err)
	}
	logger.InfoWithExtra(ctx, "Product catalog loaded", map[string]any{"Products": cat.Len()})

	orderRepository := persistence.NewOrderRepository(ctx, store, configs.OrdersKey, logger)
	editor := domain.NewItemEditor(cat)

	ui := controllers.NewOrderTUI(orderRepository, editor)
	if _, err := tea.NewProgram(ui).Run(); err != nil {
		logger.Fatal(ctx, "UI terminated with an error", err)
	}
}

// openStore opens the SQLite document store, falling back to an in-memory
// store when the database cannot be opened. An unusable store is not fatal;
// the session just loses persistence.
func openStore(ctx context.Context, configs *config.Config, logger log.Logger) kvstore.Store {
	store, err := kvstore.NewSQLiteStore(configs.DatabasePath)
	if err != nil {
		logger.Warn(ctx, fmt.Sprintf("failed to open database %q, orders will not be persisted: %v", configs.DatabasePath, err))
		return kvstore.NewMemoryStore()
	}
	logger.InfoWithExtra(ctx, "Database opened", map[string]any{"Path": configs.DatabasePath})
	return store
}

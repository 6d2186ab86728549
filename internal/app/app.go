// Package app wires configuration, storage, clients, and services into a
// runnable application core.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/clients/data912"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/services/ledger"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/services/prices"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/storage/ledgerfs"
)

// App holds all initialized services and clients.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	Store        interfaces.LedgerStore
	MarketClient interfaces.MarketDataClient
	Ledger       interfaces.LedgerService
	PriceCache   *prices.Cache
	StartupTime  time.Time

	catalog         []models.AssetDefinition
	schedulerCancel context.CancelFunc
}

// NewApp initializes the application core from the given config path.
// configPath may be empty, in which case defaults plus environment
// overrides apply.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	store, err := ledgerfs.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger store: %w", err)
	}

	catalog := models.DefaultCatalog()

	ledgerService, err := ledger.NewService(context.Background(), store, catalog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger service: %w", err)
	}

	marketClient := data912.NewClient(
		data912.WithBaseURL(config.Clients.Data912.BaseURL),
		data912.WithTimeout(config.Clients.Data912.GetTimeout()),
		data912.WithRetryPolicy(config.Clients.Data912.MaxRetries, config.Clients.Data912.GetRetryDelay()),
		data912.WithRateLimit(config.Clients.Data912.RateLimit),
		data912.WithLogger(logger),
	)

	priceService := prices.NewService(marketClient, logger)
	priceCache := prices.NewCache(priceService, config.Prices.GetFreshness(), logger)

	a := &App{
		Config:       config,
		Logger:       logger,
		Store:        store,
		MarketClient: marketClient,
		Ledger:       ledgerService,
		PriceCache:   priceCache,
		StartupTime:  startupStart,
		catalog:      catalog,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// PortfolioTickers returns the ticker set the price cache tracks: every
// catalog instrument. Non-retrievable instruments stay in the set and
// resolve to absent prices without network calls.
func (a *App) PortfolioTickers() []string {
	return models.CatalogTickers(a.catalog)
}

// StartPriceScheduler launches the background revalidation goroutine.
func (a *App) StartPriceScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go a.runPriceScheduler(ctx)
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
}

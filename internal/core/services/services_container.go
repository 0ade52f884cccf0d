package services

import (
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/platform/config"
	"github.com/SscSPs/vending_machine_app/internal/utils/clock"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, c clock.Clock) *portssvc.ServiceContainer {
	if c == nil {
		c = clock.NewSystemClock(cfg.Location)
	}

	return &portssvc.ServiceContainer{
		Product: NewProductService(repos.ProductRepo, c),
		Purchase: NewPurchaseService(repos.ProductRepo,
			WithDenominations(cfg.Denominations),
			WithQuickBuyNote(cfg.QuickBuyNote),
			WithCurrencySymbol(cfg.CurrencySymbol),
			WithPurchaseClock(c),
		),
		TransactionLog: NewTransactionLogService(repos.TransactionLogRepo),
		Auth:           NewAuthService(cfg, c),
	}
}

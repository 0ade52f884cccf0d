package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/vending_machine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/utils"
	"github.com/SscSPs/vending_machine_app/internal/utils/clock"
	"github.com/shopspring/decimal"
)

// purchaseService implements the PurchaseSvc interface
type purchaseService struct {
	BaseService
	productRepo    portsrepo.ProductRepositoryFacade
	denominations  domain.DenominationSet
	quickBuyNote   int64
	currencySymbol string
	clock          clock.Clock
}

// PurchaseOption is a functional option for configuring the purchase service
type PurchaseOption func(*purchaseService)

// WithDenominations sets the accepted denomination set
func WithDenominations(set domain.DenominationSet) PurchaseOption {
	return func(s *purchaseService) {
		s.denominations = set
	}
}

// WithQuickBuyNote sets the note assumed to be inserted for a quick buy
func WithQuickBuyNote(note int64) PurchaseOption {
	return func(s *purchaseService) {
		s.quickBuyNote = note
	}
}

// WithCurrencySymbol sets the symbol used in customer messages
func WithCurrencySymbol(symbol string) PurchaseOption {
	return func(s *purchaseService) {
		s.currencySymbol = symbol
	}
}

// WithPurchaseClock sets the clock used to timestamp sales
func WithPurchaseClock(c clock.Clock) PurchaseOption {
	return func(s *purchaseService) {
		s.clock = c
	}
}

// NewPurchaseService creates a new purchase service. Without options it accepts the
// default denominations, assumes a 100 note for quick buy and prints amounts as "Rs".
func NewPurchaseService(productRepo portsrepo.ProductRepositoryFacade, options ...PurchaseOption) portssvc.PurchaseSvc {
	svc := &purchaseService{
		productRepo:    productRepo,
		denominations:  domain.DefaultDenominations(),
		quickBuyNote:   100,
		currencySymbol: "Rs",
		clock:          clock.NewSystemClock(nil),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PurchaseSvc = (*purchaseService)(nil)

func (s *purchaseService) Denominations() domain.DenominationSet {
	return s.denominations
}

func (s *purchaseService) PurchaseFromForm(ctx context.Context, lookup domain.FieldLookup) (*domain.PurchaseReceipt, error) {
	input, err := domain.ParsePurchaseInput(s.denominations, lookup)
	if err != nil {
		s.LogWarn(ctx, "Rejected purchase form", slog.String("reason", err.Error()))
		return nil, err
	}
	for _, issue := range input.Issues {
		s.LogWarn(ctx, "Coerced denomination field to 0",
			slog.String("field", issue.Field),
			slog.String("value", issue.Value),
			slog.String("reason", issue.Reason))
	}

	return s.Purchase(ctx, domain.PurchaseRequest{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Payment:   domain.CountedCash(input.Inserted),
		Issues:    input.Issues,
	})
}

func (s *purchaseService) QuickBuy(ctx context.Context, productID int64) (*domain.PurchaseReceipt, error) {
	receipt, err := s.Purchase(ctx, domain.PurchaseRequest{
		ProductID:        productID,
		Quantity:         1,
		Payment:          domain.SingleNote(s.quickBuyNote),
		ReportOutOfStock: true,
	})
	if err != nil {
		return nil, err
	}
	if receipt.Completed {
		receipt.Message = fmt.Sprintf("Successfully purchased %s! Change: %s",
			receipt.Product.Name, s.amount(receipt.ChangeReturned))
	}
	return receipt, nil
}

// Purchase validates the request and only then applies side effects: the stock decrement
// and the transaction log are written together by the repository, or not at all.
func (s *purchaseService) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseReceipt, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity),
	)

	if req.Quantity < 1 {
		return nil, domain.NewInvalidInputError(domain.MsgQuantityTooSmall)
	}
	if req.Payment == nil {
		return nil, domain.NewInvalidInputError("No payment provided.")
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase for unknown product")
			return nil, domain.NewProductNotFoundError(req.ProductID)
		}
		logger.Error("Failed to load product for purchase", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load product %d: %w", req.ProductID, err)
	}

	if !product.CanSupply(req.Quantity) {
		if req.ReportOutOfStock {
			logger.Info("Product out of stock", slog.Int("available", product.QuantityLeft))
			return &domain.PurchaseReceipt{
				Completed: false,
				Message:   fmt.Sprintf("Sorry, %s is out of stock.", product.Name),
				Product:   *product,
				Issues:    req.Issues,
			}, nil
		}
		logger.Info("Insufficient stock", slog.Int("available", product.QuantityLeft))
		return nil, domain.NewInsufficientStockError(product.ProductID, req.Quantity, product.QuantityLeft)
	}

	inserted := req.Payment.Inserted()
	for _, dc := range inserted {
		if !s.denominations.Contains(dc.Denomination) {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("Unsupported denomination %d.", dc.Denomination))
		}
	}

	totalInserted := inserted.Total().Round(2)
	totalPrice := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)

	if totalInserted.GreaterThan(domain.MaxRecordableAmount) || totalPrice.GreaterThan(domain.MaxRecordableAmount) {
		logger.Warn("Purchase amount exceeds recordable limit",
			slog.String("price", totalPrice.StringFixed(2)),
			slog.String("inserted", totalInserted.StringFixed(2)))
		return nil, domain.NewInvalidInputError(domain.MsgAmountTooLarge)
	}

	if totalInserted.LessThan(totalPrice) {
		logger.Info("Insufficient funds",
			slog.String("price", totalPrice.StringFixed(2)),
			slog.String("inserted", totalInserted.StringFixed(2)))
		return nil, &domain.PurchaseError{
			Kind: domain.PurchaseInsufficientFunds,
			Message: fmt.Sprintf("Insufficient funds. Price: %s but inserted %s.",
				s.amount(totalPrice), s.amount(totalInserted)),
			ProductID: product.ProductID,
			Quantity:  req.Quantity,
			Available: product.QuantityLeft,
			Price:     totalPrice,
			Inserted:  inserted,
		}
	}

	change := totalInserted.Sub(totalPrice)
	changeBreakdown := s.denominations.ComputeChange(change)
	entry := domain.NewTransactionLog(product.ProductID, req.Quantity, s.clock.Now(), inserted, change, changeBreakdown)

	saved, err := s.productRepo.RecordSale(ctx, product.ProductID, req.Quantity, entry)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			// Stock moved between the read and the conditional decrement.
			available := 0
			if current, ferr := s.productRepo.FindProductByID(ctx, product.ProductID); ferr == nil {
				available = current.QuantityLeft
			}
			logger.Warn("Stock changed before sale was recorded", slog.Int("available", available))
			return nil, domain.NewInsufficientStockError(product.ProductID, req.Quantity, available)
		}
		logger.Error("Failed to record sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record sale of product %d: %w", product.ProductID, err)
	}

	product.QuantityLeft -= req.Quantity
	logger.Info("Sale recorded",
		slog.Int64("log_id", saved.LogID),
		slog.String("inserted", saved.InsertedDetails),
		slog.String("change", saved.ChangeDetails))

	return &domain.PurchaseReceipt{
		Completed: true,
		Message: fmt.Sprintf("Purchased %s x%d. Price: %s. Inserted: %s. Change returned: %s.",
			product.Name, req.Quantity, s.amount(totalPrice), s.amount(totalInserted), s.amount(change)),
		Product:         *product,
		Quantity:        req.Quantity,
		TotalPrice:      totalPrice,
		AmountInserted:  totalInserted,
		InsertedDetails: saved.InsertedDetails,
		ChangeReturned:  change,
		ChangeDetails:   saved.ChangeDetails,
		ChangeBreakdown: changeBreakdown,
		Issues:          req.Issues,
		Log:             saved,
	}, nil
}

func (s *purchaseService) amount(d decimal.Decimal) string {
	return utils.FormatAmount(s.currencySymbol, d)
}

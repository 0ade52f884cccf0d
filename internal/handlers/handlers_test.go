package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/vending_machine_app/internal/apperrors"
	"github.com/SscSPs/vending_machine_app/internal/core/domain"
	portssvc "github.com/SscSPs/vending_machine_app/internal/core/ports/services"
	"github.com/SscSPs/vending_machine_app/internal/dto"
	"github.com/SscSPs/vending_machine_app/internal/handlers"
	"github.com/SscSPs/vending_machine_app/internal/platform/config"
	"github.com/SscSPs/vending_machine_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, adminID string) (*domain.Product, error) {
	args := m.Called(ctx, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest, adminID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

var _ portssvc.ProductSvcFacade = (*MockProductService)(nil)

// --- Mock PurchaseService ---
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseReceipt), args.Error(1)
}
func (m *MockPurchaseService) PurchaseFromForm(ctx context.Context, lookup domain.FieldLookup) (*domain.PurchaseReceipt, error) {
	args := m.Called(ctx, lookup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseReceipt), args.Error(1)
}
func (m *MockPurchaseService) QuickBuy(ctx context.Context, productID int64) (*domain.PurchaseReceipt, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseReceipt), args.Error(1)
}
func (m *MockPurchaseService) Denominations() domain.DenominationSet {
	return domain.DefaultDenominations()
}

var _ portssvc.PurchaseSvc = (*MockPurchaseService)(nil)

// --- Mock TransactionLogService ---
type MockTransactionLogService struct {
	mock.Mock
}

func (m *MockTransactionLogService) GetTransactionLog(ctx context.Context, logID int64) (*domain.TransactionLog, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionLog), args.Error(1)
}
func (m *MockTransactionLogService) ListTransactionLogs(ctx context.Context, params dto.ListTransactionLogsParams) (*dto.ListTransactionLogsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionLogsResponse), args.Error(1)
}

var _ portssvc.TransactionLogSvcFacade = (*MockTransactionLogService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	cfg         *config.Config
	productSvc  *MockProductService
	purchaseSvc *MockPurchaseService
	logSvc      *MockTransactionLogService
	authSvc     *MockAuthService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		IsProduction:      true,
		JWTSecret:         "handler-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "vending-test",
		PurchaseRateLimit: "1000-M",
		LoginRateLimit:    "1000-M",
	}
	suite.productSvc = new(MockProductService)
	suite.purchaseSvc = new(MockPurchaseService)
	suite.logSvc = new(MockTransactionLogService)
	suite.authSvc = new(MockAuthService)

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Product:        suite.productSvc,
		Purchase:       suite.purchaseSvc,
		TransactionLog: suite.logSvc,
		Auth:           suite.authSvc,
	})
	suite.Require().NoError(err)
}

func (suite *HandlersTestSuite) products() []domain.Product {
	return []domain.Product{
		{ProductID: 1, Name: "Brownie", Category: domain.CategoryCake, Price: decimal.NewFromInt(45), QuantityLeft: 5},
		{ProductID: 2, Name: "Cola", Category: domain.CategoryDrink, Price: decimal.NewFromInt(20), QuantityLeft: 0},
	}
}

func (suite *HandlersTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) adminRequest(method, path string) *httptest.ResponseRecorder {
	token, _, err := utils.GenerateJWT("admin", suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer, time.Now())
	suite.Require().NoError(err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestHome_ListsProducts() {
	suite.productSvc.On("ListProducts", mock.Anything).Return(suite.products(), nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	suite.Equal(http.StatusOK, w.Code)
	var res []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Require().Len(res, 2)
	suite.Equal("45.00", res[0].Price)
	suite.Equal("Soft Drink", res[1].CategoryLabel)
	suite.False(res[1].InStock)
}

func (suite *HandlersTestSuite) TestPurchaseForm() {
	suite.productSvc.On("ListProducts", mock.Anything).Return(suite.products(), nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchase", nil))

	suite.Equal(http.StatusOK, w.Code)
	var res dto.PurchaseFormResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal([]int64{100, 50, 20, 10, 5, 1}, res.Denominations)
	suite.Len(res.Products, 2)
}

func (suite *HandlersTestSuite) TestPurchase_Success() {
	receipt := &domain.PurchaseReceipt{
		Completed:       true,
		Message:         "Purchased Brownie x2. Price: Rs 90.00. Inserted: Rs 100.00. Change returned: Rs 10.00.",
		Product:         suite.products()[0],
		Quantity:        2,
		TotalPrice:      decimal.NewFromInt(90),
		AmountInserted:  decimal.NewFromInt(100),
		InsertedDetails: "2x50",
		ChangeReturned:  decimal.NewFromInt(10),
		ChangeDetails:   "1x10",
		ChangeBreakdown: domain.Breakdown{{Denomination: 10, Count: 1}},
		Log:             &domain.TransactionLog{LogID: 17},
	}
	var seenDenom string
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			lookup := args.Get(1).(domain.FieldLookup)
			seenDenom, _ = lookup("denom_50")
		}).
		Return(receipt, nil).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"1"}, "quantity": {"2"}, "denom_50": {"2"}})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("2", seenDenom)
	var res dto.PurchaseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.True(res.Completed)
	suite.Equal("10.00", res.ChangeReturned)
	suite.Equal("1x10", res.ChangeDetails)
	suite.Equal(int64(17), res.TransactionLogID)
	suite.Equal("/purchase", res.ContinueURL)
	suite.Equal("/", res.HomeURL)
}

func (suite *HandlersTestSuite) TestPurchase_InvalidInput() {
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).
		Return(nil, domain.NewInvalidInputError(domain.MsgInvalidIDOrQuantity)).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"x"}})

	suite.Equal(http.StatusBadRequest, w.Code)
	var res dto.PurchaseErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.MsgInvalidIDOrQuantity, res.Error)
	suite.Equal("INVALID_INPUT", res.Kind)
	suite.Nil(res.Form)
}

func (suite *HandlersTestSuite) TestPurchase_NotFound() {
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).
		Return(nil, domain.NewProductNotFoundError(9)).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"9"}})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestPurchase_InsufficientStockEchoesForm() {
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).
		Return(nil, domain.NewInsufficientStockError(1, 6, 5)).Once()
	suite.productSvc.On("ListProducts", mock.Anything).Return(suite.products(), nil).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"1"}, "quantity": {"6"}})

	suite.Equal(http.StatusConflict, w.Code)
	var res dto.PurchaseErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("Not enough stock. Available: 5", res.Error)
	suite.Require().NotNil(res.Available)
	suite.Equal(5, *res.Available)
	suite.Require().NotNil(res.Form)
	suite.Len(res.Form.Products, 2)
}

func (suite *HandlersTestSuite) TestPurchase_InsufficientFundsEchoesCash() {
	perr := &domain.PurchaseError{
		Kind:      domain.PurchaseInsufficientFunds,
		Message:   "Insufficient funds. Price: Rs 90.00 but inserted Rs 50.00.",
		ProductID: 1,
		Quantity:  2,
		Price:     decimal.NewFromInt(90),
		Inserted:  domain.Breakdown{{Denomination: 100, Count: 0}, {Denomination: 50, Count: 1}},
	}
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).Return(nil, perr).Once()
	suite.productSvc.On("ListProducts", mock.Anything).Return(suite.products(), nil).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"1"}, "quantity": {"2"}, "denom_50": {"1"}})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var res dto.PurchaseErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("90.00", res.Price)
	suite.Equal("50.00", res.AmountInserted)
	suite.Equal("1x50", res.InsertedBreakdown)
	suite.Equal(int64(1), res.InsertedCounts["denom_50"])
	suite.Equal(int64(0), res.InsertedCounts["denom_100"])
	suite.Equal(2, res.Quantity)
	suite.NotNil(res.Form)
}

func (suite *HandlersTestSuite) TestPurchase_InternalError() {
	suite.purchaseSvc.On("PurchaseFromForm", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded).Once()

	w := suite.postForm("/purchase", url.Values{"product_id": {"1"}})

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlersTestSuite) TestQuickBuy_Success() {
	suite.purchaseSvc.On("QuickBuy", mock.Anything, int64(1)).Return(&domain.PurchaseReceipt{
		Completed:      true,
		Message:        "Successfully purchased Brownie! Change: Rs 55.00",
		Product:        suite.products()[0],
		Quantity:       1,
		ChangeReturned: decimal.NewFromInt(55),
	}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/buy/1", nil))

	suite.Equal(http.StatusOK, w.Code)
	var res dto.PurchaseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("Successfully purchased Brownie! Change: Rs 55.00", res.Message)
}

func (suite *HandlersTestSuite) TestQuickBuy_OutOfStock() {
	suite.purchaseSvc.On("QuickBuy", mock.Anything, int64(2)).Return(&domain.PurchaseReceipt{
		Completed: false,
		Message:   "Sorry, Cola is out of stock.",
		Product:   suite.products()[1],
	}, nil).Once()

	w := suite.postForm("/buy/2", url.Values{})

	suite.Equal(http.StatusConflict, w.Code)
	var res dto.PurchaseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.False(res.Completed)
	suite.Equal("Sorry, Cola is out of stock.", res.Message)
}

func (suite *HandlersTestSuite) TestQuickBuy_InvalidID() {
	w := suite.postForm("/buy/abc", url.Values{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.purchaseSvc.AssertNotCalled(suite.T(), "QuickBuy", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAdmin_RequiresToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestAdmin_GetProductNotFound() {
	suite.productSvc.On("GetProductByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.adminRequest(http.MethodGet, "/api/v1/admin/products/42")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestAdmin_ListTransactions() {
	next := "tok"
	suite.logSvc.On("ListTransactionLogs", mock.Anything, dto.ListTransactionLogsParams{Limit: 20}).
		Return(&dto.ListTransactionLogsResponse{
			Logs:      []dto.TransactionLogResponse{{LogID: 1, ChangeDetails: "1x10"}},
			NextToken: &next,
		}, nil).Once()

	w := suite.adminRequest(http.MethodGet, "/api/v1/admin/transactions")

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListTransactionLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res.Logs, 1)
	suite.Require().NotNil(res.NextToken)
	suite.Equal("tok", *res.NextToken)
}

func (suite *HandlersTestSuite) TestAdmin_ListTransactionsBadToken() {
	suite.logSvc.On("ListTransactionLogs", mock.Anything, dto.ListTransactionLogsParams{Limit: 20, NextToken: "bad"}).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", nil)).Once()

	w := suite.adminRequest(http.MethodGet, "/api/v1/admin/transactions?nextToken=bad")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_Unauthorized() {
	suite.authSvc.On("Login", mock.Anything, dto.LoginRequest{Username: "admin", Password: "nope"}).
		Return(nil, apperrors.ErrUnauthorized).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_MissingFields() {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.authSvc.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

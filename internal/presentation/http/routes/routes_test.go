package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storepos-api/internal/application/service"
	"github.com/sangkips/storepos-api/internal/config"
	"github.com/sangkips/storepos-api/internal/infrastructure/database"
	"github.com/sangkips/storepos-api/internal/infrastructure/repository"
	"github.com/sangkips/storepos-api/internal/presentation/http/handler"
	"github.com/sangkips/storepos-api/internal/presentation/http/middleware"
	"github.com/sangkips/storepos-api/pkg/printer"
	"github.com/sangkips/storepos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminEmail    = "owner@store.test"
	adminPassword = "secret123"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Reason  string          `json:"reason"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	printer *printer.MemoryPrinter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "api.db"), false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))
	require.NoError(t, database.SeedDefaultData(db, config.AdminConfig{Email: adminEmail, Password: adminPassword}, log))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{App: config.AppConfig{Name: "storepos-api"}}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	receipts, err := utils.NewReceiptNumberGenerator("TRX", 1)
	require.NoError(t, err)
	clock := service.NewStoreClock(time.UTC, nil)
	mem := &printer.MemoryPrinter{}

	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	discountRepo := repository.NewDiscountRuleRepository(db)
	storeRepo := repository.NewStoreProfileRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	registerService := service.NewCashRegisterService(transactor, registerRepo, analyticsRepo, clock, log)
	reportService := service.NewReportService(analyticsRepo, txnRepo, storeRepo, registerService, clock)

	handlers := &Handlers{
		Auth:          handler.NewAuthHandler(service.NewAuthService(userRepo, jwtManager, log)),
		User:          handler.NewUserHandler(service.NewUserService(userRepo)),
		Category:      handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, productRepo)),
		Product:       handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo)),
		PaymentMethod: handler.NewPaymentMethodHandler(service.NewPaymentMethodService(transactor, paymentRepo)),
		DiscountRule:  handler.NewDiscountRuleHandler(service.NewDiscountRuleService(discountRepo)),
		Store:         handler.NewStoreHandler(service.NewStoreService(storeRepo)),
		CashRegister:  handler.NewCashRegisterHandler(registerService, reportService),
		Transaction: handler.NewTransactionHandler(service.NewTransactionService(
			transactor, txnRepo, registerRepo, productRepo, paymentRepo, discountRepo, receipts, clock, log,
		)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(analyticsRepo, registerService, clock), reportService),
		Printer: handler.NewPrinterHandler(service.NewPrinterService(mem, txnRepo, storeRepo, clock, service.PrinterOptions{
			Type:      "network",
			CharWidth: 32,
		}, log)),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(10000, 1))
	t.Cleanup(limiter.Stop)

	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		RateLimiter:     limiter,
		Logger:          log,
	})

	return &testServer{t: t, router: router, printer: mem}
}

func (s *testServer) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeData(s.t, w, &out)
	require.NotEmpty(s.t, out.AccessToken)
	assert.Equal(s.t, "Bearer", out.TokenType)
	return out.AccessToken
}

func (s *testServer) cashMethodID(token string) string {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/v1/payment-methods", token, nil)
	require.Equal(s.t, http.StatusOK, w.Code)
	var methods []struct {
		ID     string `json:"id"`
		IsCash bool   `json:"is_cash"`
	}
	decodeData(s.t, w, &methods)
	for _, m := range methods {
		if m.IsCash {
			return m.ID
		}
	}
	s.t.Fatal("no cash payment method seeded")
	return ""
}

func (s *testServer) createProduct(token, name string, price float64) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/products", token, map[string]interface{}{"name": name, "price": price})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	decodeData(s.t, w, &p)
	return p.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storepos-api")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": adminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w).Reason)

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w)
	assert.Equal(t, "validation_failed", env.Reason)
	fields := map[string]bool{}
	for _, e := range env.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(adminEmail, adminPassword)
	w = s.do(http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeData(t, w, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestRoleGuards(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/users", admin, map[string]string{
		"name":     "Till One",
		"email":    "till@store.test",
		"password": "cashier123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cashier := s.login("till@store.test", "cashier123")

	w = s.do(http.MethodPost, "/api/v1/products", cashier, map[string]interface{}{"name": "Tea", "price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/v1/users", cashier, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/v1/reports/sales?start_date=2026-01-01&end_date=2026-01-31", cashier, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/products", cashier, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/dashboard", cashier, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []struct {
			Email string `json:"email"`
		} `json:"items"`
	}
	decodeData(t, w, &page)
	assert.Len(t, page.Items, 2)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/products", admin, map[string]interface{}{"name": "Free"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "price", decode(t, w).Errors[0].Field)

	w = s.do(http.MethodPost, "/api/v1/products", admin, map[string]interface{}{"name": "Bad", "price": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	id := s.createProduct(admin, "Scone", 3.2)
	w = s.do(http.MethodGet, "/api/v1/products/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/products/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/v1/products/"+id, admin, map[string]interface{}{"discount_percent": 50})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p struct {
		PriceAfterDiscount decimal.Decimal `json:"price_after_discount"`
	}
	decodeData(t, w, &p)
	assert.True(t, decimal.RequireFromString("1.6").Equal(p.PriceAfterDiscount), p.PriceAfterDiscount.String())

	w = s.do(http.MethodDelete, "/api/v1/products/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodPost, "/api/v1/payment-methods", admin, map[string]interface{}{"name": "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/discount-rules", admin, map[string]interface{}{"name": "Big", "min_amount": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = s.do(http.MethodPost, "/api/v1/discount-rules", admin, map[string]interface{}{"name": "Big", "min_amount": 100, "discount_percent": 10})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPut, "/api/v1/store", admin, map[string]interface{}{"name": "Corner Cafe", "receipt_footer": "Asante"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/store", admin, nil)
	assert.Contains(t, w.Body.String(), "Corner Cafe")
}

func TestSaleDay(t *testing.T) {
	s := newTestServer(t)
	token := s.login(adminEmail, adminPassword)
	cash := s.cashMethodID(token)
	coffee := s.createProduct(token, "Coffee", 2.5)

	sale := map[string]interface{}{
		"items":             []map[string]interface{}{{"product_id": coffee, "quantity": 4}},
		"payment_method_id": cash,
		"amount_received":   20,
	}

	w := s.do(http.MethodPost, "/api/v1/transactions", token, sale)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no_active_session", decode(t, w).Reason)

	w = s.do(http.MethodGet, "/api/v1/cash-register/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Data)

	w = s.do(http.MethodPost, "/api/v1/cash-register/open", token, map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/cash-register/open", token, map[string]interface{}{"starting_cash": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &session)

	w = s.do(http.MethodPost, "/api/v1/cash-register/open", token, map[string]interface{}{"starting_cash": 50})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_open_today", decode(t, w).Reason)

	w = s.do(http.MethodPost, "/api/v1/transactions", token, map[string]interface{}{
		"items":             []map[string]interface{}{{"product_id": coffee, "quantity": -1}},
		"payment_method_id": cash,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "items[0].quantity", decode(t, w).Errors[0].Field)

	w = s.do(http.MethodPost, "/api/v1/transactions", token, map[string]interface{}{"items": []interface{}{}, "payment_method_id": cash})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/v1/transactions", token, sale, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var txn struct {
		ReceiptNo    string          `json:"receipt_no"`
		FinalTotal   decimal.Decimal `json:"final_total"`
		ChangeAmount decimal.Decimal `json:"change_amount"`
	}
	decodeData(t, w, &txn)
	assert.True(t, decimal.NewFromInt(10).Equal(txn.FinalTotal), txn.FinalTotal.String())
	assert.True(t, decimal.NewFromInt(10).Equal(txn.ChangeAmount), txn.ChangeAmount.String())

	replay := s.do(http.MethodPost, "/api/v1/transactions", token, sale, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, w.Body.String(), replay.Body.String())

	w = s.do(http.MethodGet, "/api/v1/cash-register/current", token, nil)
	var current struct {
		CashSales    decimal.Decimal `json:"cash_sales"`
		ExpectedCash decimal.Decimal `json:"expected_cash"`
	}
	decodeData(t, w, &current)
	assert.True(t, decimal.NewFromInt(10).Equal(current.CashSales), "replay must not count twice")
	assert.True(t, decimal.NewFromInt(110).Equal(current.ExpectedCash))

	w = s.do(http.MethodGet, "/api/v1/transactions/today", token, nil)
	var today []json.RawMessage
	decodeData(t, w, &today)
	assert.Len(t, today, 1)

	w = s.do(http.MethodGet, "/api/v1/transactions/receipt/"+txn.ReceiptNo, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/transactions/receipt/TRX-NOPE", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/v1/printer/receipt/"+txn.ReceiptNo, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.printer.Jobs(), 1)
	assert.Contains(t, string(s.printer.Jobs()[0]), txn.ReceiptNo)

	w = s.do(http.MethodPost, "/api/v1/cash-register/"+session.ID+"/close", token, map[string]interface{}{"actual_cash": 108})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var closed struct {
		IsOpen     bool            `json:"is_open"`
		Difference decimal.Decimal `json:"difference"`
	}
	decodeData(t, w, &closed)
	assert.False(t, closed.IsOpen)
	assert.True(t, decimal.NewFromInt(-2).Equal(closed.Difference), closed.Difference.String())

	w = s.do(http.MethodPost, "/api/v1/cash-register/"+session.ID+"/close", token, map[string]interface{}{"actual_cash": 108})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_closed", decode(t, w).Reason)

	w = s.do(http.MethodGet, "/api/v1/cash-register/"+session.ID+"/report.pdf", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.do(http.MethodGet, "/api/v1/cash-register/"+session.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		TransactionCount int64 `json:"transaction_count"`
	}
	decodeData(t, w, &summary)
	assert.Equal(t, int64(1), summary.TransactionCount)

	w = s.do(http.MethodPost, "/api/v1/transactions", token, sale)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReportRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodGet, "/api/v1/reports/sales?start_date=2026-03-16&end_date=2026-03-14", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/transactions", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodGet, "/api/v1/transactions?start_date=2026-03-14&end_date=2026-03-14", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(decode(t, w).Data))

	w = s.do(http.MethodGet, "/api/v1/reports/sales?start_date=2026-03-14&end_date=2026-03-15", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

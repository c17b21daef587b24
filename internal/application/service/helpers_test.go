package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/storepos-api/internal/domain/repository"
	"github.com/sangkips/storepos-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/storepos-api/internal/infrastructure/repository"
	"github.com/sangkips/storepos-api/pkg/printer"
	"github.com/sangkips/storepos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var storeZone = time.FixedZone("EAT", 3*60*60)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func requireMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	db    *gorm.DB
	clock *testClock
	store *StoreClock

	printer *printer.MemoryPrinter

	transactions *TransactionService
	register     *CashRegisterService
	categories   *CategoryService
	products     *ProductService
	payments     *PaymentMethodService
	discounts    *DiscountRuleService
	stores       *StoreService
	dashboard    *DashboardService
	reports      *ReportService
	printing     *PrinterService
	auth         *AuthService
	users        *UserService

	cash entity.PaymentMethod
	card entity.PaymentMethod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "pos.db"), false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, log))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := &testClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, storeZone)}
	store := NewStoreClock(storeZone, clock.Now)

	transactor := infraRepo.NewTransactor(db)
	txnRepo := infraRepo.NewTransactionRepository(db)
	registerRepo := infraRepo.NewCashRegisterRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	categoryRepo := infraRepo.NewCategoryRepository(db)
	paymentRepo := infraRepo.NewPaymentMethodRepository(db)
	discountRepo := infraRepo.NewDiscountRuleRepository(db)
	storeRepo := infraRepo.NewStoreProfileRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)
	userRepo := infraRepo.NewUserRepository(db)

	receipts, err := utils.NewReceiptNumberGenerator("TRX", 1)
	require.NoError(t, err)

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		db:      db,
		clock:   clock,
		store:   store,
		printer: &printer.MemoryPrinter{},
	}

	f.register = NewCashRegisterService(transactor, registerRepo, analyticsRepo, store, log)
	f.transactions = NewTransactionService(transactor, txnRepo, registerRepo, productRepo, paymentRepo, discountRepo, receipts, store, log)
	f.categories = NewCategoryService(categoryRepo, productRepo)
	f.products = NewProductService(productRepo, categoryRepo)
	f.payments = NewPaymentMethodService(transactor, paymentRepo)
	f.discounts = NewDiscountRuleService(discountRepo)
	f.stores = NewStoreService(storeRepo)
	f.dashboard = NewDashboardService(analyticsRepo, f.register, store)
	f.reports = NewReportService(analyticsRepo, txnRepo, storeRepo, f.register, store)
	f.printing = NewPrinterService(f.printer, txnRepo, storeRepo, store, PrinterOptions{Type: "network", CharWidth: 32}, log)
	f.auth = NewAuthService(userRepo, utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour), log)
	f.users = NewUserService(userRepo)

	cash, err := f.payments.CreatePaymentMethod(f.ctx, &CreatePaymentMethodInput{Name: "Cash", IsCash: true})
	require.NoError(t, err)
	card, err := f.payments.CreatePaymentMethod(f.ctx, &CreatePaymentMethodInput{Name: "Card", ChargePercent: d("2.5")})
	require.NoError(t, err)
	f.cash, f.card = *cash, *card

	return f
}

func (f *fixture) product(name, price string) *entity.Product {
	f.t.Helper()
	p, err := f.products.CreateProduct(f.ctx, &CreateProductInput{Name: name, Price: d(price)})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) rule(minAmount, pct string) *entity.DiscountRule {
	f.t.Helper()
	r, err := f.discounts.CreateDiscountRule(f.ctx, &CreateDiscountRuleInput{
		Name:            "Spend " + minAmount,
		MinAmount:       d(minAmount),
		DiscountPercent: d(pct),
	})
	require.NoError(f.t, err)
	return r
}

func (f *fixture) open(startingCash string) *entity.CashRegisterSession {
	f.t.Helper()
	s, err := f.register.OpenSession(f.ctx, &OpenSessionInput{StartingCash: d(startingCash)})
	require.NoError(f.t, err)
	return s
}

func (f *fixture) user(email string, role enum.UserRole) *entity.User {
	f.t.Helper()
	u, err := f.users.CreateUser(f.ctx, &CreateUserInput{Name: "Staff " + email, Email: email, Password: "password123", Role: role})
	require.NoError(f.t, err)
	return u
}

func (f *fixture) sell(method entity.PaymentMethod, received *decimal.Decimal, lines ...TransactionItemInput) (*entity.Transaction, error) {
	return f.transactions.CreateTransaction(f.ctx, &CreateTransactionInput{
		Items:           lines,
		PaymentMethodID: method.ID,
		AmountReceived:  received,
	})
}

func line(p *entity.Product, qty int) TransactionItemInput {
	return TransactionItemInput{ProductID: p.ID, Quantity: qty}
}

func (f *fixture) session(id uuid.UUID) *entity.CashRegisterSession {
	f.t.Helper()
	s, err := f.register.GetSession(f.ctx, id)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) count(model interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}

// transactionsWith builds a sale service over the fixture's database whose
// register repository is replaced by wrap(real).
func (f *fixture) transactionsWith(wrap func(domainRepo.CashRegisterRepository) domainRepo.CashRegisterRepository) *TransactionService {
	f.t.Helper()
	receipts, err := utils.NewReceiptNumberGenerator("TRX", 2)
	require.NoError(f.t, err)
	return NewTransactionService(
		infraRepo.NewTransactor(f.db),
		infraRepo.NewTransactionRepository(f.db),
		wrap(infraRepo.NewCashRegisterRepository(f.db)),
		infraRepo.NewProductRepository(f.db),
		infraRepo.NewPaymentMethodRepository(f.db),
		infraRepo.NewDiscountRuleRepository(f.db),
		receipts,
		f.store,
		zap.NewNop(),
	)
}

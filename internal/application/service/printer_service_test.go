package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReceipt(t *testing.T) {
	received := d("50")
	change := d("3.87")
	r := &entity.Receipt{
		Header:          entity.ReceiptHeader{StoreName: "Corner Cafe", Phone: "0700 000 000"},
		ReceiptNo:       "TRX-20260314-ABC",
		Date:            "2026-03-14 10:00",
		Cashier:         "Amina",
		PaymentMethod:   "Cash",
		Items:           []entity.ReceiptItem{{Name: "Latte", Quantity: 2, UnitPrice: d("25"), Total: d("50")}},
		Subtotal:        d("50"),
		DiscountPercent: d("10"),
		Discount:        d("5"),
		ChargePercent:   d("2.5"),
		Charge:          d("1.13"),
		Total:           d("46.13"),
		Received:        &received,
		Change:          &change,
	}

	out := string(FormatReceipt(r, 32))

	for _, want := range []string{
		"Corner Cafe",
		"TRX-20260314-ABC",
		"Cashier:",
		"2x Latte",
		"@ 25.00 each",
		"Discount (10%):",
		"-5.00",
		"Charge (2.5%):",
		"1.13",
		"TOTAL:",
		"46.13",
		"Received:",
		"Change:",
		"3.87",
		"Thank you for your business!",
	} {
		assert.Contains(t, out, want)
	}

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Subtotal:") {
			assert.Len(t, line, 32)
		}
	}
}

func TestFormatReceipt_OmitsEmptyAdjustments(t *testing.T) {
	r := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: "Shop"},
		ReceiptNo: "R-1",
		Items:     []entity.ReceiptItem{{Name: "Bun", Quantity: 1, UnitPrice: d("1"), Total: d("1")}},
		Subtotal:  d("1"),
		Total:     d("1"),
		Footer:    "Come again",
	}

	out := string(FormatReceipt(r, 48))
	assert.NotContains(t, out, "Discount")
	assert.NotContains(t, out, "Charge")
	assert.NotContains(t, out, "Change:")
	assert.NotContains(t, out, "each")
	assert.Contains(t, out, "Come again")
}

func TestPrintReceipt(t *testing.T) {
	f := newFixture(t)
	f.rule("10", "10")
	f.open("0")
	p := f.product("Pasta", "12")
	txn, err := f.sell(f.cash, dp("20"), line(p, 1))
	require.NoError(t, err)

	receipt, err := f.printing.PrintReceipt(f.ctx, txn.ReceiptNo)
	require.NoError(t, err)
	assert.Equal(t, txn.ReceiptNo, receipt.ReceiptNo)
	assert.Equal(t, "2026-03-14 10:00", receipt.Date)
	assert.Equal(t, "Cash", receipt.PaymentMethod)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "Pasta", receipt.Items[0].Name)
	requireMoney(t, "10.80", receipt.Total, "total")
	requireMoney(t, "9.20", *receipt.Change, "change")

	jobs := f.printer.Jobs()
	require.Len(t, jobs, 1)
	assert.Contains(t, string(jobs[0]), txn.ReceiptNo)

	_, err = f.printing.PrintReceipt(f.ctx, "TRX-MISSING")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	f.printer.Err = errors.New("paper out")
	receipt, err = f.printing.PrintReceipt(f.ctx, txn.ReceiptNo)
	require.Error(t, err)
	assert.NotNil(t, receipt)
	assert.False(t, f.printing.GetStatus().Connected)
}

func TestPrintReceipt_UsesStoreProfile(t *testing.T) {
	f := newFixture(t)
	_, err := f.stores.UpdateProfile(f.ctx, &UpdateProfileInput{
		Name:          "Corner Cafe",
		TaxID:         "P051234567X",
		ReceiptFooter: "Karibu tena",
		Settings:      map[string]interface{}{"show_cashier": false},
	})
	require.NoError(t, err)

	cashier := f.user("till@example.com", "")
	f.open("0")
	p := f.product("Chai", "2")
	txn, err := f.transactions.CreateTransaction(f.ctx, &CreateTransactionInput{
		CashierID:       &cashier.ID,
		Items:           []TransactionItemInput{line(p, 1)},
		PaymentMethodID: f.cash.ID,
	})
	require.NoError(t, err)

	receipt, err := f.printing.PrintReceipt(f.ctx, txn.ReceiptNo)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", receipt.Header.StoreName)
	assert.Equal(t, "Karibu tena", receipt.Footer)
	assert.Empty(t, receipt.Cashier)

	out := string(f.printer.Jobs()[0])
	assert.Contains(t, out, "Tax ID: P051234567X")
	assert.Contains(t, out, "Karibu tena")
}

func TestAutoPrintOnSale(t *testing.T) {
	f := newFixture(t)
	f.transactions.OnSale(f.printing)
	f.open("0")
	p := f.product("Toast", "1.5")

	txn, err := f.sell(f.cash, nil, line(p, 2))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.printer.Jobs()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, string(f.printer.Jobs()[0]), txn.ReceiptNo)
}

func TestAutoPrintFailureKeepsSale(t *testing.T) {
	f := newFixture(t)
	f.printer.Err = errors.New("offline")
	f.transactions.OnSale(f.printing)
	f.open("0")
	p := f.product("Toast", "1.5")

	txn, err := f.sell(f.cash, nil, line(p, 1))
	require.NoError(t, err)

	stored, err := f.transactions.GetByReceiptNo(f.ctx, txn.ReceiptNo)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, f.printer.Jobs())
}

func TestPrinterStatusAndTestPage(t *testing.T) {
	f := newFixture(t)

	status := f.printing.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, 32, status.CharWidth)

	receipt, err := f.printing.TestPrint(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "TEST-001", receipt.ReceiptNo)
	require.Len(t, f.printer.Jobs(), 1)
}

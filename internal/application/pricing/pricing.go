// Package pricing computes the totals of a sale. It is pure: callers load
// products, discount tiers and the payment method, and persist the result.
package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one cart entry priced at the product's discounted unit price.
type Line struct {
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total is UnitPrice x Quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Tier is a candidate automatic discount.
type Tier struct {
	ID        uuid.UUID
	MinAmount decimal.Decimal
	Percent   decimal.Decimal
}

// Quote is the fully priced sale.
type Quote struct {
	Lines           []Line
	Subtotal        decimal.Decimal
	Tier            *Tier
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	ChargePercent   decimal.Decimal
	PaymentCharge   decimal.Decimal
	FinalTotal      decimal.Decimal
	AmountReceived  *decimal.Decimal
	Change          *decimal.Decimal
}

// SelectTier picks the tier that applies to subtotal: among those whose
// minimum is met, the highest percent wins; on equal percent the higher
// minimum wins; remaining ties keep the first in input order.
func SelectTier(tiers []Tier, subtotal decimal.Decimal) *Tier {
	var best *Tier
	for i := range tiers {
		t := &tiers[i]
		if t.MinAmount.GreaterThan(subtotal) {
			continue
		}
		if best == nil ||
			t.Percent.GreaterThan(best.Percent) ||
			(t.Percent.Equal(best.Percent) && t.MinAmount.GreaterThan(best.MinAmount)) {
			best = t
		}
	}
	return best
}

// Percent returns amount x pct / 100 rounded half away from zero to cents.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

// Calculate prices the cart.
//
//	subtotal  = sum(unit x qty)
//	discount  = subtotal x tier% / 100, to cents
//	surcharge = (subtotal - discount) x charge% / 100, to cents
//	final     = subtotal - discount + surcharge
//	change    = max(0, received - final), only when received is given
//
// The discount is rounded to cents rather than carried at full precision
// into the final total, so every stored amount is exact at two places and
// final always equals subtotal - discount + surcharge. 33.30 at 15% takes
// 5.00 off and totals 28.30, not 28.31.
func Calculate(lines []Line, tiers []Tier, chargePercent decimal.Decimal, amountReceived *decimal.Decimal) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}

	q := Quote{
		Lines:           lines,
		Subtotal:        subtotal,
		DiscountPercent: decimal.Zero,
		DiscountAmount:  decimal.Zero,
		ChargePercent:   chargePercent,
	}

	if tier := SelectTier(tiers, subtotal); tier != nil {
		picked := *tier
		q.Tier = &picked
		q.DiscountPercent = picked.Percent
		q.DiscountAmount = Percent(subtotal, picked.Percent)
	}

	afterDiscount := subtotal.Sub(q.DiscountAmount)
	q.PaymentCharge = Percent(afterDiscount, chargePercent)
	q.FinalTotal = afterDiscount.Add(q.PaymentCharge)

	if amountReceived != nil {
		received := *amountReceived
		change := received.Sub(q.FinalTotal)
		if change.IsNegative() {
			change = decimal.Zero
		}
		q.AmountReceived = &received
		q.Change = &change
	}

	return q
}

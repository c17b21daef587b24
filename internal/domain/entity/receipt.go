package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store details printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is the printable view of a Transaction. It is composed at print
// time and never stored.
type Receipt struct {
	Header          ReceiptHeader    `json:"header"`
	ReceiptNo       string           `json:"receipt_no"`
	Date            string           `json:"date"`
	Cashier         string           `json:"cashier,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Items           []ReceiptItem    `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	Discount        decimal.Decimal  `json:"discount"`
	ChargePercent   decimal.Decimal  `json:"charge_percent"`
	Charge          decimal.Decimal  `json:"charge"`
	Total           decimal.Decimal  `json:"total"`
	Received        *decimal.Decimal `json:"received,omitempty"`
	Change          *decimal.Decimal `json:"change,omitempty"`
	Footer          string           `json:"footer,omitempty"`
}

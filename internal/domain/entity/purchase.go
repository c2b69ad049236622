package entity

// Sentinel values used when a source document omits a field.
const (
	UnknownStore = "Unknown Store"
	UnknownItem  = "Unknown Item"
)

// RawLineItem is one purchased product entry as extracted from a
// line-item document. Price is the recorded total for the line; the
// per-unit price is derived during normalization.
type RawLineItem struct {
	ItemDescription string  `json:"item_description"`
	Quantity        float64 `json:"quantity"`
	Price           float64 `json:"price"`
	TransactionID   string  `json:"transaction_id"`
	DiscountValue   float64 `json:"discount_value"`
	PersonalOfferID string  `json:"personal_offer_id"`
	VoucherValue    float64 `json:"voucher_value"`
}

// RawReceiptHeader is one shopping-trip transaction as extracted from a
// receipt document. Timestamp keeps the source format
// "YYYY-MM-DD HH:MM:SS".
type RawReceiptHeader struct {
	TransactionID string  `json:"transaction_id"`
	StoreName     string  `json:"store_name"`
	Timestamp     string  `json:"timestamp"`
	TotalAmount   float64 `json:"total_amount"`
	TotalDiscount float64 `json:"total_discount"`
	VATAmount     float64 `json:"vat_amount"`
	PaymentType   string  `json:"payment_type"`
	ReceiptType   string  `json:"receipt_type"`
}

// NormalizedPurchase is a line item joined to its receipt header: it
// carries the store and calendar date of the transaction plus the
// derived unit price.
type NormalizedPurchase struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	Store           string  `json:"store"`
	ItemDescription string  `json:"item_description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountValue   float64 `json:"discount_value"`
	VoucherValue    float64 `json:"voucher_value"`
	TransactionID   string  `json:"transaction_id"`
}

// TotalPrice returns the recorded price of the whole line
// (unit price times quantity).
func (p NormalizedPurchase) TotalPrice() float64 {
	return p.UnitPrice * p.Quantity
}

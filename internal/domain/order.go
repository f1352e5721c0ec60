package domain

import "github.com/shopspring/decimal"

type OrderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"productName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderPayload is the body handed to the order backend on checkout.
type OrderPayload struct {
	MemberID      string          `json:"memberId,omitempty"`
	CustomerName  string          `json:"customerName"`
	PaymentMethod string          `json:"paymentMethod"`
	OriginalTotal decimal.Decimal `json:"originalAmount"`
	Discount      decimal.Decimal `json:"discountAmount"`
	PayableTotal  decimal.Decimal `json:"totalAmount"`
	Lines         []OrderLine     `json:"items"`
}

package cart

import (
	"context"
	"strings"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

const (
	PaymentCash      = "cash"
	PaymentWeChat    = "wechat"
	PaymentAlipay    = "alipay"
	PaymentInsurance = "insurance"
	PaymentCard      = "card"

	// WalkInCustomer is the back office's customer name for sales without a member.
	WalkInCustomer = "散客"
)

var paymentMethods = map[string]struct{}{
	PaymentCash:      {},
	PaymentWeChat:    {},
	PaymentAlipay:    {},
	PaymentInsurance: {},
	PaymentCard:      {},
}

type CheckoutInput struct {
	PaymentMethod string `json:"payment_method"`
	CustomerName  string `json:"customer_name"`
}

// Normalize lowercases the payment method, defaulting to cash, and rejects
// methods the order backend does not accept.
func (in CheckoutInput) Normalize() (CheckoutInput, error) {
	out := CheckoutInput{
		PaymentMethod: strings.ToLower(strings.TrimSpace(in.PaymentMethod)),
		CustomerName:  strings.TrimSpace(in.CustomerName),
	}
	if out.PaymentMethod == "" {
		out.PaymentMethod = PaymentCash
	}
	if _, ok := paymentMethods[out.PaymentMethod]; !ok {
		return CheckoutInput{}, validation("unsupported payment method " + in.PaymentMethod)
	}
	return out, nil
}

// Payload builds the order submission for the current cart without sending it.
func (s *Session) Payload(in CheckoutInput) (domain.OrderPayload, error) {
	if s.IsEmpty() {
		return domain.OrderPayload{}, ErrEmptyCart
	}
	in, err := in.Normalize()
	if err != nil {
		return domain.OrderPayload{}, err
	}

	p := domain.OrderPayload{
		CustomerName:  in.CustomerName,
		PaymentMethod: in.PaymentMethod,
		OriginalTotal: s.summary.OriginalTotal,
		Discount:      s.summary.Discount,
		PayableTotal:  s.summary.Payable,
		Lines:         make([]domain.OrderLine, 0, len(s.lines)),
	}
	if s.member != nil {
		p.MemberID = s.member.ID
		if p.CustomerName == "" {
			p.CustomerName = s.member.Name
		}
	}
	if p.CustomerName == "" {
		p.CustomerName = WalkInCustomer
	}
	for _, l := range s.lines {
		p.Lines = append(p.Lines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return p, nil
}

// Checkout submits the cart as an order and, on success, empties it. The
// returned string is the order id assigned by the backend.
func (s *Session) Checkout(ctx context.Context, in CheckoutInput) (string, error) {
	p, err := s.Payload(in)
	if err != nil {
		return "", err
	}
	if s.orders == nil {
		return "", &CollaboratorError{Op: "submit order", Err: ErrNoCollaborator}
	}
	orderID, err := s.orders.SubmitOrder(ctx, p)
	if err != nil {
		return "", &CollaboratorError{Op: "submit order", Err: err}
	}
	s.clear()
	return orderID, nil
}

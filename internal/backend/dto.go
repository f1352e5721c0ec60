package backend

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
)

type medicineDTO struct {
	MedicineID   string           `json:"medicineId"`
	GenericName  string           `json:"genericName"`
	TradeName    string           `json:"tradeName"`
	Spec         string           `json:"spec"`
	RetailPrice  decimal.Decimal  `json:"retailPrice"`
	MemberPrice  *decimal.Decimal `json:"memberPrice"`
	UsageDosage  string           `json:"usageDosage"`
	DietaryTaboo string           `json:"dietaryTaboo"`
}

func (m medicineDTO) toDomain() domain.Product {
	name := m.GenericName
	if name == "" {
		name = m.TradeName
	}
	return domain.Product{
		ID:             m.MedicineID,
		Name:           name,
		Specification:  m.Spec,
		RetailPrice:    m.RetailPrice,
		MemberPrice:    m.MemberPrice,
		UsageNote:      strings.TrimSpace(m.UsageDosage),
		DietaryWarning: strings.TrimSpace(m.DietaryTaboo),
	}
}

type memberDTO struct {
	MemberID  string          `json:"memberId"`
	Name      string          `json:"name"`
	Points    int             `json:"points"`
	LevelName string          `json:"levelName"`
	Level     json.RawMessage `json:"level"`
}

// Numeric levels as assigned by the back office.
var levelNames = map[int]string{
	0: "普通会员",
	1: "白银会员",
	2: "黄金会员",
	3: "铂金会员",
	4: "VIP会员",
}

func (m memberDTO) toDomain() domain.Member {
	label := m.LevelName
	if label == "" {
		label = levelLabel(m.Level)
	}
	return domain.Member{
		ID:        m.MemberID,
		Name:      m.Name,
		Points:    m.Points,
		TierLabel: label,
	}
}

// levelLabel accepts the level either as a number or as free text.
func levelLabel(raw json.RawMessage) string {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return levelNames[n]
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return levelNames[n]
		}
		return s
	}
	return ""
}

type rewardDTO struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	PointsRequired int    `json:"pointsRequired"`
	Description    string `json:"description"`
	IsActive       *bool  `json:"isActive"`
	Active         *bool  `json:"active"`
}

func (r rewardDTO) toDomain() domain.PointReward {
	// the active endpoint only returns enabled rewards unless told otherwise
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	} else if r.Active != nil {
		active = *r.Active
	}
	return domain.PointReward{
		ID:             r.ID,
		Name:           r.Name,
		PointsRequired: r.PointsRequired,
		Description:    r.Description,
		Active:         active,
	}
}

type orderItemRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"productName,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type orderRequest struct {
	MemberID       string             `json:"memberId,omitempty"`
	CustomerName   string             `json:"customerName"`
	PaymentMethod  string             `json:"paymentMethod"`
	OriginalAmount decimal.Decimal    `json:"originalAmount"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	Items          []orderItemRequest `json:"items"`
}

// The back office expects upper-case payment method names.
func newOrderRequest(p domain.OrderPayload) orderRequest {
	req := orderRequest{
		MemberID:       p.MemberID,
		CustomerName:   p.CustomerName,
		PaymentMethod:  strings.ToUpper(p.PaymentMethod),
		OriginalAmount: p.OriginalTotal,
		DiscountAmount: p.Discount,
		TotalAmount:    p.PayableTotal,
		Items:          make([]orderItemRequest, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		req.Items = append(req.Items, orderItemRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return req
}

type orderResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

package model

import (
	"strings"
)

type CheckoutStep string

const (
	CheckoutStepShipping   CheckoutStep = "shipping"
	CheckoutStepPayment    CheckoutStep = "payment"
	CheckoutStepProcessing CheckoutStep = "processing"
	CheckoutStepSuccess    CheckoutStep = "success"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == CheckoutStepSuccess
}

func (s CheckoutStep) String() string {
	return string(s)
}

type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
}

// MissingFields 回傳空白的必填欄位，不做格式驗證
func (s ShippingInfo) MissingFields() []string {
	return missing(
		field{"name", s.Name},
		field{"email", s.Email},
		field{"address", s.Address},
		field{"city", s.City},
		field{"zip", s.Zip},
		field{"phone", s.Phone},
	)
}

func (s ShippingInfo) ToAddress() ShippingAddress {
	return ShippingAddress{
		Name:    strings.TrimSpace(s.Name),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		Zip:     strings.TrimSpace(s.Zip),
	}
}

// 付款資訊只在送出當下使用，不會被保存
type PaymentInfo struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (p PaymentInfo) MissingFields() []string {
	return missing(
		field{"card_number", p.CardNumber},
		field{"card_name", p.CardName},
		field{"expiry", p.Expiry},
		field{"cvv", p.CVV},
	)
}

// MaskedCard 只保留末四碼
func (p PaymentInfo) MaskedCard() string {
	digits := strings.Join(strings.Fields(p.CardNumber), "")
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "**** **** **** " + digits
}

type field struct {
	name  string
	value string
}

func missing(fields ...field) []string {
	var res []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			res = append(res, f.name)
		}
	}
	return res
}

// 結帳流程快照
type CheckoutFlow struct {
	SessionID     string        `json:"-"`
	Step          CheckoutStep  `json:"step"`
	Shipping      *ShippingInfo `json:"shipping,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Summary       *OrderSummary `json:"summary,omitempty"`
	OrderID       string        `json:"order_id,omitempty"`
}

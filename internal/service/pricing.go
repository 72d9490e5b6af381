package service

import (
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/shopspring/decimal"
)

/*
運費與稅金
subtotal 大於門檻免運，否則收固定運費
稅金 = subtotal * TaxRate，四捨五入到分
*/
type Pricing struct {
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		ShippingFee:           decimal.RequireFromString("9.99"),
		FreeShippingThreshold: decimal.NewFromInt(50),
		TaxRate:               decimal.RequireFromString("0.08"),
	}
}

func (p Pricing) Summarize(items []model.CartItem) model.OrderSummary {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return p.SummarizeSubtotal(subtotal)
}

func (p Pricing) SummarizeSubtotal(subtotal decimal.Decimal) model.OrderSummary {
	summary := model.OrderSummary{
		Subtotal:                 subtotal,
		ShippingFee:              p.ShippingFee,
		RemainingForFreeShipping: decimal.Zero,
	}
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		summary.ShippingFee = decimal.Zero
		summary.FreeShipping = true
	} else {
		summary.RemainingForFreeShipping = p.FreeShippingThreshold.Sub(subtotal)
	}
	summary.Tax = subtotal.Mul(p.TaxRate).Round(2)
	summary.Total = subtotal.Add(summary.ShippingFee).Add(summary.Tax)
	return summary
}

package service

import (
	"testing"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPricingSummarize(t *testing.T) {
	testCases := []struct {
		name         string
		items        []model.CartItem
		shipping     string
		tax          string
		total        string
		freeShipping bool
		remaining    string
	}{
		{
			name:      "below threshold",
			items:     []model.CartItem{{ProductID: 1, Price: dec("40"), Quantity: 1}},
			shipping:  "9.99",
			tax:       "3.2",
			total:     "53.19",
			remaining: "10",
		},
		{
			name:         "above threshold",
			items:        []model.CartItem{{ProductID: 1, Price: dec("60"), Quantity: 1}},
			shipping:     "0",
			tax:          "4.8",
			total:        "64.8",
			freeShipping: true,
			remaining:    "0",
		},
		{
			name:      "exactly threshold still charged",
			items:     []model.CartItem{{ProductID: 1, Price: dec("25"), Quantity: 2}},
			shipping:  "9.99",
			tax:       "4",
			total:     "63.99",
			remaining: "0",
		},
		{
			name:      "tax rounds to cents",
			items:     []model.CartItem{{ProductID: 1, Price: dec("19.99"), Quantity: 1}},
			shipping:  "9.99",
			tax:       "1.6",
			total:     "31.58",
			remaining: "30.01",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultPricing().Summarize(tc.items)
			require.True(t, dec(tc.shipping).Equal(s.ShippingFee), "shipping %s", s.ShippingFee)
			require.True(t, dec(tc.tax).Equal(s.Tax), "tax %s", s.Tax)
			require.True(t, dec(tc.total).Equal(s.Total), "total %s", s.Total)
			require.True(t, dec(tc.remaining).Equal(s.RemainingForFreeShipping), "remaining %s", s.RemainingForFreeShipping)
			require.Equal(t, tc.freeShipping, s.FreeShipping)
		})
	}
}

package dto

import (
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ProductDTO 商品資訊，多帶折扣百分比
type ProductDTO struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Image         string           `json:"image"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Discount      int              `json:"discount,omitempty"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	Badge         model.Badge      `json:"badge,omitempty"`
}

func NewProductDTO(p model.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Image:         p.Image,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount(),
		Category:      p.Category,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		Badge:         p.Badge,
	}
}

func NewProductDTOs(products []model.Product) []ProductDTO {
	res := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		res = append(res, NewProductDTO(p))
	}
	return res
}

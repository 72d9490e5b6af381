package dto

import "github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"

// OrderDTO 附上狀態在序列中的位置，前端畫進度條用
type OrderDTO struct {
	*model.Order
	StatusStep  int `json:"status_step"`
	StatusSteps int `json:"status_steps"`
}

func NewOrderDTO(order *model.Order) OrderDTO {
	return OrderDTO{
		Order:       order,
		StatusStep:  order.Status.Index(),
		StatusSteps: len(model.OrderStatusSequence),
	}
}

func NewOrderDTOs(orders []*model.Order) []OrderDTO {
	res := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		res = append(res, NewOrderDTO(o))
	}
	return res
}

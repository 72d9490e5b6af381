package handler

import (
	"net/http"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/dto"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// ListOrders GET /orders  只列出目前 session 的訂單
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.orderService.ListOrders(ctx, util.GetSessionIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.NewOrderDTOs(orders))
}

// GetOrder GET /orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, err := h.orderService.GetSessionOrder(ctx, util.GetSessionIDFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.NewOrderDTO(order))
}

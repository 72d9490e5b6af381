package handler

import (
	"encoding/json"
	"net/http"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) writeFlow(w http.ResponseWriter, r *http.Request, flow *model.CheckoutFlow, err error) {
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.SuccessJSON(w, flow)
}

// Begin POST /checkout
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flow, err := h.checkoutService.Begin(ctx, util.GetSessionIDFromContext(ctx))
	h.writeFlow(w, r, flow, err)
}

// GetFlow GET /checkout
func (h *CheckoutHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flow, err := h.checkoutService.GetFlow(ctx, util.GetSessionIDFromContext(ctx))
	h.writeFlow(w, r, flow, err)
}

// SubmitShipping POST /checkout/shipping
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var info model.ShippingInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	ctx := r.Context()
	flow, err := h.checkoutService.SubmitShipping(ctx, util.GetSessionIDFromContext(ctx), info)
	h.writeFlow(w, r, flow, err)
}

// SubmitPayment POST /checkout/payment
// 回應進入 processing，完成後以 GET /checkout 取得訂單編號
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var info model.PaymentInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	ctx := r.Context()
	flow, err := h.checkoutService.SubmitPayment(ctx, util.GetSessionIDFromContext(ctx), info)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusAccepted, response.Response{Code: http.StatusAccepted, Message: "processing", Data: flow})
}

// Back POST /checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flow, err := h.checkoutService.Back(ctx, util.GetSessionIDFromContext(ctx))
	h.writeFlow(w, r, flow, err)
}

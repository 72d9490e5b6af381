package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/dto"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) writeCart(w http.ResponseWriter, cart *model.Cart) {
	response.SuccessJSON(w, dto.NewCartDTO(cart, h.cartService.Summary(cart)))
}

// GetCart GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.cartService.GetCart(ctx, util.GetSessionIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeCart(w, cart)
}

// AddItem POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	ctx := r.Context()
	cart, err := h.cartService.AddItem(ctx, util.GetSessionIDFromContext(ctx), req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeCart(w, cart)
}

// UpdateItem PUT /cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidProductID.Error(), nil)
		return
	}
	var req dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidBody.Error(), nil)
		return
	}

	ctx := r.Context()
	cart, err := h.cartService.SetQuantity(ctx, util.GetSessionIDFromContext(ctx), productID, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeCart(w, cart)
}

// RemoveItem DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, errInvalidProductID.Error(), nil)
		return
	}

	ctx := r.Context()
	cart, err := h.cartService.RemoveItem(ctx, util.GetSessionIDFromContext(ctx), productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeCart(w, cart)
}

// Clear DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)
	if err := h.cartService.Clear(ctx, sessionID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeCart(w, model.NewCart(sessionID))
}

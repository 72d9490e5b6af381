package handler

import (
	"errors"
	"net/http"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidBody      = errors.New("invalid request body")
	errInvalidProductID = errors.New("invalid product id")
)

/*
service 錯誤轉 http status
400 必填欄位 / 請求格式
401 認證失敗
404 查無資料
409 流程狀態衝突
其餘 500
*/
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ErrorJSON(w, http.StatusBadRequest, validationErr.Error(), map[string]interface{}{
			"step":   validationErr.Step,
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrPasswordTooLong):
		response.ErrorJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrUnauthenticated):
		response.ErrorJSON(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCheckoutNotStarted):
		response.ErrorJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrCheckoutProcessing),
		errors.Is(err, service.ErrCheckoutCompleted),
		errors.Is(err, service.ErrInvalidCheckoutStep):
		response.ErrorJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrCheckoutClosed),
		errors.Is(err, service.ErrOrderServiceClosed):
		response.ErrorJSON(w, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("internal error")
		response.ErrorJSON(w, http.StatusInternalServerError, "Internal Server Error", nil)
	}
}

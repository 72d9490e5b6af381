package response

import (
	"encoding/json"
	"net/http"
)

// 統一回應格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func SuccessJSON(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, Response{Code: http.StatusOK, Message: "success", Data: data})
}

func CreatedJSON(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusCreated, Response{Code: http.StatusCreated, Message: "created", Data: data})
}

// ErrorJSON data 可為 nil
func ErrorJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	WriteJSON(w, status, Response{Code: status, Message: message, Data: data})
}

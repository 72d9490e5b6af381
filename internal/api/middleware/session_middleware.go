package middleware

import (
	"net/http"
	"strings"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/google/uuid"
)

const maxSessionIDLen = 128

/*
購物車/結帳/訂單都以 session 區分
沒帶或格式不合時發一個新的，並透過 response header 回傳給前端保存
*/
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := strings.TrimSpace(r.Header.Get(constants.SessionIDHeader))
		if sessionID == "" || len(sessionID) > maxSessionIDLen {
			sessionID = uuid.New().String()
		}
		w.Header().Set(constants.SessionIDHeader, sessionID)

		next.ServeHTTP(w, r.WithContext(util.WithSessionID(r.Context(), sessionID)))
	})
}

package middleware

import (
	"net/http"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Status 沒有呼叫過 WriteHeader 時為 200
func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func getRequestID(r *http.Request) string {
	if requestId := util.GetRequestIDFromContext(r.Context()); requestId != "" {
		return requestId
	}
	return "unknown"
}

// 記錄request 請求
// logger 為 nil 時使用全域 logger
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = &log.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recoder := &StatusRecoder{
				ResponseWriter: w,
			}
			start := time.Now()
			next.ServeHTTP(recoder, r)

			event := logger.Info()
			if recoder.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			userID := ""
			if payload := util.GetTokenPayloadFromContext(r.Context()); payload != nil {
				userID = payload.UserID
			}
			event.
				Str("request_id", getRequestID(r)).
				Str("session_id", util.GetSessionIDFromContext(r.Context())).
				Str("user_id", userID).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", recoder.Status()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

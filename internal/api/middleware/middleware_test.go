package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/token"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware(t *testing.T) {
	var got string
	h := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetSessionIDFromContext(r.Context())
	}))

	// 沒帶 header 時產生新的
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)
	require.Equal(t, got, w.Header().Get(constants.SessionIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.SessionIDHeader, "session-abc")
	h.ServeHTTP(w, req)
	require.Equal(t, "session-abc", got)
	require.Equal(t, "session-abc", w.Header().Get(constants.SessionIDHeader))
}

func TestRequestIdMiddleware(t *testing.T) {
	var got string
	h := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetRequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, got, 36)
	require.Equal(t, got, w.Header().Get(constants.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "req-1", got)
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestLoggerMiddlewareRecordsStatus(t *testing.T) {
	h := LoggerMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	recoder := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	require.Equal(t, http.StatusOK, recoder.Status())
}

func TestAuthMiddlewares(t *testing.T) {
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	accessToken, _, err := maker.CreateToken("u1", "a@b.com", time.Minute)
	require.NoError(t, err)

	h := AuthPayloadMiddleware(maker)(AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := util.GetTokenPayloadFromContext(r.Context())
		assert.Equal(t, "u1", payload.UserID)
		w.WriteHeader(http.StatusNoContent)
	})))

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + accessToken, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong type", "Basic " + accessToken, http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(string(constants.AuthorizationHeaderKey), tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestKeyedTokenBucket(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b := NewKeyedTokenBucket(1, 2)
	b.now = func() time.Time { return now }

	require.True(t, b.Allow("1.1.1.1"))
	require.True(t, b.Allow("1.1.1.1"))
	require.False(t, b.Allow("1.1.1.1"))
	// 不同 key 各自計算
	require.True(t, b.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	require.True(t, b.Allow("1.1.1.1"))
	require.False(t, b.Allow("1.1.1.1"))

	// 閒置過久的 key 被清掉
	now = now.Add(time.Hour)
	b.Allow("3.3.3.3")
	b.mu.Lock()
	require.Len(t, b.visitors, 1)
	b.mu.Unlock()
}

func TestRateLimitMiddleware(t *testing.T) {
	b := NewKeyedTokenBucket(0.001, 1)
	h := NewRateLimitMiddleware(b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := func(addr string) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}
	require.Equal(t, http.StatusOK, req("10.0.0.1:5000"))
	require.Equal(t, http.StatusTooManyRequests, req("10.0.0.1:5001"))
	require.Equal(t, http.StatusOK, req("10.0.0.2:5000"))
}

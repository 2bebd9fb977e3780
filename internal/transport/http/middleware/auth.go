package httpmw

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"

	HeaderUserID = "X-User-ID"
)

// TokenVerifier достаёт id пользователя из access-токена.
type TokenVerifier interface {
	UserID(token string) (int64, error)
}

// Auth: аутентификация по заголовкам.
// С verifier'ом требуется Bearer-токен, без него доверяем X-User-ID от gateway'я.
func Auth(v TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(v, false)
}

// StreamAuth: то же, но ещё принимает ?access_token= / ?user_id=.
// Только для websocket'а: браузер не умеет ставить заголовки на upgrade.
func StreamAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(v, true)
}

func authenticate(v TokenVerifier, fromQuery bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				uid int64
				err error
			)
			if v != nil {
				token := bearer(r, fromQuery)
				if token == "" {
					unauthorized(w, "missing bearer token")
					return
				}
				uid, err = v.UserID(token)
				if err != nil {
					L(r.Context()).Debug("token rejected", "err", err)
					unauthorized(w, "invalid access token")
					return
				}
			} else {
				raw := r.Header.Get(HeaderUserID)
				if raw == "" && fromQuery {
					raw = r.URL.Query().Get("user_id")
				}
				if raw == "" {
					unauthorized(w, "missing "+HeaderUserID)
					return
				}
				uid, err = strconv.ParseInt(raw, 10, 64)
				if err != nil || uid <= 0 {
					unauthorized(w, "invalid "+HeaderUserID+" (must be positive int64)")
					return
				}
			}

			ctx := WithUserID(r.Context(), uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(r *http.Request, fromQuery bool) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") && len(auth) > 7 {
		return strings.TrimSpace(auth[7:])
	}
	if !fromQuery {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

func WithUserID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, uid)
}

func UserIDFromCtx(ctx context.Context) int64 {
	if v := ctx.Value(ctxKeyUserID); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/jwt"
)

// Principal is the authenticated identity attached to every request by
// AuthMiddleware. Every core operation resolves it before touching a store.
type Principal struct {
	UserID    uint
	Username  string
	Superuser bool
}

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap turns an error-returning handler into http.Handler, translating the
// apperr kinds into transport status codes. Anything unrecognized is a 500;
// store errors must be translated by the service layer before they get here.
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperr.ErrUnauthorized):
			code = http.StatusUnauthorized
		case errors.Is(err, apperr.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, apperr.ErrValidation):
			code = http.StatusBadRequest
		case errors.Is(err, apperr.ErrConflict):
			code = http.StatusConflict
		}
		WriteJSON(w, map[string]any{"error": err.Error()}, code)
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		return t, apperr.Validation("invalid json body")
	}
	return t, nil
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Stable string key so multiple linked copies of the package agree.
var ctxPrincipalKey = "httpx.principal"

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "missing bearer"}, http.StatusUnauthorized)
			return
		}
		tok := strings.TrimSpace(h[7:])
		uid, name, su, err := jwt.ParseAccess(tok)
		if err != nil || uid == 0 {
			WriteJSON(w, map[string]any{"error": "unauthorized", "reason": "bad token"}, http.StatusUnauthorized)
			return
		}
		p := Principal{UserID: uid, Username: name, Superuser: su}
		ctx := context.WithValue(r.Context(), ctxPrincipalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func PrincipalFromCtx(r *http.Request) (Principal, error) {
	p, _ := r.Context().Value(ctxPrincipalKey).(Principal)
	if p.UserID == 0 {
		return Principal{}, apperr.ErrUnauthorized
	}
	return p, nil
}

// WithPrincipal returns a request carrying the given principal, for tests
// and internal dispatch.
func WithPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxPrincipalKey, p))
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// PathID parses a numeric path value; 0 means missing or malformed.
func PathID(r *http.Request, key string) uint {
	n, err := strconv.ParseUint(r.PathValue(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	"github.com/gorilla/mux"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// CallerResolver extracts the authenticated identity from a request. Token
// validation happens upstream; the service only trusts what the gateway forwards.
type CallerResolver interface {
	Resolve(r *http.Request) (domain.Caller, error)
}

// HeaderCallerResolver reads the identity from X-User-ID and X-User-Role.
type HeaderCallerResolver struct{}

func (HeaderCallerResolver) Resolve(r *http.Request) (domain.Caller, error) {
	rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	rawRole := strings.TrimSpace(r.Header.Get(HeaderUserRole))
	if rawID == "" || rawRole == "" {
		return domain.Caller{}, domain.NewUnauthenticatedError("Authentication required")
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Caller{}, domain.NewUnauthenticatedError("Invalid caller identity")
	}
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return domain.Caller{}, domain.NewUnauthenticatedError("Invalid caller identity")
	}

	return domain.Caller{UserID: userID, Role: role}, nil
}

// Authenticate rejects requests without a resolvable caller with 401.
func Authenticate(resolver CallerResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolver.Resolve(r)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// WithCaller is used by tests and internal callers that bypass Authenticate.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

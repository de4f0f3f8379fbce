package httpx

import (
	"context"

	"github.com/aussiebroadwan/docit/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyUsername ctxKey = "username"
	CtxKeyClaims   ctxKey = "claims"
)

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// UserIDFromContext returns the authenticated user id set by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(int64)
	return id, ok && id > 0
}

func UsernameFromContext(ctx context.Context) string {
	s, _ := ctx.Value(CtxKeyUsername).(string)
	return s
}

func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

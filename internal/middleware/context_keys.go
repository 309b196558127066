package middleware

import "context"

const (
	userIDCtxKey    = contextKey("userID")
	companyIDCtxKey = contextKey("companyID")
	branchIDCtxKey  = contextKey("branchID")
)

// GetUserIDFromCtx retrieves the authenticated user's ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDCtxKey).(string)
	return v, ok && v != ""
}

// GetCompanyIDFromCtx retrieves the caller's company (tenant) ID from the
// context. An empty value with ok=true means a legacy single-tenant caller.
func GetCompanyIDFromCtx(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(companyIDCtxKey).(string)
	return v, ok
}

// GetBranchIDFromCtx retrieves the caller's branch ID from the context.
func GetBranchIDFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(branchIDCtxKey).(string)
	return v
}

// WithIdentity returns a context carrying the given identity values. It is
// used by the auth middleware and by tests that bypass it.
func WithIdentity(ctx context.Context, userID, companyID, branchID string) context.Context {
	ctx = context.WithValue(ctx, userIDCtxKey, userID)
	ctx = context.WithValue(ctx, companyIDCtxKey, companyID)
	ctx = context.WithValue(ctx, branchIDCtxKey, branchID)
	return ctx
}

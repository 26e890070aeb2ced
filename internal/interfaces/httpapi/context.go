package httpapi

import (
	"context"
)

type contextKey string

const requestInfoContextKey contextKey = "request_info"

// requestInfo is filled while a request travels through the router so the
// logging middleware can report the matched route.
type requestInfo struct {
	route    string
	clientIP string
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoContextKey, info)
}

func requestInfoFromContext(ctx context.Context) (*requestInfo, bool) {
	info, ok := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info, ok && info != nil
}

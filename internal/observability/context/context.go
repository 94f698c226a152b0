package context

import (
	stdcontext "context"
	"strings"
)

type requestIDKey struct{}
type storeIDKey struct{}
type actorIDKey struct{}

// WithRequestID stores the request correlation id.
func WithRequestID(ctx stdcontext.Context, requestID string) stdcontext.Context {
	return stdcontext.WithValue(ctx, requestIDKey{}, strings.TrimSpace(requestID))
}

func RequestIDFromContext(ctx stdcontext.Context) string {
	return stringValue(ctx, requestIDKey{})
}

// WithStoreID stores the store the request is scoped to.
func WithStoreID(ctx stdcontext.Context, storeID string) stdcontext.Context {
	return stdcontext.WithValue(ctx, storeIDKey{}, strings.TrimSpace(storeID))
}

func StoreIDFromContext(ctx stdcontext.Context) string {
	return stringValue(ctx, storeIDKey{})
}

// WithActorID stores the authenticated user id for log correlation.
func WithActorID(ctx stdcontext.Context, actorID string) stdcontext.Context {
	return stdcontext.WithValue(ctx, actorIDKey{}, strings.TrimSpace(actorID))
}

func ActorIDFromContext(ctx stdcontext.Context) string {
	return stringValue(ctx, actorIDKey{})
}

func stringValue(ctx stdcontext.Context, key any) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(key).(string)
	return value
}

package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the per-request identity attached by the auth middleware.
type RequestData struct {
	TokenString string
	ProfileID   uuid.UUID
	Role        domain.Role
	RequestID   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package bus

import (
	"context"

	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
)

// Bus fans SSE messages out across server instances. When it is not
// configured the hub broadcasts locally only.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

package services

import (
	"context"

	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
	"github.com/gracefieldhq/celldesk-backend/internal/realtime/bus"
)

// SSEEmitter decouples event producers from the delivery path. With a single
// instance events go straight to the local hub; with redis configured they
// are published and every instance's forwarder feeds its own hub.
type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

type HubEmitter struct{ Hub *realtime.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	e.Hub.Broadcast(msg)
}

type RedisEmitter struct{ Bus bus.Bus }

func (e *RedisEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	_ = e.Bus.Publish(ctx, msg)
}

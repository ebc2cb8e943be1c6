package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/pkg/ctxutil"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

const TopicPaymentCompleted = "payment.completed"

// PaymentCompleted is published when a payment callback confirms a payment.
type PaymentCompleted struct {
	PaymentID      uuid.UUID
	RegistrationID uuid.UUID
	Amount         int64
}

type Handler func(ctx context.Context, event any)

// Bus is a small in-process pub/sub used to decouple feature domains. Handler
// panics are recovered so one listener cannot take down the publisher.
type Bus struct {
	mu       sync.RWMutex
	log      *logger.Logger
	handlers map[string][]Handler
}

func NewBus(baseLog *logger.Logger) *Bus {
	return &Bus{
		log:      baseLog.With("component", "EventBus"),
		handlers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

func (b *Bus) Publish(ctx context.Context, topic string, event any) {
	ctx = ctxutil.Default(ctx)
	b.mu.RLock()
	subs := make([]Handler, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("Event handler panicked", "topic", topic, "panic", r)
				}
			}()
			h(ctx, event)
		}()
	}
}

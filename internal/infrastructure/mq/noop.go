package mq

import "go.uber.org/zap"

// Noop stands in for the publisher when RabbitMQ is not configured.
type Noop struct {
	log *zap.Logger
}

func NewNoop(logger *zap.Logger) *Noop { return &Noop{log: logger} }

func (n *Noop) Publish(e Event) {
	n.log.Debug("mq disabled, event not published",
		zap.String("action", e.Method),
		zap.Int64("user_id", e.UserID),
	)
}

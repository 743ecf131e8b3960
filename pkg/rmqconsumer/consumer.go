package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-admin-api/config"
	"user-admin-api/internal/infrastructure/mq"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	ownConn    bool
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

// auditEvent is the part of a lifecycle event the audit log records.
type auditEvent struct {
	ID     string `json:"event_id"`
	Action string `json:"event_action"`
	UserID int64  `json:"user_id"`
	User   struct {
		Username     string `json:"username"`
		IsAdmin      bool   `json:"is_admin"`
		IsSuperadmin bool   `json:"is_superadmin"`
	} `json:"user_payload"`
}

// New reuses conn when it is not nil; otherwise Connect dials its own.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	if c.conn == nil || c.conn.IsClosed() {
		c.conn, err = amqp091.Dial(dsn)
		if err != nil {
			c.conn = nil
			return fmt.Errorf("amqp dial: %w", err)
		}
		c.ownConn = true
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		if c.ownConn {
			_ = c.conn.Close()
		}
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range mq.RoutingKeys {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			_ = c.chConsume.Close()
			if c.ownConn {
				_ = c.conn.Close()
			}
			return
		}
	}
}

func actionFor(routingKey string) (string, bool) {
	switch routingKey {
	case http.MethodPost:
		return "UserCreated", true
	case http.MethodPut:
		return "UserUpdated", true
	case http.MethodDelete:
		return "UserDeleted", true
	}
	return "", false
}

// delivery writes one audit log line per lifecycle event.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	action, ok := actionFor(msg.RoutingKey)
	if !ok {
		return fmt.Errorf("unknown routing key %q", msg.RoutingKey)
	}

	var e auditEvent
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		return fmt.Errorf("decode %s event: %w", action, err)
	}

	c.log.Info("user audit",
		zap.String("action", action),
		zap.String("event_id", e.ID),
		zap.Int64("user_id", e.UserID),
		zap.String("username", e.User.Username),
		zap.Bool("is_admin", e.User.IsAdmin),
		zap.Bool("is_superadmin", e.User.IsSuperadmin),
	)

	return nil
}

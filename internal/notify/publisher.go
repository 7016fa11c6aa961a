// Package notify publishes order lifecycle events to RabbitMQ so downstream
// consumers (kitchen displays, customer notifications) can react without
// polling. Publishing is optional: a nil *Publisher is a no-op sink.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mominahmadrao/SmartResturantSystem/internal/order"
)

const exchange = "orders_topic"

type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type createdEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount string    `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type statusChangedEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	RiderID     string    `json:"rider_id,omitempty"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (p *Publisher) OrderCreated(ctx context.Context, o *order.Order) error {
	if p == nil {
		return nil
	}
	return p.publish(ctx, "orders.created", createdEvent{
		Event:       "order.created",
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	})
}

func (p *Publisher) StatusChanged(ctx context.Context, o *order.Order, old order.Status) error {
	if p == nil {
		return nil
	}
	ev := statusChangedEvent{
		Event:       "order.status_changed",
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		OldStatus:   string(old),
		NewStatus:   string(o.Status),
		ChangedAt:   time.Now().UTC(),
	}
	if o.AssignedRiderID != nil {
		ev.RiderID = *o.AssignedRiderID
	}
	return p.publish(ctx, "orders.status."+string(o.Status), ev)
}

func (p *Publisher) publish(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

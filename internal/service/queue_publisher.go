// Package queue_publisher emits visit events toward the background
// consumer.  The public resolver is the only caller and always fires it
// from a goroutine, so nothing here may block a page render: failures are
// logged, returned and otherwise ignored.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sellerapp/storefront-api/internal/queue"
)

// Publisher sends events to the broker at the configured URL.  Traffic is
// one small message per storefront view, so each publish opens a fresh
// connection instead of maintaining a channel pool.
type Publisher struct {
	url string
}

// New returns a Publisher for the given AMQP URL.
func New(url string) *Publisher {
	return &Publisher{url: url}
}

// StoreVisited publishes one visit event onto the store.visited queue as a
// persistent JSON message.  The queue is declared durable on every publish
// so the publisher works even when it starts before the consumer.
func (p *Publisher) StoreVisited(ctx context.Context, event queue.StoreVisitedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("visit-publisher: dial: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("visit-publisher: channel: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.VisitQueue, true, false, false, false, nil); err != nil {
		log.Printf("visit-publisher: declare: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("visit-publisher: marshal: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", queue.VisitQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Printf("visit-publisher: publish: %v", err)
	}
	return err
}

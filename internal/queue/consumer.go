// Package queue contains the background consumer that listens to the
// store.visited queue and appends rows to the store_visits table.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sellerapp/storefront-api/internal/metrics"
	"github.com/sellerapp/storefront-api/internal/model"
	"github.com/sellerapp/storefront-api/internal/repository"
)

// StartVisitConsumer connects to RabbitMQ, declares the store.visited
// queue (durable), and starts consuming messages.  Each message becomes one
// row in store_visits.  The function runs a reconnect loop with capped
// backoff and keeps running indefinitely; processing errors are logged and
// the offending message is rejected without requeue so the server keeps
// operating.
func StartVisitConsumer(url string, visits *repository.VisitRepo, m *metrics.PlatformMetrics) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("visit-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, visits, m); err != nil {
			log.Printf("visit-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, visits *repository.VisitRepo, m *metrics.PlatformMetrics) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("visit-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(VisitQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(VisitQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, visits); err != nil {
			log.Printf("visit-consumer: handle message failed: %v", err)
			if m != nil {
				m.VisitEventsDropped.Inc()
			}
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		if m != nil {
			m.VisitEventsPersisted.Inc()
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, visits *repository.VisitRepo) error {
	var ev StoreVisitedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.StoreID == 0 {
		return errors.New("missing store_id")
	}
	at, err := time.Parse(time.RFC3339, ev.VisitedAt)
	if err != nil {
		at = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := visits.Record(ctx, model.StoreVisit{StoreID: ev.StoreID, CreatedAt: at}); err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures
// without interrupting the main request flow: an unreachable broker
// never fails a listing or a moderation decision.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/lost-and-found/internal/queue"
)

// PublishItemReported publishes an ItemReportedEvent to the
// item.reported queue.  Messages are marked persistent so they
// survive broker restarts.
func PublishItemReported(ctx context.Context, event q.ItemReportedEvent) error {
	return publish(ctx, q.ItemReportedQueue, event)
}

// PublishClaimResolved publishes a ClaimResolvedEvent to the
// claim.resolved queue.
func PublishClaimResolved(ctx context.Context, event q.ClaimResolvedEvent) error {
	return publish(ctx, q.ClaimResolvedQueue, event)
}

// publish declares the durable queue (idempotent) and sends one JSON
// message on the default exchange.  The function never panics; any
// error is logged and returned.
func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}

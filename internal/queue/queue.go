// Package queue moves weather payloads between the publisher and
// subscriber workers over RabbitMQ. The main queue dead-letters rejected
// messages into a DLQ instead of retrying them.
package queue

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// MainQueue carries weather payloads to subscribers.
	MainQueue = "weather-data"

	// DeadQueue collects messages whose processing was rejected.
	DeadQueue = "weather-data.dlq"
)

// Client is a thin RabbitMQ client. Connections are opened per call on the
// publish side; Consume holds one connection for the lifetime of the loop.
type Client struct {
	url string
}

func NewClient(url string) *Client {
	return &Client{url: url}
}

// declareQueues sets up the DLQ and the main queue with dead-letter routing.
// Both are durable; declaration is idempotent.
func declareQueues(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(DeadQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", DeadQueue, err)
	}
	_, err := ch.QueueDeclare(MainQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": DeadQueue,
	})
	if err != nil {
		return fmt.Errorf("declare %s: %w", MainQueue, err)
	}
	return nil
}

// Publish sends one persistent JSON message to the named queue.
func (c *Client) Publish(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("queue dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("queue channel: %w", err)
	}
	defer ch.Close()

	if err := declareQueues(ch); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume reads the main queue until ctx is done or the connection drops.
// A handler error rejects the message without requeueing, which routes it
// to the DLQ; success acknowledges it.
func (c *Client) Consume(ctx context.Context, handler func(body []byte) error) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("queue dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("queue channel: %w", err)
	}
	defer ch.Close()

	if err := declareQueues(ch); err != nil {
		return err
	}

	msgs, err := ch.Consume(MainQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	log.Printf("queue: listening on %s", MainQueue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("queue channel closed")
			}

			if err := handler(msg.Body); err != nil {
				log.Printf("queue: message rejected, dead-lettering: %v", err)
				if nerr := msg.Nack(false, false); nerr != nil {
					log.Printf("queue: nack failed: %v", nerr)
				}
				continue
			}
			if aerr := msg.Ack(false); aerr != nil {
				log.Printf("queue: ack failed: %v", aerr)
			}
		}
	}
}

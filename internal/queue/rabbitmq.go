package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"foodshare-be/internal/mailer"
)

// RabbitMQClient publishes and consumes email tasks over a durable
// RabbitMQ queue. It implements both TaskPublisher and TaskConsumer.
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewRabbitMQClient connects to RabbitMQ and declares the email queue.
// Declaring is idempotent: the queue is created if missing and left
// alone if it already exists.
func NewRabbitMQClient(amqpURL, queueName string, logger *slog.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable - survive a broker restart
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: ch,
		queue:   q,
		logger:  logger,
	}, nil
}

// Close closes the RabbitMQ channel and connection
func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("error closing RabbitMQ connection: %w", err)
		}
	}
	return nil
}

// PublishEmailTask publishes an email task to the queue
func (c *RabbitMQClient) PublishEmailTask(ctx context.Context, task mailer.EmailTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal email task: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish email task: %w", err)
	}

	c.logger.Debug("email task published", "queue", c.queue.Name, "to", task.To)
	return nil
}

// StartConsuming consumes email tasks and hands them to handler. A
// handler error requeues the task; a malformed message is dropped so a
// bad payload cannot wedge the queue.
func (c *RabbitMQClient) StartConsuming(ctx context.Context, handler func(context.Context, mailer.EmailTask) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack (acked manually after the handler succeeds)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for email tasks", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var task mailer.EmailTask
				if err := json.Unmarshal(msg.Body, &task); err != nil {
					c.logger.Error("dropping malformed email task", "error", err)
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("error nacking malformed task", "error", err)
					}
					continue
				}

				if err := handler(ctx, task); err != nil {
					c.logger.Error("email task failed, requeueing", "to", task.To, "error", err)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("error nacking task", "error", err)
					}
					continue
				}

				if err := msg.Ack(false); err != nil {
					c.logger.Error("error acking task", "error", err)
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping consumer")
				return
			}
		}
	}()

	return nil
}

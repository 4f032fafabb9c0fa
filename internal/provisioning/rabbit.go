package provisioning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const (
	queueName = "tenant_provision_queue"
	dlqName   = "tenant_provision_dlq"
)

// Job is the payload published at signup and consumed by the worker pool.
type Job struct {
	TenantID  string    `json:"tenant_id"`
	AdminID   uint      `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RabbitClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	URL     string
}

func NewRabbitClient(url string) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	r := &RabbitClient{conn: conn, channel: ch, URL: url}
	if err := r.declareQueues(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *RabbitClient) GetConnection() *amqp.Connection {
	return r.conn
}

// declareQueues sets up the durable provisioning queue with a DLQ for
// poison jobs.
func (r *RabbitClient) declareQueues() error {
	_, err := r.channel.QueueDeclare(
		dlqName,
		true, false, false, false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqName,
	}
	_, err = r.channel.QueueDeclare(
		queueName,
		true, false, false, false,
		args,
	)
	if err != nil {
		return fmt.Errorf("declare provision queue: %w", err)
	}
	return nil
}

// PublishJob enqueues a provisioning job for a freshly signed-up tenant.
func (r *RabbitClient) PublishJob(job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	err = r.channel.Publish(
		"",        // default exchange
		queueName, // routing key (queue name)
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish provision job for tenant %s: %w", job.TenantID, err)
	}
	return nil
}

// Close cleans up connection and channel
func (r *RabbitClient) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}

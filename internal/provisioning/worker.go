package provisioning

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/metrics"
)

// WorkerPool consumes provisioning jobs and seeds tenant defaults.
// Jobs are acked only after seeding commits; failures go to the DLQ.
type WorkerPool struct {
	db      *gorm.DB
	conn    *amqp.Connection
	ch      *amqp.Channel
	workers int
	stopCh  chan struct{}
}

func NewWorkerPool(db *gorm.DB, rabbit *RabbitClient, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 2
	}
	return &WorkerPool{
		db:      db,
		conn:    rabbit.GetConnection(),
		workers: workerCount,
		stopCh:  make(chan struct{}),
	}
}

func (wp *WorkerPool) Start() error {
	ch, err := wp.conn.Channel()
	if err != nil {
		return fmt.Errorf("provision worker: failed to open channel: %w", err)
	}
	wp.ch = ch

	// Spread jobs across workers instead of bulk-delivering to one.
	if err := ch.Qos(wp.workers, 0, false); err != nil {
		return fmt.Errorf("provision worker: failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		queueName,
		"provision-worker",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("provision worker: failed to start consuming: %w", err)
	}

	for i := 0; i < wp.workers; i++ {
		go wp.loop(msgs)
	}
	log.Printf("[Provision] Started %d workers", wp.workers)
	return nil
}

func (wp *WorkerPool) loop(msgs <-chan amqp.Delivery) {
	metrics.WorkerActive.Inc()
	defer metrics.WorkerActive.Dec()

	for {
		select {
		case <-wp.stopCh:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := wp.handle(msg); err != nil {
				log.Printf("[Provision] Job failed: %v", err)
				metrics.ProvisionJobs.WithLabelValues("failed").Inc()
				_ = msg.Reject(false) // send to DLQ
				continue
			}
			_ = msg.Ack(false)
			metrics.ProvisionJobs.WithLabelValues("ok").Inc()
		}
	}
}

func (wp *WorkerPool) handle(msg amqp.Delivery) error {
	var job Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		return fmt.Errorf("malformed job payload: %w", err)
	}
	if job.TenantID == "" {
		return fmt.Errorf("job missing tenant_id")
	}

	if err := SeedTenantDefaults(wp.db, job.TenantID); err != nil {
		return err
	}

	log.Printf("[Provision] Tenant %s provisioned", job.TenantID)
	return nil
}

// Stop shuts the consumers down. Closing the AMQP channel ends the
// deliveries stream, so workers parked on it exit too.
func (wp *WorkerPool) Stop() {
	close(wp.stopCh)
	if wp.ch != nil {
		_ = wp.ch.Close()
	}
}

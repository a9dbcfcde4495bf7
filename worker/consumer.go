package worker

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/services"
)

const reconnectDelay = 5 * time.Second

// Consumer drains collector messages from RabbitMQ and stores them through
// the weather service. It reconnects forever until Stop is called.
type Consumer struct {
	cfg     *config.Config
	weather services.InterfaceWeatherService
	done    chan struct{}
}

// NewConsumer creates a consumer for the configured ingestion queue.
func NewConsumer(cfg *config.Config, weather services.InterfaceWeatherService) *Consumer {
	return &Consumer{
		cfg:     cfg,
		weather: weather,
		done:    make(chan struct{}),
	}
}

// Start blocks, consuming the queue and reconnecting on broker failures.
// Call it from its own goroutine.
func (c *Consumer) Start() {
	config.Info("Worker: consuming queue %q at %s", c.cfg.QueueName, c.cfg.MaskedRabbitMQURL())

	for {
		select {
		case <-c.done:
			return
		default:
		}

		if err := c.consume(); err != nil {
			config.Error("Worker: connection lost: %v (retrying in %s)", err, reconnectDelay)
		}

		select {
		case <-c.done:
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// Stop makes Start return after the current delivery is handled.
func (c *Consumer) Stop() {
	close(c.done)
}

// consume opens one connection/channel pair and processes deliveries until
// the channel closes or Stop is called.
func (c *Consumer) consume() error {
	conn, err := amqp.Dial(c.cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(
		c.cfg.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	// One unacked message at a time; ingestion is not the bottleneck.
	if err := ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	config.Info("Worker: connected, waiting for messages")

	for {
		select {
		case <-c.done:
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.handleDelivery(delivery)
		}
	}
}

// handleDelivery transforms and stores one message. Malformed payloads are
// acked and dropped; persistence failures are requeued so no observation is
// lost to a transient database outage.
func (c *Consumer) handleDelivery(delivery amqp.Delivery) {
	record, err := Transform(delivery.Body)
	if err != nil {
		config.Warning("Worker: dropping malformed message: %v", err)
		delivery.Ack(false)
		return
	}

	if err := c.weather.Create(record); err != nil {
		config.Error("Worker: store failed for %s: %v (requeueing)", record.Location.City, err)
		delivery.Nack(false, true)
		return
	}

	config.Info("Worker: stored observation for %s (%.1f°C)", record.Location.City, record.Current.Temperature)
	delivery.Ack(false)
}

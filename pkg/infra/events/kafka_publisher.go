package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustImage/pkg/domain/moderation"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTopic = "trustimage.takedowns"

	flushTimeoutMs = 5000
)

type KafkaConfig struct {
	Host  string `mapstructure:"host"`
	Port  string `mapstructure:"port"`
	Topic string `mapstructure:"topic"`
}

func (c KafkaConfig) Validate() error {
	if c.Host == "" {
		return errors.New("kafka host is required")
	}
	if c.Port == "" {
		return errors.New("kafka port is required")
	}
	return nil
}

type producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

type kafkaPublisher struct {
	logger   *logrus.Logger
	topic    string
	producer producer
}

func NewKafkaPublisher(logger *logrus.Logger, cfg KafkaConfig) (moderation.EventPublisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kafka config: %w", err)
	}
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return newKafkaPublisher(logger, cfg.Topic, p), nil
}

func newKafkaPublisher(logger *logrus.Logger, topic string, p producer) *kafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafkaPublisher{
		logger:   logger,
		topic:    topic,
		producer: p,
	}
}

// Publish blocks until the broker acknowledges the event or ctx is done.
func (p *kafkaPublisher) Publish(ctx context.Context, evt *moderation.TakedownEvent) error {
	if p.producer == nil {
		return errors.New("kafka producer is not initialized")
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal takedown event: %w", err)
	}
	deliveryChan := make(chan kafka.Event, 1)
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(evt.Fingerprint),
		Value:          data,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivery failed: %w", m.TopicPartition.Error)
		}
		p.logger.WithFields(logrus.Fields{
			"topic":       p.topic,
			"fingerprint": evt.Fingerprint,
			"job_id":      evt.JobID,
		}).Debug("takedown event delivered")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *kafkaPublisher) Close() {
	if p.producer != nil {
		p.producer.Flush(flushTimeoutMs)
		p.producer.Close()
	}
}

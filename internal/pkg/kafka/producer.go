package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/image-text-composer/config"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const dialTimeout = 10 * time.Second

// Producer hands export tasks to whoever renders them.
type Producer interface {
	Publish(ctx context.Context, task entity.ExportTask) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer connects to the configured brokers. When none is reachable it
// returns a producer that renders exports in-process with local.
func NewProducer(cfg config.KafkaConfig, local processor.ExportProcessor) Producer {
	if len(cfg.Brokers) == 0 {
		logrus.Warn("No Kafka brokers configured, exports are processed in-process")
		return NewLocalProducer(local)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		logrus.WithError(err).Warn("Kafka connection failed, exports are processed in-process")
		return NewLocalProducer(local)
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).Debug("Could not create topic (might already exist)")
	}

	logrus.WithField("brokers", cfg.Brokers).Info("Connected to Kafka")

	return &kafkaProducer{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *kafkaProducer) Publish(ctx context.Context, task entity.ExportTask) error {
	value, err := json.Marshal(task)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.ExportID),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to write message to Kafka")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"topic":     p.topic,
		"export_id": task.ExportID,
	}).Info("Export task published")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

type localProducer struct {
	processor processor.ExportProcessor
}

func NewLocalProducer(p processor.ExportProcessor) Producer {
	return &localProducer{processor: p}
}

func (p *localProducer) Publish(_ context.Context, task entity.ExportTask) error {
	if p.processor == nil {
		return errors.New("no export processor configured")
	}

	// The request context ends with the response, the render must not.
	go func() {
		if err := p.processor.Process(context.Background(), task); err != nil {
			logrus.WithError(err).WithField("export_id", task.ExportID).Error("Processing failed")
		}
	}()
	return nil
}

func (p *localProducer) Close() error {
	return nil
}

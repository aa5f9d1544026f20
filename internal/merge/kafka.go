package merge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/you/staticman-prhook/internal/infra"
)

// MergeJob is the message published for the merge processing worker.
type MergeJob struct {
	Parameters json.RawMessage `json:"parameters"`
	ConfigPath string          `json:"configPath"`
	Fields     map[string]any  `json:"fields"`
	Options    map[string]any  `json:"options"`
}

// Producer is the subset of *kafka.Producer used to publish jobs.
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

var _ Processor = (*KafkaProcessor)(nil)

// KafkaProcessor publishes merge jobs to a topic and waits for the broker ack.
type KafkaProcessor struct {
	producer Producer
	topic    string
}

func NewKafkaProcessor(p Producer, topic string) *KafkaProcessor {
	return &KafkaProcessor{producer: p, topic: topic}
}

func NewProducer(brokers string) (*kafka.Producer, error) {
	return kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
	})
}

func (k *KafkaProcessor) Open(ctx context.Context, parameters json.RawMessage, configPath string) (Session, error) {
	if configPath == "" {
		return nil, ErrNoConfigPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &kafkaSession{proc: k, parameters: parameters, configPath: configPath}, nil
}

type kafkaSession struct {
	proc       *KafkaProcessor
	parameters json.RawMessage
	configPath string

	mu     sync.Mutex
	closed bool
}

func (s *kafkaSession) ProcessMerge(ctx context.Context, fields, options map[string]any) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}

	value, err := json.Marshal(MergeJob{
		Parameters: s.parameters,
		ConfigPath: s.configPath,
		Fields:     fields,
		Options:    options,
	})
	if err != nil {
		return err
	}

	topic := s.proc.topic
	deliveryChan := make(chan kafka.Event, 1)
	err = s.proc.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(s.configPath),
		Value:          value,
	}, deliveryChan)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		switch ev := e.(type) {
		case *kafka.Message:
			return ev.TopicPartition.Error
		case kafka.Error:
			return ev
		default:
			return fmt.Errorf("unexpected delivery event: %v", e)
		}
	}
}

func (s *kafkaSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// LogEvents drains producer-level events so the event channel never fills up.
func LogEvents(p *kafka.Producer, log infra.Logger) {
	for e := range p.Events() {
		switch ev := e.(type) {
		case kafka.Error:
			log.Errorf("kafka: %v", ev)
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				log.Errorf("kafka delivery: %v", ev.TopicPartition.Error)
			}
		}
	}
}

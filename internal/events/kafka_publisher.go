package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go-file-share/pkg/config"
	"go-file-share/pkg/logger"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaPublisher 将事件写入 <topic_prefix>_<实体> 主题
type KafkaPublisher struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	kConfig := sarama.NewConfig()
	kConfig.Producer.RequiredAcks = sarama.WaitForAll
	kConfig.Producer.Return.Successes = true
	kConfig.Producer.Retry.Max = 3
	kConfig.Version = sarama.V2_8_0_0

	producer, err := sarama.NewSyncProducer(cfg.Brokers, kConfig)
	if err != nil {
		logger.L.Error("Failed to start Kafka producer", zap.Error(err))
		return nil, fmt.Errorf("failed to start Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.TopicPrefix), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topicPrefix: topicPrefix}
}

// 构建Kafka主题名称，例如 fileshare_file
func (p *KafkaPublisher) buildTopicName(eventType string) string {
	entity := eventType
	if i := strings.IndexByte(eventType, '.'); i >= 0 {
		entity = eventType[:i]
	}
	return fmt.Sprintf("%s_%s", p.topicPrefix, entity)
}

// 同一实体的事件使用相同的 key，保证分区内有序
func partitionKey(event Event) string {
	switch {
	case event.FileID != 0:
		return "file-" + strconv.FormatUint(uint64(event.FileID), 10)
	case event.GroupID != 0:
		return "group-" + strconv.FormatUint(uint64(event.GroupID), 10)
	default:
		return "user-" + strconv.FormatUint(uint64(event.UserID), 10)
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.buildTopicName(event.Type),
		Key:   sarama.StringEncoder(partitionKey(event)),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.L.Error("Failed to send event to Kafka", zap.String("type", event.Type), zap.Error(err))
		return fmt.Errorf("failed to send event to Kafka: %w", err)
	}

	logger.L.Debug("Event sent to Kafka",
		zap.String("topic", msg.Topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		logger.L.Error("Failed to close Kafka producer", zap.Error(err))
		return err
	}
	return nil
}

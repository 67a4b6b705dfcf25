package kafka

import (
	"context"
	"encoding/json"
	"time"

	wbfkafka "github.com/wb-go/wbf/kafka"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/config"
	"github.com/wolhaven/atelier/internal/dto"
)

type Producer struct {
	client *wbfkafka.Producer
	topic  string
}

func NewProducer(cfg *config.KafkaConfig) *Producer {
	client := wbfkafka.NewProducer(cfg.Brokers, cfg.Topic)
	zlog.Logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("Kafka producer initialized")
	return &Producer{
		client: client,
		topic:  cfg.Topic,
	}
}

// PublishThumbnailTask enqueues thumbnail generation for a stored object.
func (p *Producer) PublishThumbnailTask(ctx context.Context, objectPath string) error {
	task := dto.ThumbnailTask{ObjectPath: objectPath}

	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	strategy := retry.Strategy{
		Attempts: 3,
		Delay:    2 * time.Second,
		Backoff:  2.0,
	}
	if err := p.client.SendWithRetry(ctx, strategy, nil, data); err != nil {
		zlog.Logger.Error().Err(err).Str("object_path", objectPath).Msg("failed to publish thumbnail task")
		return err
	}

	zlog.Logger.Info().Str("object_path", objectPath).Msg("thumbnail task published")
	return nil
}

func (p *Producer) Close() error {
	if err := p.client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close Kafka producer")
		return err
	}
	return nil
}

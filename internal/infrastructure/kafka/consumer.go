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

type MessageHandler func(ctx context.Context, task *dto.ThumbnailTask) error

type Consumer struct {
	client  *wbfkafka.Consumer
	handler MessageHandler
	topic   string
}

func NewConsumer(cfg *config.KafkaConfig, handler MessageHandler) (*Consumer, error) {
	client := wbfkafka.NewConsumer(cfg.Brokers, cfg.Topic, cfg.GroupID)

	zlog.Logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Str("group_id", cfg.GroupID).
		Msg("Kafka consumer initialized")

	return &Consumer{
		client:  client,
		handler: handler,
		topic:   cfg.Topic,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	strategy := retry.Strategy{
		Attempts: 3,
		Delay:    2 * time.Second,
		Backoff:  2.0,
	}

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("Kafka consumer stopped")
			return nil
		default:
			msg, err := c.client.FetchWithRetry(ctx, strategy)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to fetch Kafka message")
				time.Sleep(time.Second)
				continue
			}

			var task dto.ThumbnailTask
			if err := json.Unmarshal(msg.Value, &task); err != nil {
				zlog.Logger.Error().Err(err).Bytes("msg", msg.Value).Msg("failed to unmarshal thumbnail task")
				continue
			}

			if task.ObjectPath == "" {
				zlog.Logger.Error().Msg("invalid thumbnail task: empty object path")
				continue
			}

			if err := c.handler(ctx, &task); err != nil {
				zlog.Logger.Error().Err(err).Str("object_path", task.ObjectPath).Msg("thumbnail task failed")
				continue
			}

			if err := c.client.Commit(ctx, msg); err != nil {
				zlog.Logger.Error().Err(err).Str("object_path", task.ObjectPath).Msg("failed to commit message")
				continue
			}

			zlog.Logger.Info().Str("object_path", task.ObjectPath).Msg("thumbnail task processed")
		}
	}
}

func (c *Consumer) Close() error {
	if err := c.client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close Kafka consumer")
		return err
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
)

const channelPrefix = "hs:features:"

type SignalService struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSignalService(redisClient *redis.Client, logger *zap.Logger) *SignalService {
	return &SignalService{
		rdb:    redisClient,
		logger: logger.Named("signal"),
	}
}

func Channel(kind string) string {
	return channelPrefix + kind
}

func (s *SignalService) Publish(ctx context.Context, event domain.FeatureEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, Channel(event.Kind), jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards events of the requested kinds to output until ctx ends.
// Each value received on request replaces the current subscription.
func (s *SignalService) Realtime(ctx context.Context, request <-chan []string, output chan<- domain.FeatureEvent) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()
	var current []string

	for {
		select {
		case <-ctx.Done():
			return
		case kinds, ok := <-request:
			if !ok {
				return
			}
			if len(current) > 0 {
				if err := pubsub.Unsubscribe(ctx, current...); err != nil {
					s.logger.Warn("unsubscribe failed", zap.Strings("channels", current), zap.Error(err))
				}
			}
			current = current[:0]
			for _, kind := range kinds {
				current = append(current, Channel(kind))
			}
			if len(current) == 0 {
				continue
			}
			if err := pubsub.Subscribe(ctx, current...); err != nil {
				s.logger.Error("subscribe failed", zap.Strings("channels", current), zap.Error(err))
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.FeatureEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.logger.Warn("malformed feature event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

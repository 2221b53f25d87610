package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
)

// Stream names consumed downstream.
const (
	ResultsStream       = "matches.results.basketball"
	VerificationsStream = "matches.verifications.basketball"
)

// RedisStreamPublisher announces finished matches on Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher wraps an existing Redis client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client}
}

// NewRedisPublisher creates a publisher with its own connection.
func NewRedisPublisher(redisURL string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStreamPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (p *RedisStreamPublisher) Close() error {
	return p.client.Close()
}

// PublishMatchResult announces a freshly processed match bundle.
func (p *RedisStreamPublisher) PublishMatchResult(ctx context.Context, bundle *pbp.Bundle) error {
	return p.publish(ctx, ResultsStream, map[string]interface{}{
		"match_id": bundle.MatchID,
	}, bundle)
}

// PublishVerification announces a verification report.
func (p *RedisStreamPublisher) PublishVerification(ctx context.Context, report *reconciliation.Report) error {
	return p.publish(ctx, VerificationsStream, map[string]interface{}{
		"match_id": report.MatchID,
		"clean":    report.Clean,
	}, report)
}

func (p *RedisStreamPublisher) publish(ctx context.Context, stream string, fields map[string]interface{}, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	fields["data"] = string(data)
	fields["timestamp"] = time.Now().Unix()

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: fields,
	}).Err()
}

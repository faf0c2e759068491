package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis caches oracle answers keyed by normalized query so repeated curated
// questions skip the round-trip. Misses are reported as errors; callers treat
// any error as a miss.
type IRedis interface {
	GetAnswer(ctx context.Context, query string) (string, error)
	SetAnswer(ctx context.Context, query string, answer string, expiration time.Duration) error
}

const answerKeyPrefix = "pawpal:answers:"

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func answerKey(query string) string {
	return answerKeyPrefix + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func (r *redisClient) GetAnswer(ctx context.Context, query string) (string, error) {
	key := answerKey(query)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting cached answer for key %s: %v", key, err))
		return "", err
	}

	return val, nil
}

func (r *redisClient) SetAnswer(ctx context.Context, query string, answer string, expiration time.Duration) error {
	key := answerKey(query)

	if err := r.client.Set(ctx, key, answer, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching answer for key %s: %v", key, err))
		return err
	}

	return nil
}

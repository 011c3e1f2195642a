package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"github.com/redis/go-redis/v9"
)

// AnalysisCache handles Redis operations for computed question metrics.
// Mongo stays the source of truth; the cache only skips recomputation
// on hot reads.
type AnalysisCache interface {
	GetAnalysis(ctx context.Context, questionID, method string) (*model.AnalysisData, error)
	SetAnalysis(ctx context.Context, questionID, method string, data *model.AnalysisData) error
	InvalidateQuestion(ctx context.Context, questionID, method string) error
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *analysisCache) analysisKey(questionID, method string) string {
	return fmt.Sprintf("q:%s:analysis:%s", questionID, method)
}

func (c *analysisCache) GetAnalysis(ctx context.Context, questionID, method string) (*model.AnalysisData, error) {
	data, err := c.client.Get(ctx, c.analysisKey(questionID, method)).Result()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var result model.AnalysisData
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *analysisCache) SetAnalysis(ctx context.Context, questionID, method string, data *model.AnalysisData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.analysisKey(questionID, method), payload, c.ttl).Err()
}

func (c *analysisCache) InvalidateQuestion(ctx context.Context, questionID, method string) error {
	return c.client.Del(ctx, c.analysisKey(questionID, method)).Err()
}

package services

import (
	"context"
	"encoding/json"
	"time"

	"haripg-http-service/config"

	"github.com/go-redis/redis/v8"
)

// 欠租列表的缓存键和有效期。扫描本身是纯函数，可随时重算，
// 缓存只是挡掉短时间内的重复计算。
const (
	dueListCacheKey = "rent:due_list"
	dueListCacheTTL = 60 * time.Second
)

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDueList(payload interface{}) error
	GetCachedDueList(dest interface{}) error
	InvalidateDueList() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheDueList 缓存一次欠租扫描的完整响应
func (s *RedisService) CacheDueList(payload interface{}) error {
	return s.Set(dueListCacheKey, payload, dueListCacheTTL)
}

// GetCachedDueList 读取缓存的欠租扫描结果，未命中时返回错误
func (s *RedisService) GetCachedDueList(dest interface{}) error {
	return s.Get(dueListCacheKey, dest)
}

// InvalidateDueList 在住户、收据或确认记录变化后清除缓存
func (s *RedisService) InvalidateDueList() error {
	return s.Delete(dueListCacheKey)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/logger"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "fg"

// key 命名空间，实际 key 形如 <prefix>:<namespace>:<parts...>
const (
	NamespaceAuth   = "auth"
	NamespaceReport = "report"
	NamespaceRate   = "rate"
)

var (
	redisClient *redis.Client
	keyPrefix   = defaultKeyPrefix
)

// InitRedis 初始化 Redis 客户端，未启用时仍会设置 key 前缀
func InitRedis(cfg *config.RedisConfig) error {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
	if cfg == nil {
		keyPrefix = defaultKeyPrefix
		return nil
	}
	keyPrefix = normalizePrefix(cfg.Prefix)
	if !cfg.Enabled {
		return nil
	}
	redisClient = redis.NewClient(clientOptions(cfg))
	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return defaultKeyPrefix
	}
	return prefix
}

// clientOptions 超时偏短，缓存与限流不应拖住请求
func clientOptions(cfg *config.RedisConfig) *redis.Options {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

// Close 关闭 Redis 客户端
func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Ping(ctx).Err()
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return redisClient != nil
}

// Client 获取 Redis 客户端，未启用时为 nil
func Client() *redis.Client {
	return redisClient
}

// Key 拼装带前缀的完整 key，空片段会被跳过
func Key(namespace string, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, keyPrefix)
	for _, part := range append([]string{namespace}, parts...) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return strings.Join(segments, ":")
}

// GetJSON 读取 JSON 缓存，内容损坏时删除该 key 并按未命中处理
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	raw, err := redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnw("cache_payload_corrupt", "key", key, "error", err)
		_ = redisClient.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存，ttl<=0 时不写入
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, key, payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	if !Enabled() || len(keys) == 0 {
		return nil
	}
	return redisClient.Del(ctx, keys...).Err()
}

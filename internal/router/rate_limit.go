package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/freshguard/internal/http/response"
	"github.com/freshguard/internal/i18n"
	"github.com/freshguard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Name          string
	Prefix        string
	WindowSeconds int
	MaxRequests   int
}

// Enabled 窗口与次数均为正数时生效
func (r RateLimitRule) Enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// hit 计数并返回当前窗口内次数与剩余秒数
func (r RateLimitRule) hit(ctx context.Context, client *redis.Client, key string) (int64, int, error) {
	window := time.Duration(r.WindowSeconds) * time.Second
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// 首次访问时建键并设置窗口，INCR 保留已有 TTL
		pipe.SetNX(ctx, key, 0, window)
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	wait := int(ttl.Val() / time.Second)
	if wait < 1 {
		wait = r.WindowSeconds
	}
	return incr.Val(), wait, nil
}

// RateLimitMiddleware Redis 频率限制中间件，未启用 Redis 时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.Enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		locale := i18n.ResolveLocale(c)
		count, waitSeconds, err := rule.hit(c.Request.Context(), client, key)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "rule", rule.Name, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			logger.Warnw("rate_limit_exceeded",
				"rule", rule.Name,
				"client_ip", c.ClientIP(),
				"count", count,
				"wait_seconds", waitSeconds,
			)
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, "error.rate_limited", waitSeconds))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIPAndJSONField 使用 JSON 字段 + IP 作为限流 key，normalize 为空时转小写
func KeyByIPAndJSONField(field string, normalize func(string) string) RateLimitKeyFunc {
	if normalize == nil {
		normalize = strings.ToLower
	}
	return func(c *gin.Context) string {
		value := normalize(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

// readJSONField 读取请求体中的字符串字段并还原请求体
func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	raw, ok := payload[field]
	if !ok {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return ""
	}
	return text
}

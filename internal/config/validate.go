package config

import (
	"errors"
	"fmt"
	"strings"
)

// MaxBatchQuantityCap 单批次数量硬上限
const MaxBatchQuantityCap = 500

var (
	// ErrWeakSecret 密钥过弱或仍为默认值
	ErrWeakSecret = errors.New("weak jwt secret")
	// ErrSharedSecret 管理端与门店端密钥相同
	ErrSharedSecret = errors.New("admin and store jwt secrets must differ")
)

// IsRelease 是否生产模式
func (c *Config) IsRelease() bool {
	return c != nil && strings.EqualFold(strings.TrimSpace(c.Server.Mode), "release")
}

// Validate 校验密钥与台账配置，密钥问题在生产模式下返回错误，其余只返回告警列表
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, errors.New("config is nil")
	}
	var problems []error
	if IsWeakSecret(c.JWT.SecretKey) {
		problems = append(problems, errors.New("jwt.secret: "+ErrWeakSecret.Error()))
	}
	if IsWeakSecret(c.StoreJWT.SecretKey) {
		problems = append(problems, errors.New("store_jwt.secret: "+ErrWeakSecret.Error()))
	}
	if c.JWT.SecretKey != "" && c.JWT.SecretKey == c.StoreJWT.SecretKey {
		problems = append(problems, ErrSharedSecret)
	}
	if c.Ledger.MaxBatchQuantity > MaxBatchQuantityCap {
		warnings = append(warnings, fmt.Sprintf("ledger.max_batch_quantity %d exceeds %d and is capped", c.Ledger.MaxBatchQuantity, MaxBatchQuantityCap))
	}
	if len(problems) == 0 {
		return warnings, nil
	}
	if c.IsRelease() {
		return nil, errors.Join(problems...)
	}
	for _, problem := range problems {
		warnings = append(warnings, problem.Error())
	}
	return warnings, nil
}

// IsWeakSecret 判断密钥是否过短或为占位值
func IsWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}

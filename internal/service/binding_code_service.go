package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/logger"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"

	"gorm.io/gorm"
)

const (
	bindingCodeRandomBytes    = 4
	bindingCodeGenerateTries  = 5
	defaultBindingExpiresHour = 24
	// 十年，超出会让 time.Duration 溢出
	maxBindingExpiresHours = 24 * 365 * 10
)

var bindingCodePattern = regexp.MustCompile(`^[A-Z0-9-]{4,64}$`)

// BindingCodeService 门店终端绑定码服务
type BindingCodeService struct {
	codeRepo            *repository.GormBindingCodeRepository
	storeRepo           *repository.GormStoreRepository
	clock               clock.Clock
	defaultExpiresHours float64
}

// NewBindingCodeService 创建绑定码服务
func NewBindingCodeService(codeRepo *repository.GormBindingCodeRepository, storeRepo *repository.GormStoreRepository, clk clock.Clock, defaultExpiresHours float64) *BindingCodeService {
	if defaultExpiresHours <= 0 {
		defaultExpiresHours = defaultBindingExpiresHour
	}
	return &BindingCodeService{
		codeRepo:            codeRepo,
		storeRepo:           storeRepo,
		clock:               clock.Or(clk),
		defaultExpiresHours: defaultExpiresHours,
	}
}

// IssueBindingCodeInput 签发绑定码输入
type IssueBindingCodeInput struct {
	StoreID        uint
	ExpiresInHours *float64
	Code           string
}

// ConsumeResult 消费绑定码结果
type ConsumeResult struct {
	BindingCode *models.BindingCode
	Store       *models.Store
}

// NormalizeBindingCode 去除空白并转大写
func NormalizeBindingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateBindingCode 生成 8 位十六进制大写绑定码
func GenerateBindingCode() (string, error) {
	buf := make([]byte, bindingCodeRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Issue 为门店签发一次性绑定码
func (s *BindingCodeService) Issue(input IssueBindingCodeInput) (*models.BindingCode, error) {
	hours := s.defaultExpiresHours
	if input.ExpiresInHours != nil {
		hours = *input.ExpiresInHours
	}
	if hours <= 0 || hours > maxBindingExpiresHours || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, ErrBindingCodeExpiresIn
	}

	explicit := NormalizeBindingCode(input.Code)
	if explicit != "" && !bindingCodePattern.MatchString(explicit) {
		return nil, ErrBindingCodeFormat
	}

	store, err := s.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	expiresAt := s.clock.Now().Add(time.Duration(hours * float64(time.Hour)))
	attempts := 1
	if explicit == "" {
		attempts = bindingCodeGenerateTries
	}

	for i := 0; i < attempts; i++ {
		code := explicit
		if code == "" {
			code, err = GenerateBindingCode()
			if err != nil {
				return nil, err
			}
		}
		record := &models.BindingCode{
			BrandID:   store.BrandID,
			StoreID:   store.ID,
			Code:      code,
			ExpiresAt: &expiresAt,
		}
		err = s.codeRepo.Create(record)
		if err == nil {
			logger.Infow("binding_code_issued",
				"binding_code_id", record.ID,
				"store_id", store.ID,
				"expires_at", expiresAt,
			)
			record.Store = store
			record.Brand = store.Brand
			return record, nil
		}
		if !isDuplicateKeyError(err) {
			return nil, err
		}
		if explicit != "" {
			return nil, ErrBindingCodeExists
		}
		logger.Warnw("binding_code_collision_retry", "store_id", store.ID, "attempt", i+1)
	}
	return nil, ErrBindingCodeGenerateMax
}

// Consume 原子消费绑定码，返回绑定码与门店
func (s *BindingCodeService) Consume(code, deviceID string) (*ConsumeResult, error) {
	normalized := NormalizeBindingCode(code)
	if normalized == "" {
		return nil, ErrBindingCodeRequired
	}
	var device *string
	if trimmed := strings.TrimSpace(deviceID); trimmed != "" {
		device = &trimmed
	}

	var result *ConsumeResult
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		codeRepo := s.codeRepo.WithTx(tx)
		record, err := codeRepo.GetByCode(normalized)
		if err != nil {
			return err
		}
		if record == nil {
			return ErrBindingCodeInvalid
		}
		if record.IsUsed() {
			return ErrBindingCodeUsed
		}
		now := s.clock.Now()
		if record.IsExpiredAt(now) {
			return ErrBindingCodeExpired
		}

		affected, err := codeRepo.MarkUsed(record.ID, now, device)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrBindingCodeUsed
		}
		record.UsedAt = &now
		record.BoundDeviceID = device

		store, err := s.storeRepo.WithTx(tx).GetByID(record.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return ErrStoreNotFound
		}
		result = &ConsumeResult{BindingCode: record, Store: store}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			logger.Warnw("binding_code_consume_conflict", "code", normalized)
		}
		return nil, err
	}
	logger.Infow("binding_code_consumed",
		"binding_code_id", result.BindingCode.ID,
		"store_id", result.Store.ID,
		"device_id", deviceID,
	)
	return result, nil
}

// List 全部绑定码，最新在前
func (s *BindingCodeService) List() ([]models.BindingCode, error) {
	return s.codeRepo.List()
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique failed")
}

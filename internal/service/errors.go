package service

import (
	"errors"
	"fmt"
)

// 错误分类，传输层按分类映射状态码
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrExpired         = errors.New("expired")
)

// 认证相关
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// 绑定码
var (
	ErrBindingCodeRequired    = fmt.Errorf("%w: binding code is required", ErrInvalidArgument)
	ErrBindingCodeInvalid     = fmt.Errorf("%w: invalid binding code", ErrInvalidArgument)
	ErrBindingCodeFormat      = fmt.Errorf("%w: binding code must be 4-64 characters of A-Z, 0-9 or -", ErrInvalidArgument)
	ErrBindingCodeExpiresIn   = fmt.Errorf("%w: expires_in_hours must be within (0, 87600]", ErrInvalidArgument)
	ErrBindingCodeUsed        = fmt.Errorf("%w: binding code already used", ErrConflict)
	ErrBindingCodeExists      = fmt.Errorf("%w: binding code already exists", ErrConflict)
	ErrBindingCodeExpired     = fmt.Errorf("%w: binding code expired", ErrExpired)
	ErrBindingCodeGenerateMax = errors.New("binding code generation exhausted retries")
)

// 批次与提醒
var (
	ErrBatchQuantityInvalid   = fmt.Errorf("%w: quantity must be an integer between 1 and the batch limit", ErrInvalidArgument)
	ErrProductBrandMismatch   = fmt.Errorf("%w: product does not belong to the store brand", ErrInvalidArgument)
	ErrReminderStatusInvalid  = fmt.Errorf("%w: status must be expiring, expired or all", ErrInvalidArgument)
	ErrThresholdDaysInvalid   = fmt.Errorf("%w: threshold_days must be a non-negative integer", ErrInvalidArgument)
	ErrHandlingReasonInvalid  = fmt.Errorf("%w: reason must be discarded, sold or transferred", ErrInvalidArgument)
	ErrReminderNotFound       = fmt.Errorf("%w: reminder not found", ErrNotFound)
	ErrReminderAlreadyHandled = fmt.Errorf("%w: reminder already handled", ErrConflict)
)

// 目录（品牌 / 门店 / 商品）
var (
	ErrStoreNotFound           = fmt.Errorf("%w: store not found", ErrNotFound)
	ErrBrandNotFound           = fmt.Errorf("%w: brand not found", ErrNotFound)
	ErrProductNotFound         = fmt.Errorf("%w: product not found", ErrNotFound)
	ErrBrandNameRequired       = fmt.Errorf("%w: brand name is required", ErrInvalidArgument)
	ErrBrandExists             = fmt.Errorf("%w: brand already exists", ErrConflict)
	ErrStoreNameRequired       = fmt.Errorf("%w: store name is required", ErrInvalidArgument)
	ErrStoreExists             = fmt.Errorf("%w: store already exists in brand", ErrConflict)
	ErrProductNameRequired     = fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	ErrShelfLifeInvalid        = fmt.Errorf("%w: shelf_life_days must be greater than 0", ErrInvalidArgument)
	ErrLabelLanguageInvalid    = fmt.Errorf("%w: label_language must be single or bilingual", ErrInvalidArgument)
	ErrSecondaryLanguageNeeded = fmt.Errorf("%w: secondary_language is required for bilingual labels", ErrInvalidArgument)
	ErrLanguagesIdentical      = fmt.Errorf("%w: secondary_language must differ from primary_language", ErrInvalidArgument)
	ErrProductExists           = fmt.Errorf("%w: product name or sku already exists in brand", ErrConflict)
	ErrPrinterSettingInvalid   = fmt.Errorf("%w: invalid printer setting", ErrInvalidArgument)
)

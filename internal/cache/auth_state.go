package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/freshguard/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AdminAuthState 后台用户鉴权快照
// 该结构仅用于服务端 Redis 缓存
type AdminAuthState struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UpdatedAt int64  `json:"updated_at"`
}

// StoreAuthState 门店终端鉴权快照
type StoreAuthState struct {
	StoreID   uint   `json:"store_id"`
	BrandID   uint   `json:"brand_id"`
	StoreName string `json:"store_name"`
	BrandName string `json:"brand_name"`
	UpdatedAt int64  `json:"updated_at"`
}

func adminAuthStateKey(userID uint) string {
	return Key(NamespaceAuth, "admin", strconv.FormatUint(uint64(userID), 10))
}

func storeAuthStateKey(storeID uint) string {
	return Key(NamespaceAuth, "store", strconv.FormatUint(uint64(storeID), 10))
}

// BuildAdminAuthState 从用户模型构建鉴权快照
func BuildAdminAuthState(user *models.User) *AdminAuthState {
	if user == nil {
		return nil
	}
	return &AdminAuthState{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		UpdatedAt: time.Now().Unix(),
	}
}

// BuildStoreAuthState 从门店模型构建鉴权快照
func BuildStoreAuthState(store *models.Store) *StoreAuthState {
	if store == nil {
		return nil
	}
	state := &StoreAuthState{
		StoreID:   store.ID,
		BrandID:   store.BrandID,
		StoreName: store.Name,
		UpdatedAt: time.Now().Unix(),
	}
	if store.Brand != nil {
		state.BrandName = store.Brand.Name
	}
	return state
}

// GetAdminAuthState 获取后台用户鉴权快照
func GetAdminAuthState(ctx context.Context, userID uint) (*AdminAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入后台用户鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// GetStoreAuthState 获取门店鉴权快照
func GetStoreAuthState(ctx context.Context, storeID uint) (*StoreAuthState, bool, error) {
	if storeID == 0 {
		return nil, false, nil
	}
	var state StoreAuthState
	hit, err := GetJSON(ctx, storeAuthStateKey(storeID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetStoreAuthState 写入门店鉴权快照
func SetStoreAuthState(ctx context.Context, state *StoreAuthState) error {
	if state == nil || state.StoreID == 0 {
		return nil
	}
	return SetJSON(ctx, storeAuthStateKey(state.StoreID), state, authStateCacheTTL)
}


package service

import (
	"context"
	"strings"
	"time"

	"github.com/freshguard/internal/cache"
	"github.com/freshguard/internal/clock"
	"github.com/freshguard/internal/config"
	"github.com/freshguard/internal/models"
	"github.com/freshguard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务（后台用户与门店终端）
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	clock    clock.Clock
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, clk clock.Clock) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		clock:    clock.Or(clk),
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims 后台 JWT 声明
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// StoreClaims 门店终端 JWT 声明
type StoreClaims struct {
	StoreID       uint   `json:"store_id"`
	BrandID       uint   `json:"brand_id"`
	DeviceID      string `json:"device_id,omitempty"`
	BindingCodeID uint   `json:"binding_code_id"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成后台 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return signHS256(claims, s.cfg.JWT.SecretKey, expiresAt)
}

// ParseJWT 解析后台 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	if err := s.parseHS256(tokenString, s.cfg.JWT.SecretKey, claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateStoreJWT 生成门店终端 JWT Token
func (s *AuthService) GenerateStoreJWT(store *models.Store, code *models.BindingCode) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(time.Duration(s.cfg.StoreJWT.ExpireHours) * time.Hour)

	claims := StoreClaims{
		StoreID: store.ID,
		BrandID: store.BrandID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if code != nil {
		claims.BindingCodeID = code.ID
		if code.BoundDeviceID != nil {
			claims.DeviceID = *code.BoundDeviceID
		}
	}
	return signHS256(claims, s.cfg.StoreJWT.SecretKey, expiresAt)
}

// ParseStoreJWT 解析门店终端 JWT Token
func (s *AuthService) ParseStoreJWT(tokenString string) (*StoreClaims, error) {
	claims := &StoreClaims{}
	if err := s.parseHS256(tokenString, s.cfg.StoreJWT.SecretKey, claims); err != nil {
		return nil, err
	}
	if claims.StoreID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 后台用户登录
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := s.clock.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(user))

	return user, token, expiresAt, nil
}

// ResolveAdminState 获取后台用户鉴权快照，优先读缓存
func (s *AuthService) ResolveAdminState(ctx context.Context, userID uint) (*cache.AdminAuthState, error) {
	if state, hit, err := cache.GetAdminAuthState(ctx, userID); err == nil && hit {
		return state, nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	state := cache.BuildAdminAuthState(user)
	_ = cache.SetAdminAuthState(ctx, state)
	return state, nil
}

// GetUser 获取后台用户
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ListUsers 后台用户列表
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

func signHS256(claims jwt.Claims, secret string, expiresAt time.Time) (string, time.Time, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (s *AuthService) parseHS256(tokenString, secret string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

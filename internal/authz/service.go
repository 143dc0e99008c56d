// Package authz 基于 Casbin 的后台角色授权。
package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/freshguard/internal/constants"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiV1Prefix     = "/api/v1"
	adminObjectRoot = "/admin"
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
	roleAnchor      = "role:__anchor__"
)

// 角色继承走 g，策略对象使用 gin 路由模板并以 keyMatch2 匹配
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	// ErrUnavailable 授权服务未初始化
	ErrUnavailable = errors.New("authz service unavailable")
	// ErrRoleRequired 角色名为空
	ErrRoleRequired = errors.New("role is required")
	// ErrReservedRole 保留角色不可作为策略主体
	ErrReservedRole = errors.New("role is reserved")
	// ErrImmutableRole 预置角色不可修改
	ErrImmutableRole = errors.New("builtin role is immutable")
	// ErrActionInvalid 动作不是受支持的 HTTP 方法
	ErrActionInvalid = errors.New("action is invalid")
	// ErrObjectOutOfScope 策略对象不在后台路由下
	ErrObjectOutOfScope = errors.New("object must be an admin route")
)

var allowedActions = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {}, "*": {},
}

// Policy 权限策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service 后台角色授权服务，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceRole 判断后台角色能否访问路由
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return false, err
	}
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// ListRoles 列出全部角色（含前缀，按名称排序）
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0)
	if err != nil {
		return nil, fmt.Errorf("list roles failed: %w", err)
	}
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, name := range rule {
			if strings.HasPrefix(name, rolePrefix) && name != roleAnchor {
				seen[name] = struct{}{}
			}
		}
	}
	roles := make([]string, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles, nil
}

// GetRolePolicies 查询角色直接拥有的策略
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies failed: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{
			Subject: strings.TrimSpace(rule[0]),
			Object:  NormalizeObject(rule[1]),
			Action:  NormalizeAction(rule[2]),
		})
	}
	return policies, nil
}

// GrantRolePolicy 为自定义角色授予策略，角色不存在时创建
func (s *Service) GrantRolePolicy(role, object, action string) error {
	subject, obj, act, err := s.validateChange(role, object, action)
	if err != nil {
		return err
	}
	if err := s.ensureRole(subject); err != nil {
		return err
	}
	if _, err := s.enforcer.AddPolicy(subject, obj, act); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return nil
}

// RevokeRolePolicy 撤销自定义角色策略，策略不存在时视为成功
func (s *Service) RevokeRolePolicy(role, object, action string) error {
	subject, obj, act, err := s.validateChange(role, object, action)
	if err != nil {
		return err
	}
	if _, err := s.enforcer.RemovePolicy(subject, obj, act); err != nil {
		return fmt.Errorf("revoke policy failed: %w", err)
	}
	return nil
}

func (s *Service) validateChange(role, object, action string) (string, string, string, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return "", "", "", err
	}
	if subject == rolePrefix+constants.RoleAdmin {
		return "", "", "", ErrReservedRole
	}
	if IsImmutableRole(subject) {
		return "", "", "", ErrImmutableRole
	}
	obj := NormalizeObject(object)
	if obj != adminObjectRoot && !strings.HasPrefix(obj, adminObjectRoot+"/") {
		return "", "", "", ErrObjectOutOfScope
	}
	act := NormalizeAction(action)
	if _, ok := allowedActions[act]; !ok {
		return "", "", "", ErrActionInvalid
	}
	if err := s.ready(); err != nil {
		return "", "", "", err
	}
	return subject, obj, act, nil
}

// ensureRole 以锚点分组登记角色，使无策略的角色也能被列出
func (s *Service) ensureRole(subject string) error {
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, roleAnchor); err != nil {
		return fmt.Errorf("create role failed: %w", err)
	}
	return nil
}

// NormalizeRole 统一角色名称为 role:<name>
func NormalizeRole(role string) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(role), rolePrefix)
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" {
		return "", ErrRoleRequired
	}
	subject := rolePrefix + name
	if subject == roleAnchor {
		return "", ErrReservedRole
	}
	return subject, nil
}

// NormalizeObject 统一授权资源路径，去掉 /api/v1 前缀
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	if normalized == apiV1Prefix {
		return "/"
	}
	if strings.HasPrefix(normalized, apiV1Prefix+"/") {
		return strings.TrimPrefix(normalized, apiV1Prefix)
	}
	return normalized
}

// NormalizeAction 统一授权动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

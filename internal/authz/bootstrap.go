package authz

import (
	"fmt"

	"github.com/freshguard/internal/constants"
	"github.com/freshguard/internal/logger"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 预置角色矩阵，admin 角色不经过策略判定
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleAuditor,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleOperator,
			Inherits: []string{constants.RoleAuditor},
			Policies: []Policy{
				{Object: "/admin/brands", Action: "POST"},
				{Object: "/admin/stores", Action: "POST"},
				{Object: "/admin/stores/:id/printer-settings", Action: "PATCH"},
				{Object: "/admin/products", Action: "POST"},
				{Object: "/admin/binding-codes", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// IsImmutableRole 判断是否为不可修改的预置角色
func IsImmutableRole(role string) bool {
	subject, err := NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range BuiltinRoleSeeds() {
		if seedSubject, err := NormalizeRole(seed.Role); err == nil && seedSubject == subject {
			return seed.Immutable
		}
	}
	return false
}

// BootstrapBuiltinRoles 写入预置角色、继承关系与策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		subject, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		if err := s.ensureRole(subject); err != nil {
			return err
		}

		added := 0
		for _, parent := range seed.Inherits {
			parentSubject, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, parentSubject); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			ok, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), NormalizeAction(policy.Action))
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if ok {
				added++
			}
		}
		if added > 0 {
			logger.Infow("authz_builtin_role_seeded", "role", subject, "policies_added", added)
		}
	}
	return nil
}

package admin

import (
	"strings"

	"github.com/freshguard/internal/authz"
	"github.com/freshguard/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest 角色策略请求
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type roleWithPolicies struct {
	Role      string         `json:"role"`
	Immutable bool           `json:"immutable"`
	Policies  []authz.Policy `json:"policies"`
}

// GetAuthzRoles 角色及其策略列表
func (h *Handler) GetAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	items := make([]roleWithPolicies, 0, len(roles))
	for _, role := range roles {
		policies, err := h.AuthzService.GetRolePolicies(role)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		items = append(items, roleWithPolicies{
			Role:      role,
			Immutable: authz.IsImmutableRole(role),
			Policies:  policies,
		})
	}
	response.Success(c, items)
}

// GrantAuthzRolePolicy 为角色授予策略
func (h *Handler) GrantAuthzRolePolicy(c *gin.Context) {
	h.changeRolePolicy(c, h.AuthzService.GrantRolePolicy, "admin_authz_policy_granted")
}

// RevokeAuthzRolePolicy 撤销角色策略
func (h *Handler) RevokeAuthzRolePolicy(c *gin.Context) {
	h.changeRolePolicy(c, h.AuthzService.RevokeRolePolicy, "admin_authz_policy_revoked")
}

func (h *Handler) changeRolePolicy(c *gin.Context, apply func(role, object, action string) error, event string) {
	role := strings.TrimSpace(c.Param("role"))
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil || role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := apply(role, req.Object, req.Action); err != nil {
		respondWithMappedError(c, err, authzErrorRules)
		return
	}
	requestLog(c).Infow(event,
		"role", role,
		"object", authz.NormalizeObject(req.Object),
		"action", authz.NormalizeAction(req.Action),
	)
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roleWithPolicies{
		Role:      role,
		Immutable: authz.IsImmutableRole(role),
		Policies:  policies,
	})
}

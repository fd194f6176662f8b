package handler

import (
	"github.com/gin-gonic/gin"

	"organizer/backend/pkg/response"
)

// 由 JWTAuth 注入的上下文键
const (
	ctxUserID         = "user_id"
	ctxRole           = "role"
	ctxOrganizationID = "organization_id"
)

// MustGetRole 从 Gin 上下文中安全提取 role。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxRole)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "未认证")
		return "", false
	}
	return s, true
}

// CanAccessOrganization 检查调用者能否操作指定组织：
// admin 或未绑定组织的 token 不受限，其余必须与 token 中的组织一致。
func CanAccessOrganization(c *gin.Context, organizationID int64) bool {
	role, ok := MustGetRole(c)
	if !ok {
		return false
	}
	if role == "admin" {
		return true
	}
	scoped := c.GetInt64(ctxOrganizationID)
	if scoped != 0 && scoped != organizationID {
		response.Forbidden(c, response.CodeForbidden, "无权操作该组织")
		return false
	}
	return true
}

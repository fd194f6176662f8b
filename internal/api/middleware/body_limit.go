package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"organizer/backend/pkg/response"
)

// BodyLimit 请求体大小限制中间件
// 先按 Content-Length 快速拒绝，再用 MaxBytesReader 兜住分块上传
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wtwr-api/internal/core/auth"
	resp "wtwr-api/internal/transport/http/response"
)

const KeyUserID = "userId"

// FixedCaller 上游未接入鉴权时，所有请求都以同一用户身份执行
func FixedCaller(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(KeyUserID, uid)
		c.Next()
	}
}

// JWTCaller 从 Bearer token 取调用者
func JWTCaller(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		tok, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || tok == "" {
			resp.Abort(c, http.StatusUnauthorized)
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			_ = c.Error(err)
			resp.Abort(c, http.StatusUnauthorized)
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Next()
	}
}

func CallerID(c *gin.Context) string { return c.GetString(KeyUserID) }

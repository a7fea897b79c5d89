package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutoring-backend/utils"
)

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

// OptionalAuth resolves a bearer token into user_id/role context values.
// A missing, malformed or invalid token leaves the request anonymous and the
// handlers decide whether that is acceptable (ask requires a student, answer
// requires any authenticated role).
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := utils.VerifyToken(secret, parts[1])
		if err != nil {
			c.Next()
			return
		}
		if claims.Role != RoleStudent && claims.Role != RoleTutor {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

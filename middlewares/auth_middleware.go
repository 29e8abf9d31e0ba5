package middlewares

import (
	"blogapp/config"
	"blogapp/models"
	"blogapp/services"
	"blogapp/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	ContextUserKey = "user"
	LoginURL       = "/accounts/login"
)

func tokenFromRequest(ctx *gin.Context) string {
	if h := ctx.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func unauthorized(ctx *gin.Context, msg string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "login": LoginURL})
}

// RequireAuth 校验 JWT 并把当前用户放入 context
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			unauthorized(ctx, "Missing token")
			return
		}

		claims, err := utils.ParseJWT(config.AppConfig.Jwt.Secret, token)
		if err != nil {
			unauthorized(ctx, "Invalid token")
			return
		}

		user, err := services.UserByID(ctx.Request.Context(), claims.UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", claims.UserID).Warn("token for unknown user")
			unauthorized(ctx, "Invalid token")
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

func CurrentUser(ctx *gin.Context) *models.User {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":  ctx.Request.Method,
			"path":    ctx.Request.URL.Path,
			"status":  ctx.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      ctx.ClientIP(),
		})
		if len(ctx.Errors) > 0 {
			entry.Error(ctx.Errors.String())
			return
		}
		entry.Info("request")
	}
}

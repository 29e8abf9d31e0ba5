package controllers

import (
	"blogapp/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// renderError 把 service 层错误映射成 HTTP 状态码
func renderError(ctx *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"level":   services.LevelError,
			"message": verr.Notice,
			"fields":  verr.Fields,
		})
	case errors.Is(err, services.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidAction):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", ctx.FullPath()).Error("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// toggleAction 根据表单里出现的按钮名判断是添加还是删除
func toggleAction(ctx *gin.Context, addField, delField string) services.Action {
	if _, ok := ctx.GetPostForm(addField); ok {
		return services.ActionAdd
	}
	if _, ok := ctx.GetPostForm(delField); ok {
		return services.ActionRemove
	}
	return ""
}

// decodeForm 按 Content-Type 解码 JSON、urlencoded 或 multipart 表单。
// 字段校验错误在这里忽略，交给 service 层返回带提示语的 ValidationError
func decodeForm(ctx *gin.Context, obj interface{}) error {
	err := ctx.ShouldBind(obj)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return nil
	}
	return err
}

package controllers

import (
	"blogapp/middlewares"
	"blogapp/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToggleBlacklist POST /accounts/:id/blacklist，表单字段 add_bl 或 del_bl
func ToggleBlacklist(ctx *gin.Context) {
	targetID, ok := parseID(ctx)
	if !ok {
		return
	}

	action := toggleAction(ctx, "add_bl", "del_bl")
	res, err := services.ToggleBlacklist(ctx.Request.Context(), middlewares.CurrentUser(ctx), targetID, action)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

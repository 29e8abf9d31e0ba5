package controllers

import (
	"blogapp/middlewares"
	"blogapp/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAccountDetail GET /accounts/:id
func GetAccountDetail(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	detail, err := services.GetAccountDetail(ctx.Request.Context(), userID, middlewares.CurrentUser(ctx))
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

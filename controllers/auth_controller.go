package controllers

import (
	"blogapp/middlewares"
	"blogapp/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SignUp(ctx *gin.Context) {
	var form services.SignUpForm
	if err := decodeForm(ctx, &form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.Register(ctx.Request.Context(), form)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"level":    services.LevelSuccess,
		"message":  "account created",
		"redirect": middlewares.LoginURL,
		"user":     user,
	})
}

func Login(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := decodeForm(ctx, &input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.Login(ctx.Request.Context(), input.Username, input.Password)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func PasswordChangeForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"form": services.PasswordChangeForm{}})
}

func PasswordChange(ctx *gin.Context) {
	var form services.PasswordChangeForm
	if err := decodeForm(ctx, &form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := services.ChangePassword(ctx.Request.Context(), middlewares.CurrentUser(ctx), form)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

func PasswordChangeDone(ctx *gin.Context) {
	user := middlewares.CurrentUser(ctx)
	ctx.JSON(http.StatusOK, gin.H{"message": "password changed", "user_id": user.ID})
}

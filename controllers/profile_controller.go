package controllers

import (
	"blogapp/middlewares"
	"blogapp/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateProfileForm GET /accounts/:id/create
func CreateProfileForm(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := services.CheckCreateProfile(ctx.Request.Context(), userID, middlewares.CurrentUser(ctx)); err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"form": services.ProfileForm{}})
}

// CreateProfile POST /accounts/:id/create
func CreateProfile(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	var form services.ProfileForm
	if err := decodeForm(ctx, &form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, res, err := services.CreateProfile(ctx.Request.Context(), userID, middlewares.CurrentUser(ctx), form)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"level": res.Level, "message": res.Message, "redirect": res.Redirect, "profile": profile})
}

// UpdateProfileForm GET /accounts/:id/update，:id 是 profile id
func UpdateProfileForm(ctx *gin.Context) {
	profileID, ok := parseID(ctx)
	if !ok {
		return
	}

	profile, err := services.LoadProfileForUpdate(ctx.Request.Context(), profileID, middlewares.CurrentUser(ctx))
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"form": services.FormFromProfile(profile), "profile": profile})
}

// UpdateProfile POST /accounts/:id/update
func UpdateProfile(ctx *gin.Context) {
	profileID, ok := parseID(ctx)
	if !ok {
		return
	}

	var form services.ProfileForm
	if err := decodeForm(ctx, &form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, res, err := services.UpdateProfile(ctx.Request.Context(), profileID, middlewares.CurrentUser(ctx), form)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"level": res.Level, "message": res.Message, "redirect": res.Redirect, "profile": profile})
}

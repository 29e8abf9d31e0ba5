package controllers

import (
	"blogapp/middlewares"
	"blogapp/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ToggleLike POST /accounts/:id/like，:id 是文章 id，表单字段 add_like 或 del_like
func ToggleLike(ctx *gin.Context) {
	articleID, ok := parseID(ctx)
	if !ok {
		return
	}

	action := toggleAction(ctx, "add_like", "del_like")
	res, err := services.ToggleLike(ctx.Request.Context(), middlewares.CurrentUser(ctx), articleID, action)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// MyLikeArticles GET /accounts/:id/mylike?page=N
func MyLikeArticles(ctx *gin.Context) {
	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	result, err := services.ListLikedArticles(ctx.Request.Context(), userID, middlewares.CurrentUser(ctx), page)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetArticleLikes: 优先从 Redis 获取单篇文章点赞数
func GetArticleLikes(ctx *gin.Context) {
	articleID, ok := parseID(ctx)
	if !ok {
		return
	}

	likes, err := services.ArticleLikes(ctx.Request.Context(), articleID)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"likes": likes})
}

// GetTopArticles: 返回 Top N 排行
func GetTopArticles(ctx *gin.Context) {
	top, err := strconv.Atoi(ctx.DefaultQuery("top", "10"))
	if err != nil || top <= 0 {
		top = 10
	}

	list, err := services.TopArticles(ctx.Request.Context(), top)
	if err != nil {
		renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"list": list})
}

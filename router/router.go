package router

import (
	"blogapp/config"
	"blogapp/controllers"
	"blogapp/middlewares"
	"blogapp/monitoring"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(), monitoring.Instrument())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.Cors.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      gin.Mode() != gin.ReleaseMode,
	}
	if config.AppConfig.App.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	r.Use(secure.New(secureConfig))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	articles := r.Group("/articles")
	{
		articles.GET("/top", controllers.GetTopArticles)
		articles.GET("/:id/likes", controllers.GetArticleLikes)
	}

	accounts := r.Group("/accounts")
	{
		accounts.POST("/signup", controllers.SignUp)
		accounts.POST("/login", controllers.Login)
	}

	auth := accounts.Group("")
	auth.Use(middlewares.RequireAuth())
	{
		auth.GET("/password-change", controllers.PasswordChangeForm)
		auth.POST("/password-change", controllers.PasswordChange)
		auth.GET("/password-change/done", controllers.PasswordChangeDone)

		auth.GET("/:id", controllers.GetAccountDetail)
		auth.GET("/:id/update", controllers.UpdateProfileForm)
		auth.POST("/:id/update", controllers.UpdateProfile)
		auth.GET("/:id/create", controllers.CreateProfileForm)
		auth.POST("/:id/create", controllers.CreateProfile)
		auth.POST("/:id/blacklist", controllers.ToggleBlacklist)
		auth.GET("/:id/mylike", controllers.MyLikeArticles)
		auth.POST("/:id/like", controllers.ToggleLike)
	}

	return r
}

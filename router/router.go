package router

import (
	"github.com/gin-gonic/gin"

	"github.com/has-1997/Telegram-Nutrition-Assistant/controller"
	"github.com/has-1997/Telegram-Nutrition-Assistant/middleware"
)

// New 装配 HTTP 路由
func New(ctrl *controller.Controller) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID)
	engine.Use(middleware.Logger)

	addBasicRouter(engine)
	addApiRouter(engine, ctrl)

	return engine
}

func addBasicRouter(engine *gin.Engine) {
	engine.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/ping", func(ctx *gin.Context) {
		ctx.String(200, "pong")
	})
}

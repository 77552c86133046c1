package router

import (
	"github.com/gin-gonic/gin"

	"github.com/has-1997/Telegram-Nutrition-Assistant/controller"
)

func addApiRouter(engine *gin.Engine, ctrl *controller.Controller) {

	// 只读查询 API
	api := engine.Group("/api/v1")
	{
		api.GET("/report", ctrl.GetReport)
		api.GET("/profile/:user_id", ctrl.GetProfile)
	}
}

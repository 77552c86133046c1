package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/service/dispatch"
)

// GetReport 查询某用户某天的日报
// date 可省略或用 today 系别名，其他必须是 2006-01-02
func (c *Controller) GetReport(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	date, ok := dispatch.ResolveReportDate(ctx.Query("date"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	result, err := c.serviceFactory.NewReportService().BuildDaily(ctx, userID, date)
	if err != nil {
		log.Errorf("GetReport error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/has-1997/Telegram-Nutrition-Assistant/pkg/tools"
)

// GetProfile 查询用户档案
func (c *Controller) GetProfile(ctx *gin.Context) {
	userID := ctx.Param("user_id")

	session := c.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "close session")

	profileRepo, err := c.repositoryFactory.NewProfileRepository(session)
	if err != nil {
		log.Errorf("GetProfile create repository error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	profile, err := profileRepo.Get(userID)
	if err != nil {
		log.Errorf("GetProfile error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

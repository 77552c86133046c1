package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID 入站请求没带 X-Request-ID 时补一个，日志里用它串联
func RequestID(ctx *gin.Context) {
	requestID := ctx.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Set(RequestIDHeader, requestID)
	ctx.Header(RequestIDHeader, requestID)
	ctx.Next()
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-buddy/internal/handler/response"
	"workout-buddy/pkg/logger"
)

// Recovery возвращает middleware для обработки паник и предотвращения краша приложения.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем панику с контекстом запроса
		log.Error("panic recovered", map[string]any{
			"panic":      recovered,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
		})

		// Детали паники клиенту не раскрываем
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}

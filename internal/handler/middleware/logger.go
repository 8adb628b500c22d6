package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"workout-buddy/pkg/logger"
)

// LoggerStructured возвращает middleware структурированного логирования
// HTTP-запросов: метод, путь, статус, время выполнения, IP клиента и
// идентификатор запроса.
func LoggerStructured(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Начало запроса
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Обрабатываем запрос
		c.Next()

		// Вычисляем время выполнения
		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    latency.String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
		}

		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
			log.Error("http request", fields)
			return
		}

		log.Info("http request", fields)
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID — заголовок с идентификатором запроса.
	HeaderRequestID = "X-Request-ID"

	// ContextRequestIDKey — ключ идентификатора запроса в контексте Gin.
	ContextRequestIDKey = "requestID"
)

// RequestID возвращает middleware, которое присваивает каждому запросу
// идентификатор: берёт его из входящего заголовка X-Request-ID или
// генерирует новый. Идентификатор кладётся в контекст и в заголовок ответа,
// чтобы связывать клиентские жалобы с серверными логами.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)

		c.Next()
	}
}

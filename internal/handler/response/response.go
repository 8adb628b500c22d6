package response

import "github.com/gin-gonic/gin"

// Error отправляет JSON-ответ с ошибкой в едином формате {"error": "<message>"}.
// Именно это поле разбирает мобильный клиент (data.error), поэтому без вложенных структур.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

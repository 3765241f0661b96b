package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mixaura/agency-backend/internal/logger"
	"github.com/mixaura/agency-backend/internal/service"
)

// AdminMiddleware пускает дальше только пользователей с маркером
// административной роли. Проверка идёт в хранилище на каждый запрос:
// токен ничего не знает о роли, отозвать доступ можно мгновенно.
func AdminMiddleware(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextUserIDKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		userID, ok := raw.(uuid.UUID)
		if !ok || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется авторизация"})
			return
		}

		status, err := roles.Status(c.Request.Context(), userID)
		if err != nil {
			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"user_id": userID,
					"error":   err.Error(),
				}).Error("admin middleware: проверка роли не удалась")
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
			return
		}

		if status != service.AdminStatusAuthorized {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "нет прав администратора"})
			return
		}

		c.Next()
	}
}

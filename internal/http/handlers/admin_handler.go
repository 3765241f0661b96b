package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mixaura/agency-backend/internal/dto"
	"github.com/mixaura/agency-backend/internal/http/handlers/common"
	"github.com/mixaura/agency-backend/internal/service"
)

// AdminHandler отвечает на запросы о статусе администратора.
type AdminHandler struct {
	roles *service.RoleService
}

// NewAdminHandler создаёт хэндлер.
func NewAdminHandler(roles *service.RoleService) *AdminHandler {
	return &AdminHandler{roles: roles}
}

// Status обрабатывает GET /admin/status.
// Возвращает один из трёх статусов: unknown, authorized, unauthorized.
// Unknown отдаётся только при ошибке проверки: клиент не должен
// трактовать его как отказ.
func (h *AdminHandler) Status(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusOK, dto.AdminStatusResponse{Status: service.AdminStatusUnauthorized})
		return
	}

	status, err := h.roles.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusOK, dto.AdminStatusResponse{Status: service.AdminStatusUnknown})
		return
	}

	c.JSON(http.StatusOK, dto.AdminStatusResponse{Status: status})
}

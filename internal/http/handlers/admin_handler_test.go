package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mixaura/agency-backend/internal/http/middleware"
	"github.com/mixaura/agency-backend/internal/service"
)

type stubRoleRepository struct {
	markers map[uuid.UUID]bool
	err     error
}

func (s *stubRoleRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.markers[userID], nil
}

func (s *stubRoleRepository) Create(ctx context.Context, userID uuid.UUID) error {
	s.markers[userID] = true
	return nil
}

func newAdminStatusRouter(repo *stubRoleRepository, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewAdminHandler(service.NewRoleService(repo))
	r.GET("/admin/status", func(c *gin.Context) {
		if userID != nil {
			c.Set(middleware.ContextUserIDKey, *userID)
		}
		handler.Status(c)
	})
	return r
}

func getStatus(t *testing.T, r *gin.Engine) string {
	t.Helper()
	req, _ := http.NewRequest("GET", "/admin/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Status
}

func TestAdminHandler_Status_Authorized(t *testing.T) {
	adminID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{adminID: true}}

	status := getStatus(t, newAdminStatusRouter(repo, &adminID))
	assert.Equal(t, "authorized", status)
}

func TestAdminHandler_Status_Unauthorized(t *testing.T) {
	userID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{}}

	status := getStatus(t, newAdminStatusRouter(repo, &userID))
	assert.Equal(t, "unauthorized", status)
}

func TestAdminHandler_Status_NoIdentity(t *testing.T) {
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{}}

	status := getStatus(t, newAdminStatusRouter(repo, nil))
	assert.Equal(t, "unauthorized", status)
}

func TestAdminHandler_Status_LookupErrorIsUnknown(t *testing.T) {
	userID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{}, err: errors.New("база недоступна")}

	// Ошибка проверки не выдаётся как отказ: клиент видит unknown.
	status := getStatus(t, newAdminStatusRouter(repo, &userID))
	assert.Equal(t, "unknown", status)
}

func TestAdminMiddleware_ForbiddenWithoutMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{}}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserIDKey, userID) })
	r.Use(middleware.AdminMiddleware(service.NewRoleService(repo)))
	r.GET("/admin/portfolio", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/admin/portfolio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddleware_AllowsWithMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)
	adminID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{adminID: true}}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserIDKey, adminID) })
	r.Use(middleware.AdminMiddleware(service.NewRoleService(repo)))
	r.GET("/admin/portfolio", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/admin/portfolio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware_LookupErrorIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	repo := &stubRoleRepository{markers: map[uuid.UUID]bool{}, err: errors.New("база недоступна")}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserIDKey, userID) })
	r.Use(middleware.AdminMiddleware(service.NewRoleService(repo)))
	r.GET("/admin/portfolio", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/admin/portfolio", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

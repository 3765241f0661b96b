package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/mixaura/agency-backend/internal/dto"
	"github.com/mixaura/agency-backend/internal/http/handlers/common"
	"github.com/mixaura/agency-backend/internal/repository"
	"github.com/mixaura/agency-backend/internal/service"
)

// Разрешённые типы изображений для витрины
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Разрешённые расширения файлов
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PortfolioHandler управляет витриной портфолио агентства.
type PortfolioHandler struct {
	portfolio *service.PortfolioService
}

// NewPortfolioHandler создаёт новый хэндлер.
func NewPortfolioHandler(portfolio *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// List обрабатывает GET /portfolio — публичная витрина.
func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.portfolio.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить портфолио"})
		return
	}

	c.JSON(http.StatusOK, dto.PortfolioListResponse{Items: items})
}

// Get обрабатывает GET /portfolio/:id.
func (h *PortfolioHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.portfolio.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "элемент портфолио не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось загрузить элемент"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create обрабатывает POST /admin/portfolio.
// Принимает multipart форму: title, description, image_hint и файл image.
func (h *PortfolioHandler) Create(c *gin.Context) {
	adminID, err := common.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	in := service.PortfolioItemInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ImageHint:   c.PostForm("image_hint"),
	}

	imageName, image, cleanup, ok := openImageFile(c)
	if !ok {
		return
	}
	defer cleanup()

	item, err := h.portfolio.CreateItem(c.Request.Context(), adminID, in, imageName, image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update обрабатывает PUT /admin/portfolio/:id.
func (h *PortfolioHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := service.PortfolioItemInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		ImageHint:   c.PostForm("image_hint"),
	}

	imageName, image, cleanup, ok := openImageFile(c)
	if !ok {
		return
	}
	defer cleanup()

	item, err := h.portfolio.UpdateItem(c.Request.Context(), id, in, imageName, image)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "элемент портфолио не найден"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete обрабатывает DELETE /admin/portfolio/:id.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.portfolio.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "элемент портфолио не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось удалить элемент"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "элемент портфолио удалён"})
}

// openImageFile достаёт файл image из multipart формы и проверяет,
// что это действительно изображение по магическим байтам.
// Файл опционален: если его нет, возвращается nil reader.
// При ошибке ответ уже записан, вызывающий только выходит.
func openImageFile(c *gin.Context) (string, io.Reader, func(), bool) {
	noop := func() {}

	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, noop, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл image"})
		return "", nil, noop, false
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "файл не может быть пустым"})
		return "", nil, noop, false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый формат файла (%s). Разрешены: jpg, jpeg, png, gif, webp", ext),
		})
		return "", nil, noop, false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return "", nil, noop, false
	}

	if !validateImageMagic(c, src) {
		src.Close()
		return "", nil, noop, false
	}

	return file.Filename, src, func() { src.Close() }, true
}

// validateImageMagic читает начало файла, проверяет реальный тип
// и возвращает позицию чтения в начало.
func validateImageMagic(c *gin.Context, src multipart.File) bool {
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось прочитать файл"})
		return false
	}

	kind, err := filetype.Match(buffer[:n])
	if err != nil || kind == filetype.Unknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не удалось определить тип файла. Разрешены только изображения"})
		return false
	}

	if !allowedMimeTypes[kind.MIME.Value] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("неподдерживаемый тип файла (%s). Разрешены только изображения", kind.MIME.Value),
		})
		return false
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "не удалось сбросить позицию файла"})
		return false
	}

	return true
}

package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mixaura/agency-backend/internal/logger"
	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/validation"
)

// PortfolioRepository описывает взаимодействие сервиса с хранилищем портфолио.
type PortfolioRepository interface {
	Create(ctx context.Context, item *models.PortfolioItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error)
	List(ctx context.Context) ([]models.PortfolioItem, error)
	Update(ctx context.Context, item *models.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlobStorage описывает файловое хранилище изображений портфолио.
type BlobStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
	PublicURL(relativePath string) string
}

// PortfolioService содержит бизнес-логику работы с витриной портфолио.
type PortfolioService struct {
	repo    PortfolioRepository
	storage BlobStorage
}

// PortfolioItemInput содержит данные элемента портфолио от администратора.
type PortfolioItemInput struct {
	Title       string
	Description string
	ImageHint   string
}

// NewPortfolioService создаёт новый сервис портфолио.
func NewPortfolioService(repo PortfolioRepository, storage BlobStorage) *PortfolioService {
	return &PortfolioService{repo: repo, storage: storage}
}

// CreateItem создаёт элемент витрины. Если передан image, файл сохраняется
// в хранилище и элемент получает публичный URL изображения.
func (s *PortfolioService) CreateItem(ctx context.Context, adminID uuid.UUID, in PortfolioItemInput, imageName string, image io.Reader) (*models.PortfolioItem, error) {
	if err := validateItemInput(in); err != nil {
		return nil, err
	}

	item := &models.PortfolioItem{
		AdminID:     adminID,
		Title:       in.Title,
		Description: in.Description,
		ImageHint:   in.ImageHint,
	}

	if image != nil {
		relPath, _, err := s.storage.Save(ctx, imageName, image)
		if err != nil {
			return nil, fmt.Errorf("portfolio service: не удалось сохранить изображение: %w", err)
		}
		item.ImagePath = &relPath
		item.ImageURL = s.storage.PublicURL(relPath)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if item.ImagePath != nil {
			s.cleanupBlob(ctx, *item.ImagePath)
		}
		return nil, err
	}

	return item, nil
}

// GetItem возвращает элемент по идентификатору.
func (s *PortfolioService) GetItem(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	return s.repo.GetByID(ctx, id)
}

// ListItems возвращает витрину, новые элементы первыми.
func (s *PortfolioService) ListItems(ctx context.Context) ([]models.PortfolioItem, error) {
	return s.repo.List(ctx)
}

// UpdateItem обновляет элемент. Новое изображение замещает старое:
// прежний файл удаляется из хранилища после успешного обновления записи.
func (s *PortfolioService) UpdateItem(ctx context.Context, id uuid.UUID, in PortfolioItemInput, imageName string, image io.Reader) (*models.PortfolioItem, error) {
	if err := validateItemInput(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPath := existing.ImagePath
	existing.Title = in.Title
	existing.Description = in.Description
	existing.ImageHint = in.ImageHint

	if image != nil {
		relPath, _, err := s.storage.Save(ctx, imageName, image)
		if err != nil {
			return nil, fmt.Errorf("portfolio service: не удалось сохранить изображение: %w", err)
		}
		existing.ImagePath = &relPath
		existing.ImageURL = s.storage.PublicURL(relPath)
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if image != nil && existing.ImagePath != nil {
			s.cleanupBlob(ctx, *existing.ImagePath)
		}
		return nil, err
	}

	if image != nil && oldPath != nil {
		s.cleanupBlob(ctx, *oldPath)
	}

	return existing, nil
}

// DeleteItem удаляет элемент вместе с его изображением.
func (s *PortfolioService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if existing.ImagePath != nil {
		s.cleanupBlob(ctx, *existing.ImagePath)
	}

	return nil
}

// cleanupBlob удаляет файл из хранилища. Ошибка удаления не фатальна,
// запись в базе уже согласована.
func (s *PortfolioService) cleanupBlob(ctx context.Context, relPath string) {
	if err := s.storage.Delete(ctx, relPath); err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"path":  relPath,
				"error": err.Error(),
			}).Warn("portfolio service: не удалось удалить файл изображения")
		}
	}
}

func validateItemInput(in PortfolioItemInput) error {
	if err := validation.ValidatePortfolioTitle(in.Title); err != nil {
		return fmt.Errorf("portfolio service: %w", err)
	}
	if err := validation.ValidatePortfolioDescription(in.Description); err != nil {
		return fmt.Errorf("portfolio service: %w", err)
	}
	if in.ImageHint != "" {
		if err := validation.ValidateImageHint(in.ImageHint); err != nil {
			return fmt.Errorf("portfolio service: %w", err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mixaura/agency-backend/internal/models"
)

// ErrPortfolioItemNotFound возвращается, когда работа витрины не найдена.
var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

// PortfolioRepository отвечает за работы в витрине портфолио.
type PortfolioRepository struct {
	db *sqlx.DB
}

// NewPortfolioRepository создаёт экземпляр репозитория.
func NewPortfolioRepository(db *sqlx.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create создаёт новую работу в витрине.
func (r *PortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	query := `
		INSERT INTO portfolio_items (admin_id, title, description, image_path, image_url, image_hint)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		item.AdminID,
		item.Title,
		item.Description,
		item.ImagePath,
		item.ImageURL,
		item.ImageHint,
	).Scan(&item.ID, &item.CreatedAt); err != nil {
		return fmt.Errorf("portfolio repository: insert item %w", err)
	}

	return nil
}

// GetByID возвращает работу по идентификатору.
func (r *PortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	query := `
		SELECT id, admin_id, title, description, image_path, image_url, image_hint, created_at
		FROM portfolio_items
		WHERE id = $1
	`

	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("portfolio repository: get by id %w", err)
	}

	return &item, nil
}

// List возвращает все работы витрины, новые первыми.
func (r *PortfolioRepository) List(ctx context.Context) ([]models.PortfolioItem, error) {
	query := `
		SELECT id, admin_id, title, description, image_path, image_url, image_hint, created_at
		FROM portfolio_items
		ORDER BY created_at DESC
	`

	var items []models.PortfolioItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("portfolio repository: list %w", err)
	}

	return items, nil
}

// Update обновляет работу в витрине.
func (r *PortfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	query := `
		UPDATE portfolio_items
		SET title = $1,
		    description = $2,
		    image_path = $3,
		    image_url = $4,
		    image_hint = $5
		WHERE id = $6
		RETURNING created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		item.Title,
		item.Description,
		item.ImagePath,
		item.ImageURL,
		item.ImageHint,
		item.ID,
	).Scan(&item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPortfolioItemNotFound
		}
		return fmt.Errorf("portfolio repository: update item %w", err)
	}

	return nil
}

// Delete удаляет работу из витрины.
func (r *PortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("portfolio repository: delete %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("portfolio repository: delete rows affected %w", err)
	}

	if affected == 0 {
		return ErrPortfolioItemNotFound
	}

	return nil
}

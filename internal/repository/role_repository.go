package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RoleRepository отвечает за маркеры административной роли.
// Запись в roles_admin — это факт существования, без атрибутов:
// есть запись для user_id — пользователь администратор.
type RoleRepository struct {
	db *sqlx.DB
}

// NewRoleRepository создаёт экземпляр репозитория.
func NewRoleRepository(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Exists проверяет наличие маркера роли для пользователя.
func (r *RoleRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM roles_admin WHERE user_id = $1`, userID); err != nil {
		return false, fmt.Errorf("role repository: exists %w", err)
	}
	return count > 0, nil
}

// Create создаёт маркер роли. Повторное создание не является ошибкой.
func (r *RoleRepository) Create(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO roles_admin (user_id) VALUES ($1) ON CONFLICT DO NOTHING`, userID); err != nil {
		return fmt.Errorf("role repository: create %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mixaura/agency-backend/internal/goroutine"
	"github.com/mixaura/agency-backend/internal/logger"
)

// AdminStatus — тристабильный сигнал авторизации администратора.
// Unknown означает "ещё не определено", а не "нет": ложноотрицательный
// ответ во время загрузки непредставим.
type AdminStatus string

const (
	AdminStatusUnknown      AdminStatus = "unknown"
	AdminStatusAuthorized   AdminStatus = "authorized"
	AdminStatusUnauthorized AdminStatus = "unauthorized"
)

// RoleRepository описывает хранилище маркеров административной роли.
type RoleRepository interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, userID uuid.UUID) error
}

// RoleService инкапсулирует проверку и выдачу административной роли.
type RoleService struct {
	repo RoleRepository
}

// NewRoleService создаёт сервис ролей.
func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

// Status возвращает статус администратора по завершённой проверке маркера.
func (s *RoleService) Status(ctx context.Context, userID uuid.UUID) (AdminStatus, error) {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return AdminStatusUnknown, fmt.Errorf("role service: %w", err)
	}

	if exists {
		return AdminStatusAuthorized, nil
	}
	return AdminStatusUnauthorized, nil
}

// GrantAdmin создаёт маркер роли для пользователя.
func (s *RoleService) GrantAdmin(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Create(ctx, userID)
}

// IdentityState — одно наблюдение за текущей личностью.
// Loading=true — наблюдение ещё в пути; UserID=nil — личности нет.
type IdentityState struct {
	UserID  *uuid.UUID
	Loading bool
}

// RoleResolver превращает поток наблюдений личности в поток статусов
// администратора. На каждую смену личности проверка маркера запускается
// заново с ключом, вычисленным из новой личности: устаревшие проверки
// отменяются, их результаты отбрасываются.
type RoleResolver struct {
	roles RoleRepository
}

// NewRoleResolver создаёт резолвер.
func NewRoleResolver(roles RoleRepository) *RoleResolver {
	return &RoleResolver{roles: roles}
}

// Watch подписывается на наблюдения личности и выдаёт статусы:
//   - наблюдение в пути → Unknown;
//   - личности нет → Unauthorized, сразу;
//   - личность есть → Unknown, пока проверка маркера не завершится,
//     затем Authorized либо Unauthorized.
//
// Authorized никогда не выдаётся до успешного завершения проверки.
func (r *RoleResolver) Watch(ctx context.Context, identities <-chan IdentityState) <-chan AdminStatus {
	out := make(chan AdminStatus)

	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		defer close(out)

		type lookupResult struct {
			status AdminStatus
			seq    uint64
		}

		var (
			seq           uint64
			results       = make(chan lookupResult, 1)
			cancelPending context.CancelFunc
		)
		defer func() {
			if cancelPending != nil {
				cancelPending()
			}
		}()

		emit := func(status AdminStatus) bool {
			select {
			case out <- status:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case res := <-results:
				// Результат устаревшей проверки: личность уже сменилась.
				if res.seq != seq {
					continue
				}
				if !emit(res.status) {
					return
				}

			case state, ok := <-identities:
				if !ok {
					return
				}

				if cancelPending != nil {
					cancelPending()
					cancelPending = nil
				}
				seq++

				if state.Loading {
					if !emit(AdminStatusUnknown) {
						return
					}
					continue
				}

				if state.UserID == nil {
					if !emit(AdminStatusUnauthorized) {
						return
					}
					continue
				}

				if !emit(AdminStatusUnknown) {
					return
				}

				lookupCtx, cancel := context.WithCancel(ctx)
				cancelPending = cancel
				userID := *state.UserID
				startedSeq := seq

				goroutine.SafeGoWithContext(lookupCtx, func(lctx context.Context) {
					status := r.resolve(lctx, userID)
					select {
					case results <- lookupResult{status: status, seq: startedSeq}:
					case <-lctx.Done():
					}
				})
			}
		}
	})

	return out
}

// resolve выполняет одну проверку маркера. Ошибка проверки даёт
// Unauthorized: резолвер никогда не отвечает Authorized без успешно
// завершённой проверки.
func (r *RoleResolver) resolve(ctx context.Context, userID uuid.UUID) AdminStatus {
	exists, err := r.roles.Exists(ctx, userID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("role resolver: проверка маркера роли не удалась")
		}
		return AdminStatusUnauthorized
	}

	if exists {
		return AdminStatusAuthorized
	}
	return AdminStatusUnauthorized
}
